package main

import (
	"github.com/bogdan-nikitin/disasm/cmd"
)

func main() {
	cmd.Execute()
}
