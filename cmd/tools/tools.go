package tools

import (
	"github.com/spf13/cobra"
)

var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspection helpers that don't need a full object file",
}
