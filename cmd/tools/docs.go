package tools

import (
	"fmt"
	"os"
	"strings"

	"github.com/bogdan-nikitin/disasm/pkg/riscv"
	"github.com/bogdan-nikitin/disasm/pkg/utils"
	"github.com/spf13/cobra"
)

var docsOutput string

var docsTopics = map[string]func() string{
	"isa": riscv.DocString,
}

var docsCmd = &cobra.Command{
	Use:   "docs topic",
	Short: "Dump reference documentation",
	Long: `Writes the reference documentation for a topic to stdout, or to a file
when --output is given.

Topics:
  isa    the supported RV32I/RV32M instruction set and register ABI names`,
	Args: cobra.ExactArgs(1),
	Run:  runDocs,
}

func init() {
	ToolsCmd.AddCommand(docsCmd)
	docsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "Write to this file instead of stdout")
}

func runDocs(cmd *cobra.Command, args []string) {
	topic, ok := docsTopics[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error. unknown topic '%v' (available: %v)\n",
			args[0], strings.Join(utils.SortedKeys(docsTopics), ", "))
		return
	}

	sink := os.Stdout
	if docsOutput != "" {
		file, err := os.Create(docsOutput)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error. couldn't create output file: %v\n", err)
			return
		}
		defer file.Close()
		sink = file
	}

	fmt.Fprintln(sink, topic())
}
