package tools

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bogdan-nikitin/disasm/pkg/riscv"
	"github.com/bogdan-nikitin/disasm/pkg/utils"
	"github.com/spf13/cobra"
)

var inspectAddr uint32

var inspectCmd = &cobra.Command{
	Use:   "inspect word",
	Short: "Decode a single instruction word",
	Long: `Decodes one 32-bit instruction word (hex or decimal) and shows the decoded
assembly plus the bit layout of its encoding form.

Example:
  disasm tools inspect 0x00a58533
  disasm tools inspect --addr 0x10080 0x008000ef`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	ToolsCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Uint32Var(&inspectAddr, "addr", 0, "Address to decode at (affects branch/jump targets)")
}

func runInspect(cmd *cobra.Command, args []string) {
	word, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error. invalid instruction word '%v': %v\n", args[0], err)
		return
	}

	inst := riscv.Decode(inspectAddr, uint32(word))

	fmt.Printf("word: %s\n", utils.FormatHex(word, 8))
	fmt.Printf("form: %v\n", inst.Form)
	fmt.Printf("asm:  %s\n\n", utils.HighlightAsm(inst.String()))
	fmt.Print(utils.BitFrame(inst.Layout(), 2))
}
