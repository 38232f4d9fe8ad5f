package view

import (
	"bytes"
	"fmt"
	"os"

	"github.com/bogdan-nikitin/disasm/pkg/disasm"
	"github.com/bogdan-nikitin/disasm/pkg/elf"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
)

var ViewCmd = &cobra.Command{
	Use:   "view file",
	Short: "Browse a disassembly listing interactively",
	Long: `Opens a terminal UI with the disassembled .text section on the left and
the decoded symbol table on the right.

Keys:
  Up/Down, PgUp/PgDn  scroll the focused pane
  Tab                 switch panes
  q, Esc              quit`,
	Args: cobra.ExactArgs(1),
	Run:  runView,
}

func runView(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error. couldn't open input file: %v\n", err)
		return
	}

	file, err := elf.Parse(elf.NewBuffer(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error. %v\n", err)
		return
	}

	d := disasm.New(file, nil)

	var text, symtab bytes.Buffer
	if err := d.WriteText(&text); err != nil {
		fmt.Fprintf(os.Stderr, "Error. %v\n", err)
		return
	}
	if err := d.WriteSymtab(&symtab); err != nil {
		fmt.Fprintf(os.Stderr, "Error. %v\n", err)
		return
	}

	app := tview.NewApplication()

	listing := tview.NewTextView().SetScrollable(true).SetWrap(false)
	listing.SetText(text.String())
	listing.SetBorder(true).SetTitle(fmt.Sprintf(" %s .text ", args[0]))

	symbols := tview.NewTextView().SetScrollable(true).SetWrap(false)
	symbols.SetText(symtab.String())
	symbols.SetBorder(true).SetTitle(" .symtab ")

	layout := tview.NewFlex().
		AddItem(listing, 0, 3, true).
		AddItem(symbols, 0, 2, false)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape,
			event.Key() == tcell.KeyRune && event.Rune() == 'q':
			app.Stop()
			return nil
		case event.Key() == tcell.KeyTab:
			if listing.HasFocus() {
				app.SetFocus(symbols)
			} else {
				app.SetFocus(listing)
			}
			return nil
		}
		return event
	})

	if err := app.SetRoot(layout, true).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error. %v\n", err)
	}
}
