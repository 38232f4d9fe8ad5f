// Package utils provides utility functions shared across the disasm project.
package utils

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// Assembly syntax highlighting colors
var (
	asmMnemonicColor = color.New(color.FgMagenta, color.Bold)
	asmRegisterColor = color.New(color.FgCyan)
	asmNumberColor   = color.New(color.FgYellow)
	asmLabelColor    = color.New(color.FgGreen)
	asmPunctColor    = color.New(color.FgWhite)
)

// RISC-V ABI register names, for highlighting purposes only
var asmRegisters = map[string]bool{
	"zero": true, "ra": true, "sp": true, "gp": true, "tp": true,
	"t0": true, "t1": true, "t2": true, "t3": true, "t4": true,
	"t5": true, "t6": true, "s0": true, "s1": true, "s2": true,
	"s3": true, "s4": true, "s5": true, "s6": true, "s7": true,
	"s8": true, "s9": true, "s10": true, "s11": true,
	"a0": true, "a1": true, "a2": true, "a3": true, "a4": true,
	"a5": true, "a6": true, "a7": true,
}

// Patterns for assembly syntax elements
var (
	// Matches the mnemonic at the start of an instruction (possibly left padded)
	asmMnemonicPattern = regexp.MustCompile(`^\s*[a-z][a-z0-9_.]*`)
	// Matches identifiers (register names, label names)
	asmIdentifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`)
	// Matches numbers (decimal, negative decimal, hex)
	asmNumberPattern = regexp.MustCompile(`^-?(?:0[xX][0-9a-fA-F]+|[0-9]+)`)
	// Matches <label> references
	asmLabelPattern = regexp.MustCompile(`^<[^>]*>`)
)

// HighlightAsm applies terminal colors to a single disassembled instruction
// of the form "mnemonic\toperands". Unrecognized input is returned verbatim.
func HighlightAsm(instr string) string {
	mnemonicLoc := asmMnemonicPattern.FindStringIndex(instr)
	if mnemonicLoc == nil {
		return instr
	}

	var result strings.Builder
	result.WriteString(asmMnemonicColor.Sprint(instr[mnemonicLoc[0]:mnemonicLoc[1]]))

	rest := instr[mnemonicLoc[1]:]
	i := 0
	for i < len(rest) {
		if loc := asmLabelPattern.FindStringIndex(rest[i:]); loc != nil {
			result.WriteString(asmLabelColor.Sprint(rest[i : i+loc[1]]))
			i += loc[1]
			continue
		}
		if loc := asmIdentifierPattern.FindStringIndex(rest[i:]); loc != nil {
			ident := rest[i : i+loc[1]]
			if asmRegisters[ident] {
				result.WriteString(asmRegisterColor.Sprint(ident))
			} else {
				result.WriteString(asmPunctColor.Sprint(ident))
			}
			i += loc[1]
			continue
		}
		if loc := asmNumberPattern.FindStringIndex(rest[i:]); loc != nil {
			result.WriteString(asmNumberColor.Sprint(rest[i : i+loc[1]]))
			i += loc[1]
			continue
		}
		result.WriteString(asmPunctColor.Sprintf("%c", rest[i]))
		i++
	}

	return result.String()
}
