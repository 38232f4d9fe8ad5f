package utils

import (
	"fmt"
	"strings"
)

// A single named bit range inside a BitFrame, with its extracted value.
// Hi and Lo are inclusive bit positions, Hi >= Lo.
type BitFrameField struct {
	Name  string
	Hi    int
	Lo    int
	Value uint64
}

// Field width in bits
func (f *BitFrameField) Bits() int {
	return f.Hi - f.Lo + 1
}

func centered(text string, width int) string {
	left := (width - len(text)) / 2
	right := width - len(text) - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

// Draws an ascii diagram of a binary frame split into named bit fields.
// Fields must be given most significant first and non overlapping, the way
// ISA manuals draw instruction encodings:
//
//	   31:25    24:20   19:15   14:12    11:7      6:0
//	+---------+-------+-------+--------+-------+---------+
//	| 0000000 | 01100 | 01011 |  000   | 01010 | 0110011 |
//	+---------+-------+-------+--------+-------+---------+
//	  funct7     rs2     rs1    funct3    rd     opcode
func BitFrame(fields []BitFrameField, leftpad int) string {
	pad := strings.Repeat(" ", leftpad)

	var ranges, border, values, names strings.Builder

	ranges.WriteString(pad)
	border.WriteString(pad)
	values.WriteString(pad)
	names.WriteString(pad)

	for _, field := range fields {
		rangeText := fmt.Sprintf("%v:%v", field.Hi, field.Lo)
		if field.Bits() == 1 {
			rangeText = fmt.Sprint(field.Hi)
		}
		valueText := FormatBinary(field.Value, field.Bits())

		width := max(len(rangeText), len(valueText), len(field.Name)) + 2

		ranges.WriteString(" " + centered(rangeText, width))
		border.WriteString("+" + strings.Repeat("-", width))
		values.WriteString("|" + centered(valueText, width))
		names.WriteString(" " + centered(field.Name, width))
	}

	border.WriteString("+")
	values.WriteString("|")

	return ranges.String() + "\n" +
		border.String() + "\n" +
		values.String() + "\n" +
		border.String() + "\n" +
		names.String() + "\n"
}
