package utils

import (
	"strconv"
	"strings"
)

// FormatBinary renders value as a binary string zero padded to the given
// field width in bits, the way ISA manuals write encoding fields
// (a 7 bit funct7 of 1 renders as "0000001").
func FormatBinary(value uint64, bits int) string {
	digits := strconv.FormatUint(value, 2)
	if pad := bits - len(digits); pad > 0 {
		return strings.Repeat("0", pad) + digits
	}
	return digits
}

// FormatHex renders value as 0x-prefixed lower case hex zero padded to the
// given number of digits (8 for a full instruction word).
func FormatHex(value uint64, digits int) string {
	text := strconv.FormatUint(value, 16)
	if pad := digits - len(text); pad > 0 {
		return "0x" + strings.Repeat("0", pad) + text
	}
	return "0x" + text
}
