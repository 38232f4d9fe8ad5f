package riscv

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bogdan-nikitin/disasm/pkg/utils"
)

func (f Form) String() string {
	switch f {
	case FormR:
		return "R"
	case FormI:
		return "I"
	case FormShift:
		return "shift"
	case FormLoad:
		return "load"
	case FormS:
		return "S"
	case FormB:
		return "B"
	case FormU:
		return "U"
	case FormJ:
		return "J"
	case FormSystem:
		return "system"
	}
	return "unknown"
}

// Layout returns the named bit fields of the instruction's encoding form,
// most significant first, the way the ISA manual draws them. The result is
// meant to be fed into utils.BitFrame.
func (i *Instruction) Layout() []utils.BitFrameField {
	v := view(i.Word)

	field := func(name string, hi int, lo int) utils.BitFrameField {
		return utils.BitFrameField{
			Name:  name,
			Hi:    hi,
			Lo:    lo,
			Value: uint64(v.ReadRange(hi, lo)),
		}
	}

	common := func(upper ...utils.BitFrameField) []utils.BitFrameField {
		return append(upper,
			field("funct3", 14, 12),
			field("rd", 11, 7),
			field("opcode", 6, 0),
		)
	}

	switch i.Form {
	case FormR:
		return common(field("funct7", 31, 25), field("rs2", 24, 20), field("rs1", 19, 15))
	case FormShift:
		return common(field("funct7", 31, 25), field("shamt", 24, 20), field("rs1", 19, 15))
	case FormI, FormLoad:
		return common(field("imm[11:0]", 31, 20), field("rs1", 19, 15))
	case FormSystem:
		return common(field("funct12", 31, 20), field("rs1", 19, 15))
	case FormS:
		return []utils.BitFrameField{
			field("imm[11:5]", 31, 25),
			field("rs2", 24, 20),
			field("rs1", 19, 15),
			field("funct3", 14, 12),
			field("imm[4:0]", 11, 7),
			field("opcode", 6, 0),
		}
	case FormB:
		return []utils.BitFrameField{
			field("imm[12|10:5]", 31, 25),
			field("rs2", 24, 20),
			field("rs1", 19, 15),
			field("funct3", 14, 12),
			field("imm[4:1|11]", 11, 7),
			field("opcode", 6, 0),
		}
	case FormU:
		return []utils.BitFrameField{
			field("imm[31:12]", 31, 12),
			field("rd", 11, 7),
			field("opcode", 6, 0),
		}
	case FormJ:
		return []utils.BitFrameField{
			field("imm[20|10:1|11|19:12]", 31, 12),
			field("rd", 11, 7),
			field("opcode", 6, 0),
		}
	}

	return []utils.BitFrameField{field("word", 31, 0)}
}

func documentFunctTable(builder *strings.Builder, title string, opcode uint8, table map[functKey]string, leftpad string) {
	keys := utils.Keys(table)
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].funct3 != keys[j].funct3 {
			return keys[i].funct3 < keys[j].funct3
		}
		return keys[i].funct7 < keys[j].funct7
	})

	builder.WriteString(fmt.Sprintf("%v%v (opcode %v):\n", leftpad, title, utils.FormatBinary(uint64(opcode), 7)))
	for _, key := range keys {
		builder.WriteString(fmt.Sprintf("%v - %-7s funct7=%v funct3=%v\n",
			leftpad, table[key],
			utils.FormatBinary(uint64(key.funct7), 7),
			utils.FormatBinary(uint64(key.funct3), 3)))
	}
	builder.WriteString("\n")
}

func documentFunct3Table(builder *strings.Builder, title string, opcode uint8, table map[uint8]string, leftpad string) {
	keys := utils.Keys(table)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	builder.WriteString(fmt.Sprintf("%v%v (opcode %v):\n", leftpad, title, utils.FormatBinary(uint64(opcode), 7)))
	for _, key := range keys {
		builder.WriteString(fmt.Sprintf("%v - %-7s funct3=%v\n",
			leftpad, table[key], utils.FormatBinary(uint64(key), 3)))
	}
	builder.WriteString("\n")
}

// Dumps the supported instruction set as one big multiline string
func Documentation(leftpad int) string {
	leftpadStr := strings.Repeat(" ", leftpad)

	var builder strings.Builder

	builder.WriteString(leftpadStr)
	builder.WriteString("Supported instruction set: RV32I base + RV32M, 32 bit encodings only\n\n")

	builder.WriteString(leftpadStr)
	builder.WriteString("Registers (ABI names):\n")
	for index, name := range registerABI {
		builder.WriteString(fmt.Sprintf("%v - x%-2d %v\n", leftpadStr, index, name))
	}
	builder.WriteString("\n")

	documentFunctTable(&builder, "OP", OpcodeOp, rMnemonics, leftpadStr)
	documentFunctTable(&builder, "OP-IMM shifts", OpcodeOpImm, shiftMnemonics, leftpadStr)
	documentFunct3Table(&builder, "OP-IMM", OpcodeOpImm, iMnemonics, leftpadStr)
	documentFunct3Table(&builder, "LOAD", OpcodeLoad, loadMnemonics, leftpadStr)
	documentFunct3Table(&builder, "STORE", OpcodeStore, storeMnemonics, leftpadStr)
	documentFunct3Table(&builder, "BRANCH", OpcodeBranch, branchMnemonics, leftpadStr)

	builder.WriteString(leftpadStr)
	builder.WriteString("Other:\n")
	builder.WriteString(fmt.Sprintf("%v - %-7s opcode=%v\n", leftpadStr, "lui", utils.FormatBinary(OpcodeLui, 7)))
	builder.WriteString(fmt.Sprintf("%v - %-7s opcode=%v\n", leftpadStr, "auipc", utils.FormatBinary(OpcodeAuipc, 7)))
	builder.WriteString(fmt.Sprintf("%v - %-7s opcode=%v\n", leftpadStr, "jal", utils.FormatBinary(OpcodeJal, 7)))
	builder.WriteString(fmt.Sprintf("%v - %-7s opcode=%v funct3=000\n", leftpadStr, "jalr", utils.FormatBinary(OpcodeJalr, 7)))
	builder.WriteString(fmt.Sprintf("%v - %-7s opcode=%v funct12=%v\n", leftpadStr, "ecall", utils.FormatBinary(OpcodeSystem, 7), utils.FormatBinary(funct12Ecall, 12)))
	builder.WriteString(fmt.Sprintf("%v - %-7s opcode=%v funct12=%v\n", leftpadStr, "ebreak", utils.FormatBinary(OpcodeSystem, 7), utils.FormatBinary(funct12Ebreak, 12)))

	return builder.String()
}

// Like Documentation(), but with zero leftpad
func DocString() string {
	return Documentation(0)
}
