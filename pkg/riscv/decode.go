// Package riscv implements the RV32I/RV32M instruction decoder: bit field
// extraction, immediate reconstruction with exact sign extension, and the
// opcode to mnemonic classification.
//
// The decoder returns data and never prints; rendering a decoded
// instruction is the caller's concern. Unknown encodings are not errors:
// they classify as FormUnknown so a listing can keep moving through data
// or unsupported extensions embedded in .text.
package riscv

import "fmt"

// Form classifies a decoded instruction into its encoding shape
type Form int

const (
	FormUnknown Form = iota
	// Register-register ops (OP)
	FormR
	// Arithmetic/logical immediate ops (OP-IMM, except shifts)
	FormI
	// SLLI/SRLI/SRAI
	FormShift
	// Loads and JALR, which shares the rd, imm(rs1) shape
	FormLoad
	// Stores
	FormS
	// Conditional branches
	FormB
	// LUI/AUIPC
	FormU
	// JAL
	FormJ
	// ECALL/EBREAK
	FormSystem
)

// Mnemonic emitted for any word that does not classify
const UnknownMnemonic = "unknown_instruction"

// A decoded instruction. Which fields are meaningful depends on Form;
// everything else is left at its zero value.
type Instruction struct {
	Addr     uint32
	Word     uint32
	Form     Form
	Mnemonic string
	Rd       Register
	Rs1      Register
	Rs2      Register
	Imm      int32
	Shamt    uint8
}

type functKey struct {
	funct7 uint8
	funct3 uint8
}

// OP mnemonics by (funct7, funct3), RV32I base plus RV32M under funct7=1
var rMnemonics = map[functKey]string{
	{0x00, 0b000}: "add",
	{0x20, 0b000}: "sub",
	{0x00, 0b001}: "sll",
	{0x00, 0b010}: "slt",
	{0x00, 0b011}: "sltu",
	{0x00, 0b100}: "xor",
	{0x00, 0b101}: "srl",
	{0x20, 0b101}: "sra",
	{0x00, 0b110}: "or",
	{0x00, 0b111}: "and",
	{0x01, 0b000}: "mul",
	{0x01, 0b001}: "mulh",
	{0x01, 0b010}: "mulhsu",
	{0x01, 0b011}: "mulhu",
	{0x01, 0b100}: "div",
	{0x01, 0b101}: "divu",
	{0x01, 0b110}: "rem",
	{0x01, 0b111}: "remu",
}

var shiftMnemonics = map[functKey]string{
	{0x00, 0b001}: "slli",
	{0x00, 0b101}: "srli",
	{0x20, 0b101}: "srai",
}

var iMnemonics = map[uint8]string{
	0b000: "addi",
	0b010: "slti",
	0b011: "sltiu",
	0b100: "xori",
	0b110: "ori",
	0b111: "andi",
}

var loadMnemonics = map[uint8]string{
	0b000: "lb",
	0b001: "lh",
	0b010: "lw",
	0b100: "lbu",
	0b101: "lhu",
}

var storeMnemonics = map[uint8]string{
	0b000: "sb",
	0b001: "sh",
	0b010: "sw",
}

var branchMnemonics = map[uint8]string{
	0b000: "beq",
	0b001: "bne",
	0b100: "blt",
	0b101: "bge",
	0b110: "bltu",
	0b111: "bgeu",
}

// SYSTEM funct12 values, valid only with funct3=0, rd=0, rs1=0
const (
	funct12Ecall  = 0
	funct12Ebreak = 1
)

func unknown(addr uint32, word uint32) Instruction {
	return Instruction{
		Addr:     addr,
		Word:     word,
		Form:     FormUnknown,
		Mnemonic: UnknownMnemonic,
	}
}

// Decode classifies a 32 bit instruction word. The address is not needed
// for decoding itself but is carried so control transfer targets can be
// computed from the result.
func Decode(addr uint32, word uint32) Instruction {
	switch Opcode(word) {
	case OpcodeOp:
		mnemonic, ok := rMnemonics[functKey{Funct7(word), Funct3(word)}]
		if !ok {
			return unknown(addr, word)
		}
		return Instruction{
			Addr:     addr,
			Word:     word,
			Form:     FormR,
			Mnemonic: mnemonic,
			Rd:       Rd(word),
			Rs1:      Rs1(word),
			Rs2:      Rs2(word),
		}

	case OpcodeOpImm:
		funct3 := Funct3(word)
		if funct3 == 0b001 || funct3 == 0b101 {
			mnemonic, ok := shiftMnemonics[functKey{Funct7(word), funct3}]
			if !ok {
				return unknown(addr, word)
			}
			return Instruction{
				Addr:     addr,
				Word:     word,
				Form:     FormShift,
				Mnemonic: mnemonic,
				Rd:       Rd(word),
				Rs1:      Rs1(word),
				Shamt:    Shamt(word),
			}
		}
		mnemonic, ok := iMnemonics[funct3]
		if !ok {
			return unknown(addr, word)
		}
		return Instruction{
			Addr:     addr,
			Word:     word,
			Form:     FormI,
			Mnemonic: mnemonic,
			Rd:       Rd(word),
			Rs1:      Rs1(word),
			Imm:      ImmediateI(word),
		}

	case OpcodeLoad:
		mnemonic, ok := loadMnemonics[Funct3(word)]
		if !ok {
			return unknown(addr, word)
		}
		return Instruction{
			Addr:     addr,
			Word:     word,
			Form:     FormLoad,
			Mnemonic: mnemonic,
			Rd:       Rd(word),
			Rs1:      Rs1(word),
			Imm:      ImmediateI(word),
		}

	case OpcodeJalr:
		if Funct3(word) != 0 {
			return unknown(addr, word)
		}
		return Instruction{
			Addr:     addr,
			Word:     word,
			Form:     FormLoad,
			Mnemonic: "jalr",
			Rd:       Rd(word),
			Rs1:      Rs1(word),
			Imm:      ImmediateI(word),
		}

	case OpcodeStore:
		mnemonic, ok := storeMnemonics[Funct3(word)]
		if !ok {
			return unknown(addr, word)
		}
		return Instruction{
			Addr:     addr,
			Word:     word,
			Form:     FormS,
			Mnemonic: mnemonic,
			Rs1:      Rs1(word),
			Rs2:      Rs2(word),
			Imm:      ImmediateS(word),
		}

	case OpcodeBranch:
		mnemonic, ok := branchMnemonics[Funct3(word)]
		if !ok {
			return unknown(addr, word)
		}
		return Instruction{
			Addr:     addr,
			Word:     word,
			Form:     FormB,
			Mnemonic: mnemonic,
			Rs1:      Rs1(word),
			Rs2:      Rs2(word),
			Imm:      ImmediateB(word),
		}

	case OpcodeLui:
		return Instruction{
			Addr:     addr,
			Word:     word,
			Form:     FormU,
			Mnemonic: "lui",
			Rd:       Rd(word),
			Imm:      ImmediateU(word),
		}

	case OpcodeAuipc:
		return Instruction{
			Addr:     addr,
			Word:     word,
			Form:     FormU,
			Mnemonic: "auipc",
			Rd:       Rd(word),
			Imm:      ImmediateU(word),
		}

	case OpcodeJal:
		return Instruction{
			Addr:     addr,
			Word:     word,
			Form:     FormJ,
			Mnemonic: "jal",
			Rd:       Rd(word),
			Imm:      ImmediateJ(word),
		}

	case OpcodeSystem:
		if Funct3(word) != 0 || Rd(word) != 0 || Rs1(word) != 0 {
			return unknown(addr, word)
		}
		switch Funct12(word) {
		case funct12Ecall:
			return Instruction{Addr: addr, Word: word, Form: FormSystem, Mnemonic: "ecall"}
		case funct12Ebreak:
			return Instruction{Addr: addr, Word: word, Form: FormSystem, Mnemonic: "ebreak"}
		}
		return unknown(addr, word)
	}

	return unknown(addr, word)
}

// Target returns the absolute address of a direct relative control transfer
// and whether the instruction performs one. Only JAL and conditional
// branches qualify; JALR and computed jumps do not.
func (i *Instruction) Target() (uint32, bool) {
	switch i.Form {
	case FormJ, FormB:
		return i.Addr + uint32(i.Imm), true
	}
	return 0, false
}

// String renders the instruction without label knowledge; control transfer
// targets appear as bare hex addresses. The disassembly listing uses its
// own renderer that resolves labels.
func (i *Instruction) String() string {
	switch i.Form {
	case FormR:
		return fmt.Sprintf("%s\t%s, %s, %s", i.Mnemonic, i.Rd, i.Rs1, i.Rs2)
	case FormI:
		return fmt.Sprintf("%s\t%s, %s, %d", i.Mnemonic, i.Rd, i.Rs1, i.Imm)
	case FormShift:
		return fmt.Sprintf("%s\t%s, %s, %d", i.Mnemonic, i.Rd, i.Rs1, i.Shamt)
	case FormLoad:
		return fmt.Sprintf("%s\t%s, %d(%s)", i.Mnemonic, i.Rd, i.Imm, i.Rs1)
	case FormS:
		return fmt.Sprintf("%s\t%s, %d(%s)", i.Mnemonic, i.Rs2, i.Imm, i.Rs1)
	case FormB:
		target, _ := i.Target()
		return fmt.Sprintf("%s\t%s, %s, %#x", i.Mnemonic, i.Rs1, i.Rs2, target)
	case FormU:
		return fmt.Sprintf("%s\t%s, %d", i.Mnemonic, i.Rd, i.Imm)
	case FormJ:
		target, _ := i.Target()
		return fmt.Sprintf("%s\t%s, %#x", i.Mnemonic, i.Rd, target)
	case FormSystem:
		return i.Mnemonic
	}
	return i.Mnemonic
}
