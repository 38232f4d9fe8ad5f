package riscv

import (
	"github.com/bogdan-nikitin/disasm/pkg/utils"
)

// Instruction length in bytes. All of RV32I/RV32M uses the 32 bit encoding.
const InstructionSize = 4

// Primary opcodes (bits 6:0)
const (
	OpcodeLoad   = 0b0000011
	OpcodeOpImm  = 0b0010011
	OpcodeAuipc  = 0b0010111
	OpcodeStore  = 0b0100011
	OpcodeOp     = 0b0110011
	OpcodeLui    = 0b0110111
	OpcodeBranch = 0b1100011
	OpcodeJalr   = 0b1100111
	OpcodeJal    = 0b1101111
	OpcodeSystem = 0b1110011
)

func view(word uint32) utils.BitView[uint32] {
	return utils.CreateBitView(&word)
}

func Opcode(word uint32) uint8 {
	return uint8(view(word).ReadRange(6, 0))
}

func Rd(word uint32) Register {
	return Register(view(word).ReadRange(11, 7))
}

func Rs1(word uint32) Register {
	return Register(view(word).ReadRange(19, 15))
}

func Rs2(word uint32) Register {
	return Register(view(word).ReadRange(24, 20))
}

func Funct3(word uint32) uint8 {
	return uint8(view(word).ReadRange(14, 12))
}

func Funct7(word uint32) uint8 {
	return uint8(view(word).ReadRange(31, 25))
}

func Funct12(word uint32) uint16 {
	return uint16(view(word).ReadRange(31, 20))
}

func Shamt(word uint32) uint8 {
	return uint8(view(word).ReadRange(24, 20))
}

// I-type immediate: imm[11:0] = word[31:20], sign extended
func ImmediateI(word uint32) int32 {
	return utils.SignExtend32(view(word).ReadRange(31, 20), 12)
}

// S-type immediate: imm[11:5] = word[31:25], imm[4:0] = word[11:7], sign extended
func ImmediateS(word uint32) int32 {
	v := view(word)
	raw := v.ReadRange(31, 25)<<5 | v.ReadRange(11, 7)
	return utils.SignExtend32(raw, 12)
}

// B-type immediate: imm[12] = word[31], imm[11] = word[7],
// imm[10:5] = word[30:25], imm[4:1] = word[11:8]. Bit 0 is always zero.
func ImmediateB(word uint32) int32 {
	v := view(word)
	raw := v.Bit(31)<<12 | v.Bit(7)<<11 | v.ReadRange(30, 25)<<5 | v.ReadRange(11, 8)<<1
	return utils.SignExtend32(raw, 13)
}

// U-type immediate: the raw upper 20 bit field. It is deliberately not
// shifted back left by 12; the listing prints the field value itself.
func ImmediateU(word uint32) int32 {
	return int32(word >> 12)
}

// J-type immediate: imm[20] = word[31], imm[19:12] = word[19:12],
// imm[11] = word[20], imm[10:1] = word[30:21]. Bit 0 is always zero.
func ImmediateJ(word uint32) int32 {
	v := view(word)
	raw := v.Bit(31)<<20 | v.ReadRange(19, 12)<<12 | v.Bit(20)<<11 | v.ReadRange(30, 21)<<1
	return utils.SignExtend32(raw, 21)
}
