package riscv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_AllNamesAreABINames(t *testing.T) {
	seen := map[string]bool{}
	for r := 0; r < 32; r++ {
		name := Register(r).String()
		assert.NotEmpty(t, name)
		assert.False(t, seen[name], "duplicate register name %v", name)
		seen[name] = true
	}
	assert.Equal(t, "zero", Register(0).String())
	assert.Equal(t, "ra", Register(1).String())
	assert.Equal(t, "sp", Register(2).String())
	assert.Equal(t, "a0", Register(10).String())
	assert.Equal(t, "t6", Register(31).String())
}

func TestDecode_RType(t *testing.T) {
	inst := Decode(0x10074, 0x00A58533)

	assert.Equal(t, FormR, inst.Form)
	assert.Equal(t, "add", inst.Mnemonic)
	assert.Equal(t, "a0", inst.Rd.String())
	assert.Equal(t, "a1", inst.Rs1.String())
	assert.Equal(t, "a0", inst.Rs2.String())
}

func TestDecode_RType_Sub(t *testing.T) {
	// funct7=0x20, funct3=0, rd=a0, rs1=a1, rs2=a2
	word := uint32(0x20)<<25 | 12<<20 | 11<<15 | 0<<12 | 10<<7 | OpcodeOp
	inst := Decode(0, word)

	assert.Equal(t, FormR, inst.Form)
	assert.Equal(t, "sub", inst.Mnemonic)
}

func TestDecode_RType_Mul(t *testing.T) {
	word := uint32(0x01)<<25 | 12<<20 | 11<<15 | 0<<12 | 10<<7 | OpcodeOp
	inst := Decode(0, word)

	assert.Equal(t, FormR, inst.Form)
	assert.Equal(t, "mul", inst.Mnemonic)
}

func TestDecode_RType_BadFunct7(t *testing.T) {
	word := uint32(0x15)<<25 | 12<<20 | 11<<15 | 0<<12 | 10<<7 | OpcodeOp
	inst := Decode(0, word)

	assert.Equal(t, FormUnknown, inst.Form)
	assert.Equal(t, UnknownMnemonic, inst.Mnemonic)
}

func TestDecode_IType(t *testing.T) {
	inst := Decode(0x10078, 0x00850513)

	assert.Equal(t, FormI, inst.Form)
	assert.Equal(t, "addi", inst.Mnemonic)
	assert.Equal(t, "a0", inst.Rd.String())
	assert.Equal(t, "a0", inst.Rs1.String())
	assert.Equal(t, int32(8), inst.Imm)
}

func TestDecode_IType_NegativeImmediate(t *testing.T) {
	inst := Decode(0x10000, 0xFE010113)

	assert.Equal(t, FormI, inst.Form)
	assert.Equal(t, "addi", inst.Mnemonic)
	assert.Equal(t, "sp", inst.Rd.String())
	assert.Equal(t, "sp", inst.Rs1.String())
	assert.Equal(t, int32(-32), inst.Imm)
}

func TestDecode_Shift(t *testing.T) {
	// slli a0, a1, 3
	word := uint32(0)<<25 | 3<<20 | 11<<15 | 0b001<<12 | 10<<7 | OpcodeOpImm
	inst := Decode(0, word)

	require.Equal(t, FormShift, inst.Form)
	assert.Equal(t, "slli", inst.Mnemonic)
	assert.Equal(t, uint8(3), inst.Shamt)

	// srai a0, a1, 4
	word = uint32(0x20)<<25 | 4<<20 | 11<<15 | 0b101<<12 | 10<<7 | OpcodeOpImm
	inst = Decode(0, word)

	require.Equal(t, FormShift, inst.Form)
	assert.Equal(t, "srai", inst.Mnemonic)
	assert.Equal(t, uint8(4), inst.Shamt)
}

func TestDecode_Shift_BadFunct7(t *testing.T) {
	word := uint32(0x11)<<25 | 4<<20 | 11<<15 | 0b101<<12 | 10<<7 | OpcodeOpImm
	inst := Decode(0, word)

	assert.Equal(t, FormUnknown, inst.Form)
}

func TestDecode_Load(t *testing.T) {
	// lw a0, -4(sp)
	word := uint32(0xffc)<<20 | 2<<15 | 0b010<<12 | 10<<7 | OpcodeLoad
	inst := Decode(0, word)

	require.Equal(t, FormLoad, inst.Form)
	assert.Equal(t, "lw", inst.Mnemonic)
	assert.Equal(t, int32(-4), inst.Imm)
	assert.Equal(t, "a0", inst.Rd.String())
	assert.Equal(t, "sp", inst.Rs1.String())
}

func TestDecode_Load_BadFunct3(t *testing.T) {
	word := uint32(0b011)<<12 | OpcodeLoad
	inst := Decode(0, word)

	assert.Equal(t, FormUnknown, inst.Form)
}

func TestDecode_Jalr(t *testing.T) {
	// jalr ra, 0(a0)
	word := uint32(0)<<20 | 10<<15 | 0<<12 | 1<<7 | OpcodeJalr
	inst := Decode(0, word)

	require.Equal(t, FormLoad, inst.Form)
	assert.Equal(t, "jalr", inst.Mnemonic)

	// JALR is not a direct transfer, it must never produce a label target
	_, hasTarget := inst.Target()
	assert.False(t, hasTarget)
}

func TestDecode_Jalr_BadFunct3(t *testing.T) {
	word := uint32(0b010)<<12 | OpcodeJalr
	inst := Decode(0, word)

	assert.Equal(t, FormUnknown, inst.Form)
}

func TestDecode_Store(t *testing.T) {
	// sw a0, 8(sp): imm[11:5]=0, imm[4:0]=8
	word := uint32(0)<<25 | 10<<20 | 2<<15 | 0b010<<12 | 8<<7 | OpcodeStore
	inst := Decode(0, word)

	require.Equal(t, FormS, inst.Form)
	assert.Equal(t, "sw", inst.Mnemonic)
	assert.Equal(t, int32(8), inst.Imm)
	assert.Equal(t, "a0", inst.Rs2.String())
	assert.Equal(t, "sp", inst.Rs1.String())
}

func TestDecode_Branch(t *testing.T) {
	inst := Decode(0x10080, 0x00C50463)

	require.Equal(t, FormB, inst.Form)
	assert.Equal(t, "beq", inst.Mnemonic)
	assert.Equal(t, "a0", inst.Rs1.String())
	assert.Equal(t, "a2", inst.Rs2.String())
	assert.Equal(t, int32(8), inst.Imm)

	target, hasTarget := inst.Target()
	require.True(t, hasTarget)
	assert.Equal(t, uint32(0x10088), target)
}

func TestDecode_Branch_BadFunct3(t *testing.T) {
	word := uint32(0b010)<<12 | OpcodeBranch
	inst := Decode(0, word)

	assert.Equal(t, FormUnknown, inst.Form)
	_, hasTarget := inst.Target()
	assert.False(t, hasTarget)
}

func TestDecode_Lui(t *testing.T) {
	inst := Decode(0x10000, 0x12345037)

	require.Equal(t, FormU, inst.Form)
	assert.Equal(t, "lui", inst.Mnemonic)
	assert.Equal(t, "zero", inst.Rd.String())
	// The upper immediate stays the raw 20 bit field
	assert.Equal(t, int32(74565), inst.Imm)
}

func TestDecode_Auipc(t *testing.T) {
	word := uint32(1)<<12 | 10<<7 | OpcodeAuipc
	inst := Decode(0, word)

	require.Equal(t, FormU, inst.Form)
	assert.Equal(t, "auipc", inst.Mnemonic)
	assert.Equal(t, int32(1), inst.Imm)
}

func TestDecode_Jal(t *testing.T) {
	inst := Decode(0x10080, 0x008000EF)

	require.Equal(t, FormJ, inst.Form)
	assert.Equal(t, "jal", inst.Mnemonic)
	assert.Equal(t, "ra", inst.Rd.String())
	assert.Equal(t, int32(8), inst.Imm)

	target, hasTarget := inst.Target()
	require.True(t, hasTarget)
	assert.Equal(t, uint32(0x10088), target)
}

func TestDecode_System(t *testing.T) {
	ecall := Decode(0x10000, 0x00000073)
	require.Equal(t, FormSystem, ecall.Form)
	assert.Equal(t, "ecall", ecall.Mnemonic)

	ebreak := Decode(0x10000, 0x00100073)
	require.Equal(t, FormSystem, ebreak.Form)
	assert.Equal(t, "ebreak", ebreak.Mnemonic)
}

func TestDecode_System_RequiresZeroOperands(t *testing.T) {
	// ecall encoding with rd=1 must not classify as a system instruction
	word := uint32(1)<<7 | OpcodeSystem
	assert.Equal(t, FormUnknown, Decode(0, word).Form)

	// rs1 != 0
	word = uint32(1)<<15 | OpcodeSystem
	assert.Equal(t, FormUnknown, Decode(0, word).Form)

	// funct12 out of range
	word = uint32(2)<<20 | OpcodeSystem
	assert.Equal(t, FormUnknown, Decode(0, word).Form)
}

func TestDecode_UnknownOpcode(t *testing.T) {
	assert.Equal(t, FormUnknown, Decode(0x10000, 0xFFFFFFFF).Form)
	assert.Equal(t, UnknownMnemonic, Decode(0x10000, 0xFFFFFFFF).Mnemonic)
	assert.Equal(t, FormUnknown, Decode(0, 0).Form)
}

func TestDecode_UnrecognizedOpcodesAlwaysUnknown(t *testing.T) {
	recognized := map[uint8]bool{
		OpcodeLoad: true, OpcodeOpImm: true, OpcodeAuipc: true,
		OpcodeStore: true, OpcodeOp: true, OpcodeLui: true,
		OpcodeBranch: true, OpcodeJalr: true, OpcodeJal: true,
		OpcodeSystem: true,
	}

	for opcode := uint32(0); opcode < 128; opcode++ {
		if recognized[uint8(opcode)] {
			continue
		}
		// Fill every other field with ones to stress the classifier
		word := 0xFFFFFF80 | opcode
		assert.Equal(t, FormUnknown, Decode(0, word).Form, "opcode %#b", opcode)
	}
}

func TestImmediates_SignFollowsBit31(t *testing.T) {
	immediates := map[string]func(uint32) int32{
		"I": ImmediateI,
		"S": ImmediateS,
		"B": ImmediateB,
		"J": ImmediateJ,
	}

	words := []uint32{0, 1, 0x7fffffff, 0x12345678, 0x00C50463, 0x008000EF, 0xFE010113, 0xFFFFFFFF, 0x80000000}

	for name, immediate := range immediates {
		for _, word := range words {
			imm := immediate(word)
			if word>>31 == 1 {
				assert.Negative(t, imm, "%v-type immediate of %08x", name, word)
			} else {
				assert.GreaterOrEqual(t, imm, int32(0), "%v-type immediate of %08x", name, word)
			}
		}
	}
}

func TestImmediates_BranchAndJumpAreEven(t *testing.T) {
	words := []uint32{0, 0x00C50463, 0x008000EF, 0xFFFFFFFF, 0xAAAAAAAA, 0x55555555, 0x80000000, 0x7FFFFFFF}

	for _, word := range words {
		assert.Zero(t, ImmediateB(word)&1, "B-type immediate of %08x", word)
		assert.Zero(t, ImmediateJ(word)&1, "J-type immediate of %08x", word)
	}
}

func TestInstruction_String(t *testing.T) {
	assert.Equal(t, "add\ta0, a1, a0", Decode(0, 0x00A58533).String())
	assert.Equal(t, "addi\tsp, sp, -32", Decode(0, 0xFE010113).String())
	assert.Equal(t, "ecall", Decode(0, 0x00000073).String())
	assert.Equal(t, UnknownMnemonic, Decode(0, 0xFFFFFFFF).String())
}

func TestInstruction_Layout_CoversAllBits(t *testing.T) {
	words := []uint32{0x00A58533, 0x00850513, 0x00C50463, 0x008000EF, 0x12345037, 0x00000073, 0xFFFFFFFF}

	for _, word := range words {
		inst := Decode(0, word)
		fields := inst.Layout()
		require.NotEmpty(t, fields)

		// Fields are contiguous from bit 31 down to bit 0
		hi := 31
		for _, field := range fields {
			assert.Equal(t, hi, field.Hi, "word %08x", word)
			hi = field.Lo - 1
		}
		assert.Equal(t, -1, hi, "word %08x", word)
	}
}
