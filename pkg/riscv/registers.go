package riscv

// A 5 bit register index
type Register uint8

// ABI names of the 32 integer registers, indexed by register number
var registerABI = [32]string{
	"zero", "ra", "sp", "gp", "tp",
	"t0", "t1", "t2",
	"s0", "s1",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10", "s11",
	"t3", "t4", "t5", "t6",
}

// Returns the ABI name of the register
func (r Register) String() string {
	return registerABI[r&0x1f]
}
