package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelTable_SynthIndicesAreContiguous(t *testing.T) {
	table := NewLabelTable()

	addresses := []uint32{0x10088, 0x10010, 0x10100, 0x10010, 0x10088, 0x10200}
	table.EnsureSynth(addresses[0])
	table.EnsureSynth(addresses[1])
	table.EnsureSynth(addresses[2])
	table.EnsureSynth(addresses[3]) // repeat, must not burn an index
	table.EnsureSynth(addresses[4]) // repeat
	table.EnsureSynth(addresses[5])

	require.Equal(t, 4, table.SynthCount())

	name, ok := table.Name(0x10088)
	require.True(t, ok)
	assert.Equal(t, "L0", name)

	name, _ = table.Name(0x10010)
	assert.Equal(t, "L1", name)
	name, _ = table.Name(0x10100)
	assert.Equal(t, "L2", name)
	name, _ = table.Name(0x10200)
	assert.Equal(t, "L3", name)
}

func TestLabelTable_NamedWinsOverSynth(t *testing.T) {
	table := NewLabelTable()

	// Symbol table names are inserted first; a later target harvest at the
	// same address must not shadow them.
	table.InsertNamed(0x10074, "main")
	table.EnsureSynth(0x10074)

	name, ok := table.Name(0x10074)
	require.True(t, ok)
	assert.Equal(t, "main", name)
	assert.Zero(t, table.SynthCount())
}

func TestLabelTable_InsertNamedOverrides(t *testing.T) {
	table := NewLabelTable()

	table.InsertNamed(0x10074, "old")
	table.InsertNamed(0x10074, "new")

	name, _ := table.Name(0x10074)
	assert.Equal(t, "new", name)
}

func TestLabelTable_MissingAddress(t *testing.T) {
	table := NewLabelTable()

	assert.False(t, table.Has(0x10000))
	_, ok := table.Name(0x10000)
	assert.False(t, ok)
}
