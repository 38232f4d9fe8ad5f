package elf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_ReadsLittleEndian(t *testing.T) {
	buffer := NewBuffer([]byte{0x33, 0x85, 0xA5, 0x00})

	byteValue, err := buffer.Uint8(0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x33), byteValue)

	halfValue, err := buffer.Uint16(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8533), halfValue)

	wordValue, err := buffer.Uint32(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x00A58533), wordValue)
}

func TestBuffer_RefusesReadsPastEnd(t *testing.T) {
	buffer := NewBuffer([]byte{1, 2, 3})

	_, err := buffer.Uint32(0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = buffer.Uint16(2)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = buffer.Uint8(3)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = buffer.Slice(1, 3)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestBuffer_RangeOverflowDoesNotWrap(t *testing.T) {
	buffer := NewBuffer(make([]byte, 16))

	assert.False(t, buffer.InRange(0xFFFFFFFF, 8))
	_, err := buffer.Slice(0xFFFFFFFF, 8)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestBuffer_CString(t *testing.T) {
	buffer := NewBuffer([]byte{'m', 'a', 'i', 'n', 0, '.', 't', 'e', 'x', 't', 0})

	name, err := buffer.CString(0)
	require.NoError(t, err)
	assert.Equal(t, "main", name)

	name, err = buffer.CString(5)
	require.NoError(t, err)
	assert.Equal(t, ".text", name)

	name, err = buffer.CString(4)
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestBuffer_CString_MissingTerminator(t *testing.T) {
	buffer := NewBuffer([]byte{'m', 'a', 'i', 'n'})

	_, err := buffer.CString(0)
	assert.ErrorIs(t, err, ErrNotTerminated)
}

func TestBuffer_CString_OffsetPastEnd(t *testing.T) {
	buffer := NewBuffer([]byte{0})

	_, err := buffer.CString(1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
