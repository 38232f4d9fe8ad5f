package elf

import (
	"encoding/binary"
	"errors"

	"github.com/bogdan-nikitin/disasm/pkg/utils"
)

var (
	ErrOutOfRange    = errors.New("read past end of buffer")
	ErrNotTerminated = errors.New("string is not null terminated")
)

// Buffer owns the raw bytes of a loaded object file and provides bounds
// checked little endian reads at absolute file offsets. All downstream
// components hold read only views into it, so it must stay alive for the
// whole run.
type Buffer struct {
	data []byte
}

func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Size of the buffer in bytes
func (b *Buffer) Len() uint32 {
	return uint32(len(b.data))
}

// Returns true if the inclusive-exclusive byte range [offset, offset+length)
// lies fully inside the buffer
func (b *Buffer) InRange(offset uint32, length uint32) bool {
	return uint64(offset)+uint64(length) <= uint64(len(b.data))
}

// Returns a read only view of length bytes starting at offset
func (b *Buffer) Slice(offset uint32, length uint32) ([]byte, error) {
	if !b.InRange(offset, length) {
		return nil, utils.MakeError(ErrOutOfRange, "offset %#x, length %v, buffer size %v", offset, length, len(b.data))
	}
	return b.data[offset : offset+length], nil
}

func (b *Buffer) Uint8(offset uint32) (uint8, error) {
	raw, err := b.Slice(offset, 1)
	if err != nil {
		return 0, err
	}
	return raw[0], nil
}

func (b *Buffer) Uint16(offset uint32) (uint16, error) {
	raw, err := b.Slice(offset, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(raw), nil
}

func (b *Buffer) Uint32(offset uint32) (uint32, error) {
	raw, err := b.Slice(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw), nil
}

// Reads a null terminated string starting at offset. The terminator must be
// found before the end of the buffer.
func (b *Buffer) CString(offset uint32) (string, error) {
	if offset >= b.Len() {
		return "", utils.MakeError(ErrOutOfRange, "string offset %#x, buffer size %v", offset, len(b.data))
	}
	for end := offset; end < b.Len(); end++ {
		if b.data[end] == 0 {
			return string(b.data[offset:end]), nil
		}
	}
	return "", utils.MakeError(ErrNotTerminated, "string at offset %#x", offset)
}
