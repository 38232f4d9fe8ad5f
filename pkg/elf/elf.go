// Package elf implements the minimal ELF32 container parsing the
// disassembler needs: header validation, the section table walk that
// locates .text/.symtab/.strtab, and symbol table iteration.
//
// Only little endian ELFCLASS32 RISC-V objects are supported. Everything
// else is rejected during Parse with a distinct error per validation step.
package elf

import "fmt"

// Fixed on-disk sizes of the ELF32 structures we read
const (
	HeaderSize        = 52
	SectionHeaderSize = 40
	SymbolSize        = 16
)

// e_ident byte indices and expected values
const (
	IdentMag0    = 0
	IdentMag1    = 1
	IdentMag2    = 2
	IdentMag3    = 3
	IdentClass   = 4
	IdentData    = 5
	IdentVersion = 6
	IdentSize    = 16

	Class32        = 1
	Data2LSB       = 1
	CurrentVersion = 1

	MachineRISCV = 0xf3
)

// Section header types consumed by the reader
const (
	ProgBitsSection    = 1
	SymbolTableSection = 2
	StringTableSection = 3
)

// Reserved st_shndx values with a symbolic rendering
const (
	SectionIndexUndef  = 0
	SectionIndexAbs    = 0xfff1
	SectionIndexCommon = 0xfff2
)

// ELF32 file header
type Header struct {
	Ident                  [IdentSize]byte
	Type                   uint16
	Machine                uint16
	Version                uint32
	Entry                  uint32
	ProgramHeaderOffset    uint32
	SectionHeaderOffset    uint32
	Flags                  uint32
	HeaderSize             uint16
	ProgramHeaderEntrySize uint16
	ProgramHeaderCount     uint16
	SectionHeaderEntrySize uint16
	SectionHeaderCount     uint16
	SectionNamesIndex      uint16
}

// ELF32 section header
type SectionHeader struct {
	Name      uint32
	Type      uint32
	Flags     uint32
	Addr      uint32
	Offset    uint32
	Size      uint32
	Link      uint32
	Info      uint32
	AddrAlign uint32
	EntSize   uint32
}

// ELF32 symbol table entry
type Symbol struct {
	Name         uint32
	Value        uint32
	Size         uint32
	Info         uint8
	Other        uint8
	SectionIndex uint16
}

// Symbol type, packed into the low 4 bits of st_info
type SymbolType uint8

// Symbol binding, packed into the high 4 bits of st_info
type SymbolBind uint8

// Symbol visibility, packed into the low 2 bits of st_other
type SymbolVisibility uint8

// Section index of a symbol, with reserved symbolic values
type SectionIndex uint16

func (s *Symbol) Type() SymbolType {
	return SymbolType(s.Info & 0xf)
}

func (s *Symbol) Bind() SymbolBind {
	return SymbolBind(s.Info >> 4)
}

func (s *Symbol) Visibility() SymbolVisibility {
	return SymbolVisibility(s.Other & 0x3)
}

func (s *Symbol) Section() SectionIndex {
	return SectionIndex(s.SectionIndex)
}

func (t SymbolType) String() string {
	switch t {
	case 0:
		return "NOTYPE"
	case 1:
		return "OBJECT"
	case 2:
		return "FUNC"
	case 3:
		return "SECTION"
	case 4:
		return "FILE"
	case 5:
		return "COMMON"
	case 6:
		return "TLS"
	}
	return "UNKNOWN"
}

func (b SymbolBind) String() string {
	switch b {
	case 0:
		return "LOCAL"
	case 1:
		return "GLOBAL"
	case 2:
		return "WEAK"
	}
	return "UNKNOWN"
}

func (v SymbolVisibility) String() string {
	switch v {
	case 0:
		return "DEFAULT"
	case 1:
		return "INTERNAL"
	case 2:
		return "HIDDEN"
	case 3:
		return "PROTECTED"
	}
	return "UNKNOWN"
}

func (i SectionIndex) String() string {
	switch i {
	case SectionIndexUndef:
		return "UNDEF"
	case SectionIndexAbs:
		return "ABS"
	case SectionIndexCommon:
		return "COMMON"
	}
	return fmt.Sprint(uint16(i))
}

func readHeader(b *Buffer, offset uint32) (Header, error) {
	var h Header

	raw, err := b.Slice(offset, IdentSize)
	if err != nil {
		return h, err
	}
	copy(h.Ident[:], raw)

	fields := []struct {
		u16 *uint16
		u32 *uint32
	}{
		{u16: &h.Type},
		{u16: &h.Machine},
		{u32: &h.Version},
		{u32: &h.Entry},
		{u32: &h.ProgramHeaderOffset},
		{u32: &h.SectionHeaderOffset},
		{u32: &h.Flags},
		{u16: &h.HeaderSize},
		{u16: &h.ProgramHeaderEntrySize},
		{u16: &h.ProgramHeaderCount},
		{u16: &h.SectionHeaderEntrySize},
		{u16: &h.SectionHeaderCount},
		{u16: &h.SectionNamesIndex},
	}

	at := offset + IdentSize
	for _, field := range fields {
		if field.u16 != nil {
			*field.u16, err = b.Uint16(at)
			at += 2
		} else {
			*field.u32, err = b.Uint32(at)
			at += 4
		}
		if err != nil {
			return h, err
		}
	}

	return h, nil
}

func readSectionHeader(b *Buffer, offset uint32) (SectionHeader, error) {
	var sh SectionHeader

	fields := []*uint32{
		&sh.Name, &sh.Type, &sh.Flags, &sh.Addr, &sh.Offset,
		&sh.Size, &sh.Link, &sh.Info, &sh.AddrAlign, &sh.EntSize,
	}

	at := offset
	for _, field := range fields {
		value, err := b.Uint32(at)
		if err != nil {
			return sh, err
		}
		*field = value
		at += 4
	}

	return sh, nil
}

func readSymbol(b *Buffer, offset uint32) (Symbol, error) {
	var sym Symbol
	var err error

	if sym.Name, err = b.Uint32(offset); err != nil {
		return sym, err
	}
	if sym.Value, err = b.Uint32(offset + 4); err != nil {
		return sym, err
	}
	if sym.Size, err = b.Uint32(offset + 8); err != nil {
		return sym, err
	}
	if sym.Info, err = b.Uint8(offset + 12); err != nil {
		return sym, err
	}
	if sym.Other, err = b.Uint8(offset + 13); err != nil {
		return sym, err
	}
	if sym.SectionIndex, err = b.Uint16(offset + 14); err != nil {
		return sym, err
	}

	return sym, nil
}
