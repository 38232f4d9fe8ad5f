package elf

import (
	"errors"

	"github.com/bogdan-nikitin/disasm/pkg/utils"
)

var (
	ErrEmpty           = errors.New("empty input file")
	ErrBadHeader       = errors.New("malformed ELF header")
	ErrBadSectionTable = errors.New("bad section table")
	ErrBadSymbol       = errors.New("bad symbol")
)

// The name the .text section must carry in the section name string table
const TextSectionName = ".text"

// File is the parsed view of a validated ELF32 RISC-V object. It borrows the
// underlying Buffer; the section headers are decoded copies.
type File struct {
	Buffer *Buffer
	Header Header

	Text   SectionHeader
	Symtab SectionHeader
	Strtab SectionHeader
}

// Parse validates the ELF32 container and locates the .text, .symtab and
// .strtab sections. Each validation step fails with its own error so the
// caller can report exactly what is wrong with the input.
func Parse(buffer *Buffer) (*File, error) {
	if buffer.Len() == 0 {
		return nil, ErrEmpty
	}
	if !buffer.InRange(0, HeaderSize) {
		return nil, utils.MakeError(ErrBadHeader, "file too small for an ELF32 header (%v bytes)", buffer.Len())
	}

	header, err := readHeader(buffer, 0)
	if err != nil {
		return nil, utils.MakeError(ErrBadHeader, "%v", err)
	}

	if header.Ident[IdentMag0] != 0x7f ||
		header.Ident[IdentMag1] != 'E' ||
		header.Ident[IdentMag2] != 'L' ||
		header.Ident[IdentMag3] != 'F' {
		return nil, utils.MakeError(ErrBadHeader, "input file is not an ELF file")
	}
	if header.Ident[IdentClass] != Class32 {
		return nil, utils.MakeError(ErrBadHeader, "only 32 bit files are supported")
	}
	if header.Ident[IdentData] != Data2LSB {
		return nil, utils.MakeError(ErrBadHeader, "only little-endian files are supported")
	}
	if header.Ident[IdentVersion] != CurrentVersion {
		return nil, utils.MakeError(ErrBadHeader, "incorrect ELF version")
	}
	if header.Machine != MachineRISCV {
		return nil, utils.MakeError(ErrBadHeader, "not a RISC-V file")
	}
	if header.Version != CurrentVersion {
		return nil, utils.MakeError(ErrBadHeader, "incorrect format version")
	}
	if header.Entry == 0 {
		return nil, utils.MakeError(ErrBadHeader, "no entry point")
	}

	file := &File{
		Buffer: buffer,
		Header: header,
	}

	if err := file.locateSections(); err != nil {
		return nil, err
	}

	return file, nil
}

func (f *File) sectionHeaderAt(index uint16) (SectionHeader, error) {
	offset := f.Header.SectionHeaderOffset + uint32(index)*uint32(f.Header.SectionHeaderEntrySize)
	sh, err := readSectionHeader(f.Buffer, offset)
	if err != nil {
		return sh, utils.MakeError(ErrBadSectionTable, "section header %v out of range", index)
	}
	return sh, nil
}

func (f *File) locateSections() error {
	if f.Header.SectionNamesIndex >= f.Header.SectionHeaderCount {
		return utils.MakeError(ErrBadSectionTable, "section name string table index %v out of range", f.Header.SectionNamesIndex)
	}

	sectionNames, err := f.sectionHeaderAt(f.Header.SectionNamesIndex)
	if err != nil {
		return err
	}
	if !f.Buffer.InRange(sectionNames.Offset, sectionNames.Size) {
		return utils.MakeError(ErrBadSectionTable, "section name string table extends past end of file")
	}

	var text, symtab *SectionHeader

	for i := uint16(0); i < f.Header.SectionHeaderCount; i++ {
		section, err := f.sectionHeaderAt(i)
		if err != nil {
			return err
		}

		switch section.Type {
		case ProgBitsSection:
			if text != nil {
				break
			}
			name, err := f.Buffer.CString(sectionNames.Offset + section.Name)
			if err != nil {
				return utils.MakeError(ErrBadSectionTable, "section %v has no readable name", i)
			}
			if name == TextSectionName {
				sh := section
				text = &sh
			}
		case SymbolTableSection:
			if symtab == nil {
				sh := section
				symtab = &sh
			}
		}
	}

	if text == nil {
		return utils.MakeError(ErrBadSectionTable, "%v not found", TextSectionName)
	}
	if text.Size%4 != 0 {
		return utils.MakeError(ErrBadSectionTable, "%v size %v is not a multiple of 4", TextSectionName, text.Size)
	}
	if !f.Buffer.InRange(text.Offset, text.Size) {
		return utils.MakeError(ErrBadSectionTable, "%v extends past end of file", TextSectionName)
	}
	if symtab == nil {
		return utils.MakeError(ErrBadSectionTable, ".symtab not found")
	}
	if symtab.EntSize == 0 {
		return utils.MakeError(ErrBadSectionTable, ".symtab entry size is zero")
	}
	if symtab.Link >= uint32(f.Header.SectionHeaderCount) {
		return utils.MakeError(ErrBadSectionTable, ".strtab index %v out of range", symtab.Link)
	}

	strtab, err := f.sectionHeaderAt(uint16(symtab.Link))
	if err != nil {
		return err
	}
	if !f.Buffer.InRange(strtab.Offset, strtab.Size) {
		return utils.MakeError(ErrBadSectionTable, ".strtab extends past end of file")
	}

	f.Text = *text
	f.Symtab = *symtab
	f.Strtab = strtab

	return nil
}

// Number of entries in the symbol table
func (f *File) SymbolCount() uint32 {
	return f.Symtab.Size / f.Symtab.EntSize
}

// Reads symbol table entry i. The entry must be fully inside the buffer.
func (f *File) Symbol(i uint32) (Symbol, error) {
	offset := f.Symtab.Offset + i*f.Symtab.EntSize
	if !f.Buffer.InRange(offset, SymbolSize) {
		return Symbol{}, utils.MakeError(ErrBadSymbol, "symbol %v extends past end of file", i)
	}
	sym, err := readSymbol(f.Buffer, offset)
	if err != nil {
		return Symbol{}, utils.MakeError(ErrBadSymbol, "symbol %v: %v", i, err)
	}
	return sym, nil
}

// Resolves the name of a symbol in the associated string table
func (f *File) SymbolName(sym Symbol) (string, error) {
	name, err := f.Buffer.CString(f.Strtab.Offset + sym.Name)
	if err != nil {
		return "", utils.MakeError(ErrBadSymbol, "symbol name at %#x: %v", sym.Name, err)
	}
	return name, nil
}

// Reads the 32 bit instruction word at the given offset inside .text
func (f *File) TextWord(offset uint32) (uint32, error) {
	return f.Buffer.Uint32(f.Text.Offset + offset)
}
