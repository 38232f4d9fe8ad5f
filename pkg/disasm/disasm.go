// Package disasm drives the disassembly of a parsed ELF32 RISC-V object:
// it primes the label table from the symbol table, harvests branch and jump
// targets from .text, and renders the instruction listing and the symbol
// table dump.
package disasm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bogdan-nikitin/disasm/pkg/elf"
	"github.com/bogdan-nikitin/disasm/pkg/riscv"
)

var ErrWrite = errors.New("write error")

// Options configures a Disassembler
type Options struct {
	// Logger receives per-pass diagnostics at debug level. Nil disables logging.
	Logger *slog.Logger
}

type symbolRecord struct {
	sym  elf.Symbol
	name string
}

// Disassembler performs the two passes over .text and the symbol table walk
type Disassembler struct {
	file    *elf.File
	labels  *LabelTable
	log     *slog.Logger
	symbols []symbolRecord

	instructions []riscv.Instruction
	prepared     bool
}

func New(file *elf.File, opts *Options) *Disassembler {
	logger := slog.New(slog.DiscardHandler)
	if opts != nil && opts.Logger != nil {
		logger = opts.Logger
	}
	return &Disassembler{
		file:   file,
		labels: NewLabelTable(),
		log:    logger,
	}
}

// Prepare reads and validates all symbol table entries, primes the label
// table with their names, then decodes .text once and synthesizes labels
// for every direct branch and jump target. It must succeed before any
// output is written, so a bad symbol aborts the run without partial output.
func (d *Disassembler) Prepare() error {
	if d.prepared {
		return nil
	}

	count := d.file.SymbolCount()
	d.symbols = make([]symbolRecord, 0, count)

	for i := uint32(0); i < count; i++ {
		sym, err := d.file.Symbol(i)
		if err != nil {
			return err
		}
		name, err := d.file.SymbolName(sym)
		if err != nil {
			return err
		}
		d.symbols = append(d.symbols, symbolRecord{sym: sym, name: name})
		d.labels.InsertNamed(sym.Value, name)
	}
	d.log.Debug("symbol table read", "symbols", len(d.symbols))

	entry := d.file.Header.Entry
	size := d.file.Text.Size
	d.instructions = make([]riscv.Instruction, 0, size/riscv.InstructionSize)

	for offset := uint32(0); offset < size; offset += riscv.InstructionSize {
		word, err := d.file.TextWord(offset)
		if err != nil {
			return err
		}
		inst := riscv.Decode(entry+offset, word)
		if target, ok := inst.Target(); ok {
			d.labels.EnsureSynth(target)
		}
		d.instructions = append(d.instructions, inst)
	}
	d.log.Debug("targets harvested",
		"instructions", len(d.instructions),
		"synthesized", d.labels.SynthCount())

	d.prepared = true
	return nil
}

// Labels exposes the populated label table. Prepare must have run.
func (d *Disassembler) Labels() *LabelTable {
	return d.labels
}

// WriteText renders the .text listing with inline labels
func (d *Disassembler) WriteText(w io.Writer) error {
	if err := d.Prepare(); err != nil {
		return err
	}
	p := &printer{w: w}
	d.writeText(p)
	return p.Err()
}

// WriteSymtab renders the symbol table dump
func (d *Disassembler) WriteSymtab(w io.Writer) error {
	if err := d.Prepare(); err != nil {
		return err
	}
	p := &printer{w: w}
	d.writeSymtab(p)
	return p.Err()
}

// Run performs the full pipeline and writes the complete listing: the .text
// section followed by the symbol table. A failed write latches; the first
// write error is returned once, wrapped in ErrWrite.
func (d *Disassembler) Run(w io.Writer) error {
	if err := d.Prepare(); err != nil {
		return err
	}

	p := &printer{w: w}
	d.writeText(p)
	p.printf("\n")
	d.writeSymtab(p)

	if err := p.Err(); err != nil {
		return errors.Join(ErrWrite, err)
	}
	return nil
}

func (d *Disassembler) writeText(p *printer) {
	p.printf(".text\n")

	for _, inst := range d.instructions {
		if name, ok := d.labels.Name(inst.Addr); ok {
			p.printf("%08x   <%s>:\n", inst.Addr, name)
		}
		d.writeInstruction(p, &inst)
	}
}

func (d *Disassembler) formatTarget(inst *riscv.Instruction) string {
	target, _ := inst.Target()
	name, _ := d.labels.Name(target)
	return fmt.Sprintf("0x%x <%s>", target, name)
}

func (d *Disassembler) writeInstruction(p *printer, inst *riscv.Instruction) {
	switch inst.Form {
	case riscv.FormR:
		p.printf("   %05x:\t%08x\t%7s\t%s, %s, %s\n",
			inst.Addr, inst.Word, inst.Mnemonic, inst.Rd, inst.Rs1, inst.Rs2)
	case riscv.FormI:
		p.printf("   %05x:\t%08x\t%7s\t%s, %s, %d\n",
			inst.Addr, inst.Word, inst.Mnemonic, inst.Rd, inst.Rs1, inst.Imm)
	case riscv.FormShift:
		p.printf("   %05x:\t%08x\t%7s\t%s, %s, %d\n",
			inst.Addr, inst.Word, inst.Mnemonic, inst.Rd, inst.Rs1, inst.Shamt)
	case riscv.FormLoad:
		p.printf("   %05x:\t%08x\t%7s\t%s, %d(%s)\n",
			inst.Addr, inst.Word, inst.Mnemonic, inst.Rd, inst.Imm, inst.Rs1)
	case riscv.FormS:
		p.printf("   %05x:\t%08x\t%7s\t%s, %d(%s)\n",
			inst.Addr, inst.Word, inst.Mnemonic, inst.Rs2, inst.Imm, inst.Rs1)
	case riscv.FormB:
		p.printf("   %05x:\t%08x\t%7s\t%s, %s, %s\n",
			inst.Addr, inst.Word, inst.Mnemonic, inst.Rs1, inst.Rs2, d.formatTarget(inst))
	case riscv.FormU:
		p.printf("   %05x:\t%08x\t%7s\t%s, %d\n",
			inst.Addr, inst.Word, inst.Mnemonic, inst.Rd, inst.Imm)
	case riscv.FormJ:
		p.printf("   %05x:\t%08x\t%7s\t%s, %s\n",
			inst.Addr, inst.Word, inst.Mnemonic, inst.Rd, d.formatTarget(inst))
	case riscv.FormSystem:
		p.printf("   %05x:\t%08x\t%7s\n", inst.Addr, inst.Word, inst.Mnemonic)
	default:
		p.printf("   %05x:\t%08x\t%s\n", inst.Addr, inst.Word, riscv.UnknownMnemonic)
	}
}

func (d *Disassembler) writeSymtab(p *printer) {
	p.printf(".symtab\n")
	p.printf("Symbol Value          \tSize Type \tBind \tVis   \tIndex Name\n")

	for i, record := range d.symbols {
		p.printf("[%4d] 0x%-15X %5d %-8s %-8s %-8s %6s %s\n",
			i, record.sym.Value, record.sym.Size,
			record.sym.Type(), record.sym.Bind(), record.sym.Visibility(),
			record.sym.Section(), record.name)
	}
}
