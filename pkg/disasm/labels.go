package disasm

import "fmt"

type labelEntry struct {
	name       string
	synthIndex int
	named      bool
}

// LabelTable maps instruction addresses to labels. Named labels come from
// the symbol table; anonymous labels are synthesized for branch and jump
// targets that have no name, as L0, L1, ... in encounter order.
type LabelTable struct {
	entries    map[uint32]labelEntry
	synthCount int
}

func NewLabelTable() *LabelTable {
	return &LabelTable{
		entries: map[uint32]labelEntry{},
	}
}

// InsertNamed records a named label, overriding any existing entry at that
// address. All named labels must be inserted before the first EnsureSynth
// call so names are never shadowed by synthesized labels.
func (t *LabelTable) InsertNamed(addr uint32, name string) {
	t.entries[addr] = labelEntry{name: name, named: true}
}

// EnsureSynth records an anonymous label at addr unless the address already
// has an entry. Synthesized indices are assigned in call order, starting at
// zero, and are never reused.
func (t *LabelTable) EnsureSynth(addr uint32) {
	if _, exists := t.entries[addr]; exists {
		return
	}
	t.entries[addr] = labelEntry{synthIndex: t.synthCount}
	t.synthCount++
}

func (t *LabelTable) Has(addr uint32) bool {
	_, exists := t.entries[addr]
	return exists
}

// Name resolves the label at addr. Synthesized labels render as L<index>.
func (t *LabelTable) Name(addr uint32) (string, bool) {
	entry, exists := t.entries[addr]
	if !exists {
		return "", false
	}
	if entry.named {
		return entry.name, true
	}
	return fmt.Sprintf("L%d", entry.synthIndex), true
}

// Number of synthesized labels
func (t *LabelTable) SynthCount() int {
	return t.synthCount
}
