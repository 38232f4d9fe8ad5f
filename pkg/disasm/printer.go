package disasm

import (
	"fmt"
	"io"
)

// printer wraps the output sink with printf style writes and a latched
// write error: the first failing write sticks, later writes become no-ops,
// and the error is surfaced once at the end of the run.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) Err() error {
	return p.err
}
