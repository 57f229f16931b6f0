package cli

import (
	"fmt"
	"io"
)

// IO bundles the command's input and output streams.
type IO struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance.
func NewIO(in io.Reader, out, errOut io.Writer) *IO {
	return &IO{in: in, out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Out returns the stdout writer, for TTY detection.
func (o *IO) Out() io.Writer { return o.out }

// In returns the input reader.
func (o *IO) In() io.Reader { return o.in }
