// Package trace renders supervisor transitions as text lines for a serial
// console. It does not allocate per line and never imports fmt.
package trace

import (
	"io"

	"buzzalarm-go/types"
	"buzzalarm-go/x/conv"
)

// Writer is a supervisor.Observer writing lines like
//
//	tick=00000042 wakeup -> run
type Writer struct {
	w   io.Writer
	buf [64]byte
}

func New(w io.Writer) *Writer { return &Writer{w: w} }

func (t *Writer) Transition(step uint32, from, to types.State) {
	b := append(t.buf[:0], "tick="...)
	b = conv.AppendPadded(b, uint64(step), 8)
	b = append(b, ' ')
	b = append(b, from.String()...)
	b = append(b, " -> "...)
	b = append(b, to.String()...)
	b = append(b, '\n')
	// A stalled console must not hold up the loop; drop the line.
	_, _ = t.w.Write(b)
}
