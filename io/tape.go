package io

import (
	"fmt"
	"io"
)

// Tape is the output channel of PRN. Each value is written to Output as
// a decimal number followed by a newline.
type Tape struct {
	Output io.Writer

	Count int // Values written since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape; only the counter is reset.
func (tc *Tape) Rewind() {
	tc.Count = 0
}

// Send writes the decimal value, newline terminated.
func (tc *Tape) Send(value byte) (err error) {
	if tc.Output == nil {
		err = ErrChannelClosed
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		return
	}

	tc.Count++

	return
}
