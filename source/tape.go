package source

import (
	"io"
)

// Tape provides sequential reads from a byte stream. It wraps an io.Reader
// and keeps count of the bytes consumed so far.
type Tape struct {
	Input io.Reader

	offset int
}

var _ Source = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}

// ReadByte reads a single byte from the input stream.
func (tc *Tape) ReadByte() (value byte, err error) {
	var one [1]byte
	_, err = io.ReadFull(tc.Input, one[:])
	if err != nil {
		return
	}

	value = one[0]
	tc.offset++
	return
}

// Offset returns the number of bytes read from the tape.
func (tc *Tape) Offset() int {
	return tc.offset
}
