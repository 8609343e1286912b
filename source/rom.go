package source

import (
	"io"
)

// Rom is a random-access, read-only byte image.
type Rom struct {
	Data []byte

	readIndex int
}

var _ Seeker = (*Rom)(nil)

// Load reads an entire stream into a new Rom.
func Load(input io.Reader) (rom *Rom, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	rom = &Rom{Data: data}
	return
}

// Rewind moves the read position back to the start of the image.
func (rc *Rom) Rewind() {
	rc.readIndex = 0
}

// ReadByte returns the byte at the read position and advances it.
func (rc *Rom) ReadByte() (value byte, err error) {
	if rc.readIndex >= len(rc.Data) {
		err = io.EOF
		return
	}

	value = rc.Data[rc.readIndex]
	rc.readIndex++
	return
}

// Offset returns the read position.
func (rc *Rom) Offset() int {
	return rc.readIndex
}

// Seek sets the read position. Seeking to the end of the image is allowed;
// the next read reports io.EOF.
func (rc *Rom) Seek(offset int) (err error) {
	if offset < 0 || offset > len(rc.Data) {
		err = ErrSeekRange
		return
	}

	rc.readIndex = offset
	return
}

// Len returns the size of the image in bytes.
func (rc *Rom) Len() int {
	return len(rc.Data)
}
