// Package source provides the byte sources the sim86 decoder fetches
// instructions from. A Tape reads a stream strictly in order; a Rom holds a
// whole image in memory and can be repositioned by taken jumps.
package source

// Source defines the interface for all byte sources.
type Source interface {
	// Rewind resets the source to its first byte, if possible.
	Rewind()
	// ReadByte returns the next byte, or io.EOF once the source is drained.
	ReadByte() (value byte, err error)
	// Offset returns the position of the next byte to be read.
	Offset() int
}

// Seeker is a Source that can be repositioned.
type Seeker interface {
	Source
	// Seek moves the read position to an absolute byte offset.
	Seek(offset int) error
}
