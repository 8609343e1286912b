package source

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_Load(t *testing.T) {
	assert := assert.New(t)

	rom, err := Load(bytes.NewReader([]byte{0xb8, 0x05, 0x00}))
	assert.NoError(err)
	assert.Equal(3, rom.Len())
	assert.Equal(0, rom.Offset())
}

func TestRom_ReadByte(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{0xb8, 0x05, 0x00}}

	var got []byte
	for {
		value, err := rom.ReadByte()
		if err == io.EOF {
			break
		}
		assert.NoError(err)
		got = append(got, value)
	}

	assert.Equal([]byte{0xb8, 0x05, 0x00}, got)
	assert.Equal(3, rom.Offset())
}

func TestRom_Seek(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{0x10, 0x20, 0x30, 0x40}}

	assert.NoError(rom.Seek(2))
	value, err := rom.ReadByte()
	assert.NoError(err)
	assert.Equal(byte(0x30), value)

	assert.NoError(rom.Seek(4))
	_, err = rom.ReadByte()
	assert.Equal(io.EOF, err)

	assert.Equal(ErrSeekRange, rom.Seek(5))
	assert.Equal(ErrSeekRange, rom.Seek(-1))
	assert.Equal(4, rom.Offset())
}

func TestRom_Rewind(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []byte{0x10, 0x20}}
	rom.ReadByte()
	rom.ReadByte()
	rom.Rewind()

	value, err := rom.ReadByte()
	assert.NoError(err)
	assert.Equal(byte(0x10), value)
}
