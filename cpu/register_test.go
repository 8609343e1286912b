package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFile(t *testing.T) {
	assert := assert.New(t)

	var rf RegisterFile

	rf.Set(REG_AX, 0x1234)
	assert.Equal(uint16(0x34), rf.Get(REG_AL))
	assert.Equal(uint16(0x12), rf.Get(REG_AH))

	rf.Set(REG_AL, 0xff)
	assert.Equal(uint16(0x12ff), rf.Get(REG_AX))

	rf.Set(REG_AH, 0x1ab)
	assert.Equal(uint16(0xabff), rf.Get(REG_AX))

	rf.Set(REG_BH, 0x80)
	assert.Equal(uint16(0x8000), rf.Get(REG_BX))
	assert.Equal(uint16(0), rf.Get(REG_BL))

	rf.Set(REG_DI, 0xffff)
	assert.Equal(uint16(0xffff), rf[7])

	var names []string
	for reg, value := range rf.All() {
		names = append(names, reg.String())
		assert.Equal(rf.Get(reg), value)
	}
	assert.Equal([]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}, names)

	rf.Reset()
	assert.Equal(RegisterFile{}, rf)
}
