package cpu

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplacementSize(t *testing.T) {
	assert := assert.New(t)

	for rm := range uint8(8) {
		assert.Equal(0, DisplacementSize(MODE_REGISTER, rm))
		assert.Equal(1, DisplacementSize(MODE_MEMORY_DISP8, rm))
		assert.Equal(2, DisplacementSize(MODE_MEMORY_DISP16, rm))
		if rm == 0b110 {
			assert.Equal(2, DisplacementSize(MODE_MEMORY, rm))
		} else {
			assert.Equal(0, DisplacementSize(MODE_MEMORY, rm))
		}
	}
}

func TestResolveRm(t *testing.T) {
	assert := assert.New(t)

	bases := []string{"bx+si", "bx+di", "bp+si", "bp+di", "si", "di", "bp", "bx"}

	for rm := range uint8(8) {
		base := bases[rm]

		op := ResolveRm(MODE_MEMORY_DISP8, rm, true, 4)
		assert.Equal(OPERAND_EFFECTIVE, op.Class)
		assert.Equal(fmt.Sprintf("[%s + 4]", base), op.String())

		op = ResolveRm(MODE_MEMORY_DISP16, rm, false, 1000)
		assert.Equal(fmt.Sprintf("[%s + 1000]", base), op.String())

		op = ResolveRm(MODE_MEMORY_DISP8, rm, false, 0)
		assert.Equal(fmt.Sprintf("[%s]", base), op.String())

		if rm != 0b110 {
			op = ResolveRm(MODE_MEMORY, rm, true, 0)
			assert.Equal(fmt.Sprintf("[%s]", base), op.String())
		}
	}

	op := ResolveRm(MODE_MEMORY, 0b110, true, 0x1234)
	assert.Equal(OPERAND_DIRECT, op.Class)
	assert.Equal("[4660]", op.String())
	assert.True(op.IsMemory())

	op = ResolveRm(MODE_REGISTER, 0b001, true, 0)
	assert.Equal(RegisterOperand(REG_CX), op)
	assert.False(op.IsMemory())

	op = ResolveRm(MODE_REGISTER, 0b100, false, 0)
	assert.Equal("ah", op.String())
}

func TestRegisterName(t *testing.T) {
	assert := assert.New(t)

	narrow := []string{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}
	wide := []string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}

	for n := range uint8(8) {
		assert.Equal(narrow[n], RegisterName(n, false))
		assert.Equal(wide[n], RegisterName(n, true))

		reg, ok := LookupRegister(wide[n])
		assert.True(ok)
		assert.Equal(n, reg.Field())
		assert.True(reg.Wide())
	}

	_, ok := LookupRegister("ip")
	assert.False(ok)
}

func TestOperand_rmEncode(t *testing.T) {
	assert := assert.New(t)

	mode, rm, disp, err := Effective(0b111, 0).rmEncode(MODE_MEMORY)
	assert.NoError(err)
	assert.Equal(MODE_MEMORY, mode)
	assert.Equal(uint8(0b111), rm)
	assert.Empty(disp)

	mode, rm, disp, err = Direct(0x1234).rmEncode(MODE_MEMORY_DISP16)
	assert.NoError(err)
	assert.Equal(MODE_MEMORY, mode)
	assert.Equal(uint8(0b110), rm)
	assert.Equal([]byte{0x34, 0x12}, disp)

	_, _, disp, err = Effective(0b000, 0x1ff).rmEncode(MODE_MEMORY_DISP16)
	assert.NoError(err)
	assert.Equal([]byte{0xff, 0x01}, disp)

	_, _, _, err = Effective(0b000, 0x1ff).rmEncode(MODE_MEMORY_DISP8)
	assert.ErrorIs(err, ErrEncodeRange)

	_, _, _, err = Effective(0b110, 0).rmEncode(MODE_MEMORY)
	assert.ErrorIs(err, ErrEncodeOperand)

	_, _, _, err = Immediate(5).rmEncode(MODE_MEMORY)
	assert.ErrorIs(err, ErrEncodeOperand)
}
