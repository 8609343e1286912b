package cpu

// Field extracts width bits of b, starting at bit offset (0 is the LSB).
func Field(b byte, offset, width uint) uint8 {
	return (b >> offset) & ((1 << width) - 1)
}

// Bit returns true if bit offset of b is set.
func Bit(b byte, offset uint) bool {
	return Field(b, offset, 1) == 1
}

// Word is the two-byte head fetched for every instruction.
type Word struct {
	Opcode byte // First byte: opcode bits plus d/w/s or register select.
	Mod    byte // Second byte: MOD/REG/R/M, or the first data byte.
}

// D returns the direction bit; set when REG is the destination.
func (w Word) D() bool {
	return Bit(w.Opcode, 1)
}

// S returns the sign-extension bit of the group immediate forms.
func (w Word) S() bool {
	return Bit(w.Opcode, 1)
}

// W returns the wide bit of the forms that keep it in bit 0.
func (w Word) W() bool {
	return Bit(w.Opcode, 0)
}

// ImmediateDecode decodes the wide bit and register of the 4-bit
// immediate-to-register form.
func (w Word) ImmediateDecode() (wide bool, reg uint8) {
	wide = Bit(w.Opcode, 3)
	reg = Field(w.Opcode, 0, 3)
	return
}

// RmDecode decodes the MOD, REG and R/M fields of the second byte.
func (w Word) RmDecode() (mode Mode, reg, rm uint8) {
	mode = Mode(Field(w.Mod, 6, 2))
	reg = Field(w.Mod, 3, 3)
	rm = Field(w.Mod, 0, 3)
	return
}

// makeRm packs MOD, REG and R/M fields into a second byte.
func makeRm(mode Mode, reg, rm uint8) byte {
	return (byte(mode&0x3) << 6) | ((reg & 0x7) << 3) | (rm & 0x7)
}
