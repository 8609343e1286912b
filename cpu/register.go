package cpu

import (
	"iter"
)

// Register names one of the 8-bit or 16-bit general purpose registers.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_AL = Register(0)  // al
	REG_CL = Register(1)  // cl
	REG_DL = Register(2)  // dl
	REG_BL = Register(3)  // bl
	REG_AH = Register(4)  // ah
	REG_CH = Register(5)  // ch
	REG_DH = Register(6)  // dh
	REG_BH = Register(7)  // bh
	REG_AX = Register(8)  // ax
	REG_CX = Register(9)  // cx
	REG_DX = Register(10) // dx
	REG_BX = Register(11) // bx
	REG_SP = Register(12) // sp
	REG_BP = Register(13) // bp
	REG_SI = Register(14) // si
	REG_DI = Register(15) // di
)

// RegisterOf resolves a 3-bit register field. The wide bit selects the
// 16-bit set.
func RegisterOf(field uint8, wide bool) Register {
	reg := Register(field & 0x7)
	if wide {
		reg += REG_AX
	}
	return reg
}

// RegisterName resolves a 3-bit register field to its name.
func RegisterName(field uint8, wide bool) string {
	return RegisterOf(field, wide).String()
}

// Wide returns true for the 16-bit registers.
func (reg Register) Wide() bool {
	return reg >= REG_AX
}

// Field returns the 3-bit encoding of the register.
func (reg Register) Field() uint8 {
	return uint8(reg) & 0x7
}

// LookupRegister finds a register by name.
func LookupRegister(name string) (reg Register, ok bool) {
	for reg = REG_AL; reg <= REG_DI; reg++ {
		if reg.String() == name {
			ok = true
			return
		}
	}
	return
}

// RegisterFile holds the eight 16-bit registers, in encoding order.
//
// The 8-bit registers are views onto the low (al, cl, dl, bl) and high
// (ah, ch, dh, bh) bytes of ax, cx, dx and bx.
type RegisterFile [8]uint16

// cell returns the 16-bit cell index and the byte shift of a register.
func (reg Register) cell() (index int, shift uint, wide bool) {
	if reg.Wide() {
		return int(reg - REG_AX), 0, true
	}
	if reg >= REG_AH {
		return int(reg - REG_AH), 8, false
	}
	return int(reg), 0, false
}

// Get returns the value of a register, zero-extended for 8-bit registers.
func (rf *RegisterFile) Get(reg Register) uint16 {
	index, shift, wide := reg.cell()
	if wide {
		return rf[index]
	}
	return (rf[index] >> shift) & 0xff
}

// Set writes a register. 8-bit registers keep the other half of their cell.
func (rf *RegisterFile) Set(reg Register, value uint16) {
	index, shift, wide := reg.cell()
	if wide {
		rf[index] = value
		return
	}
	rf[index] = (rf[index] &^ (0xff << shift)) | ((value & 0xff) << shift)
}

// Reset zeroes all registers.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}

// All iterates the 16-bit registers in encoding order.
func (rf *RegisterFile) All() iter.Seq2[Register, uint16] {
	return func(yield func(reg Register, value uint16) bool) {
		for n, value := range rf {
			if !yield(REG_AX+Register(n), value) {
				return
			}
		}
	}
}
