package cpu

import (
	"fmt"
)

// Instruction is a decoded instruction.
type Instruction struct {
	Kind      Kind
	Op        Op
	Wide      bool // Operates on 16-bit values.
	Sign      bool // Group immediate: one data byte, sign-extended.
	Direction bool // REG field is the destination.
	Mode      Mode
	Source    Operand // Jump target for jumps.
	Dest      Operand
	Length    int // Bytes consumed, including the instruction head.
}

// String returns the assembly language text of the instruction.
func (inst Instruction) String() string {
	if inst.Op.IsJump() {
		return fmt.Sprintf("%v %v", inst.Op, inst.Source)
	}

	if inst.Kind == KIND_IMM_RM && inst.Dest.IsMemory() {
		size := "byte"
		if inst.Wide {
			size = "word"
		}
		return fmt.Sprintf("%v %v %v, %v", inst.Op, size, inst.Dest, inst.Source)
	}

	return fmt.Sprintf("%v %v, %v", inst.Op, inst.Dest, inst.Source)
}
