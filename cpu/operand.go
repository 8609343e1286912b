package cpu

import (
	"fmt"
)

// OperandClass is the variant held by an Operand.
type OperandClass int

//go:generate go tool stringer -linecomment -type=OperandClass
const (
	OPERAND_NONE      = OperandClass(0) // none
	OPERAND_REGISTER  = OperandClass(1) // reg
	OPERAND_EFFECTIVE = OperandClass(2) // ea
	OPERAND_DIRECT    = OperandClass(3) // direct
	OPERAND_IMMEDIATE = OperandClass(4) // imm
)

// Operand is a symbolic instruction operand.
type Operand struct {
	Class        OperandClass
	Register     Register // OPERAND_REGISTER
	Base         uint8    // OPERAND_EFFECTIVE: R/M field selecting the base expression.
	Displacement uint16   // OPERAND_EFFECTIVE
	Value        uint16   // OPERAND_DIRECT address, or OPERAND_IMMEDIATE value.
}

// effectiveBase is indexed by the R/M field.
var effectiveBase = [8]string{
	"bx+si",
	"bx+di",
	"bp+si",
	"bp+di",
	"si",
	"di",
	"bp",
	"bx",
}

// rmDirect is the R/M value that selects a direct address when MOD is 00.
const rmDirect = 0b110

// RegisterOperand makes a register operand.
func RegisterOperand(reg Register) Operand {
	return Operand{Class: OPERAND_REGISTER, Register: reg}
}

// Immediate makes an immediate operand.
func Immediate(value uint16) Operand {
	return Operand{Class: OPERAND_IMMEDIATE, Value: value}
}

// Effective makes an effective address operand.
func Effective(rm uint8, displacement uint16) Operand {
	return Operand{Class: OPERAND_EFFECTIVE, Base: rm & 0x7, Displacement: displacement}
}

// Direct makes a direct address operand.
func Direct(address uint16) Operand {
	return Operand{Class: OPERAND_DIRECT, Value: address}
}

// IsMemory returns true for effective and direct address operands.
func (op Operand) IsMemory() bool {
	return op.Class == OPERAND_EFFECTIVE || op.Class == OPERAND_DIRECT
}

// String returns the assembly language text of the operand.
func (op Operand) String() string {
	switch op.Class {
	case OPERAND_REGISTER:
		return op.Register.String()
	case OPERAND_EFFECTIVE:
		base := effectiveBase[op.Base&0x7]
		if op.Displacement != 0 {
			return fmt.Sprintf("[%s + %d]", base, op.Displacement)
		}
		return fmt.Sprintf("[%s]", base)
	case OPERAND_DIRECT:
		return fmt.Sprintf("[%d]", op.Value)
	case OPERAND_IMMEDIATE:
		return fmt.Sprintf("%d", op.Value)
	}
	return ""
}

// DisplacementSize returns the number of displacement bytes that follow
// the MOD/REG/R/M byte for a mode and R/M field.
func DisplacementSize(mode Mode, rm uint8) int {
	switch mode {
	case MODE_MEMORY:
		if rm&0x7 == rmDirect {
			return 2
		}
	case MODE_MEMORY_DISP8:
		return 1
	case MODE_MEMORY_DISP16:
		return 2
	}
	return 0
}

// ResolveRm expands a mode and R/M field into an operand. The displacement
// is the value of the DisplacementSize bytes already read; it is ignored
// when the mode carries none.
func ResolveRm(mode Mode, rm uint8, wide bool, displacement uint16) (op Operand) {
	switch mode {
	case MODE_REGISTER:
		op = RegisterOperand(RegisterOf(rm, wide))
	case MODE_MEMORY:
		if rm&0x7 == rmDirect {
			op = Direct(displacement)
		} else {
			op = Effective(rm, 0)
		}
	case MODE_MEMORY_DISP8, MODE_MEMORY_DISP16:
		op = Effective(rm, displacement)
	}
	return
}

// rmEncode returns the mode, R/M field and displacement bytes that encode
// an operand in the r/m position. The mode of effective addresses is
// taken from hint, which must be one of the memory modes.
func (op Operand) rmEncode(hint Mode) (mode Mode, rm uint8, disp []byte, err error) {
	switch op.Class {
	case OPERAND_REGISTER:
		mode = MODE_REGISTER
		rm = op.Register.Field()
	case OPERAND_DIRECT:
		mode = MODE_MEMORY
		rm = rmDirect
		disp = []byte{byte(op.Value), byte(op.Value >> 8)}
	case OPERAND_EFFECTIVE:
		rm = op.Base & 0x7
		mode = hint
		switch mode {
		case MODE_MEMORY:
			if rm == rmDirect || op.Displacement != 0 {
				err = ErrEncodeOperand
			}
		case MODE_MEMORY_DISP8:
			if op.Displacement > 0xff {
				err = ErrEncodeRange
			}
			disp = []byte{byte(op.Displacement)}
		case MODE_MEMORY_DISP16:
			disp = []byte{byte(op.Displacement), byte(op.Displacement >> 8)}
		default:
			err = ErrEncodeOperand
		}
	default:
		err = ErrEncodeOperand
	}
	return
}
