package cpu

import (
	"errors"
	"fmt"
	"log"
)

// Flags are the condition bits recomputed by arithmetic and compares.
type Flags struct {
	Zero bool
	Sign bool
}

// Set updates the flags from a 16-bit result.
//
// The sign is always bit 15, also for 8-bit operations.
func (fl *Flags) Set(result uint16) {
	fl.Zero = result == 0
	fl.Sign = (result & 0x8000) != 0
}

// Cpu is the execution state for one run.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register RegisterFile // Register bank.
	Flags    Flags        // Zero and sign flags.
	Ip       uint16       // Current instruction pointer, a byte offset.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	return
}

// Reset zeroes the registers, flags, instruction pointer and counters.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Flags = Flags{}
	cpu.Ip = 0
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %04x\n", "ip", cpu.Ip)
	for reg, value := range cpu.Register.All() {
		text += fmt.Sprintf("% 5s: %04x\n", reg, value)
	}
	text += fmt.Sprintf("% 5s: %v\n", "zf", cpu.Flags.Zero)
	text += fmt.Sprintf("% 5s: %v\n", "sf", cpu.Flags.Sign)

	return
}

// getValue reads an operand. Memory reads as 0.
func (cpu *Cpu) getValue(op Operand) (value uint16, err error) {
	switch op.Class {
	case OPERAND_REGISTER:
		value = cpu.Register.Get(op.Register)
	case OPERAND_IMMEDIATE:
		value = op.Value
	case OPERAND_EFFECTIVE, OPERAND_DIRECT:
		value = 0
	default:
		err = ErrOperandReadable
	}
	return
}

// setValue writes an operand. Memory writes are discarded.
func (cpu *Cpu) setValue(op Operand, value uint16) (err error) {
	switch op.Class {
	case OPERAND_REGISTER:
		cpu.Register.Set(op.Register, value)
	case OPERAND_EFFECTIVE, OPERAND_DIRECT:
		// pass
	default:
		err = ErrOperandWritable
	}
	return
}

// doAlu computes an arithmetic operation on 16-bit values.
func (cpu *Cpu) doAlu(op Op, a, b uint16) (result uint16) {
	switch op {
	case OP_ADD:
		result = a + b
	case OP_SUB, OP_CMP:
		result = a - b
	}
	return
}

// Execute executes a single decoded instruction, and advances the
// instruction pointer past it unless a jump is taken.
func (cpu *Cpu) Execute(inst Instruction) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(inst), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.Ip, inst)
	}

	next_ip := cpu.Ip + uint16(inst.Length)

	switch inst.Op {
	case OP_MOV:
		var value uint16
		value, err = cpu.getValue(inst.Source)
		if err != nil {
			return
		}
		err = cpu.setValue(inst.Dest, value)
		if err != nil {
			return
		}
	case OP_ADD, OP_SUB, OP_CMP:
		var a, b uint16
		a, err = cpu.getValue(inst.Dest)
		if err != nil {
			return
		}
		b, err = cpu.getValue(inst.Source)
		if err != nil {
			return
		}
		if !inst.Wide {
			b &= 0xff
		}
		// 8-bit operands are zero-extended; flags see the 16-bit result,
		// the destination keeps its low byte.
		result := cpu.doAlu(inst.Op, a, b)
		cpu.Flags.Set(result)
		if inst.Op != OP_CMP {
			err = cpu.setValue(inst.Dest, result)
			if err != nil {
				return
			}
		}
	case OP_JNZ:
		if !cpu.Flags.Zero {
			next_ip = inst.Source.Value
		}
	default:
		if !inst.Op.IsJump() {
			err = ErrExecuteOp
			return
		}
		// Only jnz is wired to control flow.
	}

	cpu.Ip = next_ip
	cpu.Ticks++

	return
}
