package cpu

import (
	"iter"
)

// Opcode is the assembly of a single source line.
type Opcode struct {
	LineNo    int         // Source line number.
	Ip        int         // Byte offset of the instruction.
	Words     []string    // Mnemonic followed by the operand texts.
	Inst      Instruction // Assembled instruction.
	Bytes     []byte      // Encoded instruction.
	LinkLabel string      // Jump label resolved at link time.
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int // Byte index of the offset within the instruction.
}

func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip >= op.Ip && ip < op.Ip+len(op.Bytes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  ip - op.Ip,
			}
			break
		}
	}

	return
}

func (prog *Program) Binary() (bin []byte) {
	for _, op := range prog.Opcodes {
		bin = append(bin, op.Bytes...)
	}

	return
}

func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, inst Instruction) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Inst) {
				return
			}
		}
	}
}
