package cpu

import (
	"errors"
	"fmt"

	"github.com/ezrec/sim86/translate"
)

var f = translate.From

var (
	// Stream errors
	ErrStreamEnd       = errors.New(f("stream end"))
	ErrStreamExhausted = errors.New(f("stream exhausted"))
	ErrSeek            = errors.New(f("source is not seekable"))

	// Execution errors
	ErrExecuteOp       = errors.New(f("operation not executable"))
	ErrOperandReadable = errors.New(f("operand not readable"))
	ErrOperandWritable = errors.New(f("operand not writable"))

	// Encoder errors
	ErrEncodeKind    = errors.New(f("kind not encodable"))
	ErrEncodeOp      = errors.New(f("operation not encodable"))
	ErrEncodeOperand = errors.New(f("operand not encodable"))
	ErrEncodeRange   = errors.New(f("value out of range"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrOperandSize        = errors.New(f("operand size mismatch"))
	ErrTargetInvalid      = errors.New(f("target invalid"))
)

// ErrUnrecognizedOpcode reports an instruction head that matched no
// pattern. Group is set when the opcode byte matched the group immediate
// pattern but its sub-operation field did not.
type ErrUnrecognizedOpcode struct {
	Offset int
	Word   Word
	Group  bool
}

func (eo *ErrUnrecognizedOpcode) Error() string {
	if eo.Group {
		return f("unrecognized group operation %v at offset %v",
			fmt.Sprintf("%08b %08b", eo.Word.Opcode, eo.Word.Mod), eo.Offset)
	}
	return f("unrecognized opcode %v at offset %v",
		fmt.Sprintf("%08b", eo.Word.Opcode), eo.Offset)
}

func (eo *ErrUnrecognizedOpcode) Is(err error) (ok bool) {
	_, ok = err.(*ErrUnrecognizedOpcode)
	return
}

// ErrInstruction attaches the failing instruction to an execution error.
type ErrInstruction Instruction

func (ei ErrInstruction) Error() string {
	return f("instruction '%v'", Instruction(ei).String())
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
