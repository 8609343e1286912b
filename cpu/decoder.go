package cpu

import (
	"encoding/binary"
	"errors"
	"io"
	"log"
	"slices"

	"github.com/ezrec/sim86/source"
)

// Decoder turns a byte source into a sequence of instructions.
type Decoder struct {
	Verbose   bool             // Set to log every decoded instruction.
	Source    source.Source    // Byte source to decode from.
	ByteOrder binary.ByteOrder // Order of the instruction head fetch; little-endian if nil.

	consumed []byte // Bytes read by the current Decode.
	held     []byte // Bytes returned by Skip, read before the source.
}

// NewDecoder creates a little-endian decoder reading from src.
func NewDecoder(src source.Source) (dec *Decoder) {
	dec = &Decoder{
		Source:    src,
		ByteOrder: binary.LittleEndian,
	}
	return
}

// Offset returns the position of the next instruction in the source.
func (dec *Decoder) Offset() int {
	return dec.Source.Offset() - len(dec.held)
}

// Rewind rewinds the source and drops any held bytes.
func (dec *Decoder) Rewind() {
	dec.Source.Rewind()
	dec.held = dec.held[:0]
	dec.consumed = dec.consumed[:0]
}

// Seek moves decoding to an absolute offset. The source must be a
// source.Seeker.
func (dec *Decoder) Seek(offset int) (err error) {
	seeker, ok := dec.Source.(source.Seeker)
	if !ok {
		err = ErrSeek
		return
	}

	err = seeker.Seek(offset)
	if err != nil {
		return
	}

	dec.held = dec.held[:0]
	return
}

// Skip resynchronises after a failed Decode: the first skip bytes of the
// failed instruction are dropped and the rest are decoded again.
func (dec *Decoder) Skip(skip int) {
	if skip >= len(dec.consumed) {
		dec.consumed = dec.consumed[:0]
		return
	}

	dec.held = append(slices.Clone(dec.consumed[skip:]), dec.held...)
	dec.consumed = dec.consumed[:0]
}

// Consumed returns the bytes read by the last Decode.
func (dec *Decoder) Consumed() []byte {
	return dec.consumed
}

// readByte reads the next byte of the current instruction.
func (dec *Decoder) readByte() (value byte, err error) {
	if len(dec.held) > 0 {
		value = dec.held[0]
		dec.held = dec.held[1:]
	} else {
		value, err = dec.Source.ReadByte()
		if errors.Is(err, io.EOF) {
			err = ErrStreamExhausted
		}
		if err != nil {
			return
		}
	}

	dec.consumed = append(dec.consumed, value)
	return
}

// readValue reads a little-endian value of size bytes.
func (dec *Decoder) readValue(size int) (value uint16, err error) {
	for n := range size {
		var b byte
		b, err = dec.readByte()
		if err != nil {
			return
		}
		value |= uint16(b) << (8 * n)
	}
	return
}

// readData completes an immediate whose low byte was fetched with the
// instruction head.
func (dec *Decoder) readData(low byte, size int) (value uint16, err error) {
	value = uint16(low)
	if size == 2 {
		var high byte
		high, err = dec.readByte()
		if err != nil {
			return
		}
		value |= uint16(high) << 8
	}
	return
}

// Fetch reads the two-byte instruction head. ErrStreamEnd is returned if
// the source is empty, ErrStreamExhausted if only one byte is left.
func (dec *Decoder) Fetch() (word Word, err error) {
	var pair [2]byte

	pair[0], err = dec.readByte()
	if err == ErrStreamExhausted {
		err = ErrStreamEnd
		return
	}
	if err != nil {
		return
	}

	pair[1], err = dec.readByte()
	if err != nil {
		return
	}

	order := dec.ByteOrder
	if order == nil {
		order = binary.LittleEndian
	}

	value := order.Uint16(pair[:])
	word = Word{Opcode: byte(value), Mod: byte(value >> 8)}
	return
}

// resolveRm reads the displacement of a mode and R/M field and resolves
// the r/m operand.
func (dec *Decoder) resolveRm(mode Mode, rm uint8, wide bool) (op Operand, err error) {
	disp, err := dec.readValue(DisplacementSize(mode, rm))
	if err != nil {
		return
	}

	op = ResolveRm(mode, rm, wide, disp)
	return
}

// Decode decodes the next instruction.
//
// At a clean end of the source ErrStreamEnd is returned. A source that
// runs dry inside an instruction returns ErrStreamExhausted, and an
// instruction head that matches no pattern returns
// *ErrUnrecognizedOpcode; in both cases the consumed bytes stay available
// to Skip.
func (dec *Decoder) Decode() (inst Instruction, err error) {
	start := dec.Offset()
	dec.consumed = dec.consumed[:0]

	word, err := dec.Fetch()
	if err != nil {
		return
	}

	inst.Kind = Classify(word.Opcode)

	switch inst.Kind {
	case KIND_MOV_RM, KIND_ADD_RM, KIND_SUB_RM, KIND_CMP_RM:
		var reg, rm uint8
		inst.Op = inst.Kind.Op()
		inst.Direction = word.D()
		inst.Wide = word.W()
		inst.Mode, reg, rm = word.RmDecode()

		var rm_op Operand
		rm_op, err = dec.resolveRm(inst.Mode, rm, inst.Wide)
		if err != nil {
			return
		}
		reg_op := RegisterOperand(RegisterOf(reg, inst.Wide))

		if inst.Direction {
			inst.Dest, inst.Source = reg_op, rm_op
		} else {
			inst.Dest, inst.Source = rm_op, reg_op
		}
	case KIND_MOV_IMM_REG:
		var reg uint8
		inst.Op = OP_MOV
		inst.Wide, reg = word.ImmediateDecode()
		inst.Mode = MODE_REGISTER
		inst.Dest = RegisterOperand(RegisterOf(reg, inst.Wide))

		var value uint16
		value, err = dec.readData(word.Mod, DataSize(inst.Kind, inst.Op, false, inst.Wide))
		if err != nil {
			return
		}
		inst.Source = Immediate(value)
	case KIND_ADD_IMM_ACC, KIND_SUB_IMM_ACC, KIND_CMP_IMM_ACC:
		inst.Op = inst.Kind.Op()
		inst.Wide = word.W()
		inst.Mode = MODE_REGISTER
		inst.Dest = RegisterOperand(RegisterOf(0, inst.Wide))

		var value uint16
		value, err = dec.readData(word.Mod, DataSize(inst.Kind, inst.Op, false, inst.Wide))
		if err != nil {
			return
		}
		inst.Source = Immediate(value)
	case KIND_IMM_RM:
		var sub, rm uint8
		inst.Sign = word.S()
		inst.Wide = word.W()
		inst.Mode, sub, rm = word.RmDecode()

		var ok bool
		inst.Op, ok = GroupOp(sub)
		if !ok {
			err = &ErrUnrecognizedOpcode{Offset: start, Word: word, Group: true}
			return
		}

		inst.Dest, err = dec.resolveRm(inst.Mode, rm, inst.Wide)
		if err != nil {
			return
		}

		size := DataSize(inst.Kind, inst.Op, inst.Sign, inst.Wide)
		var value uint16
		value, err = dec.readValue(size)
		if err != nil {
			return
		}
		if size == 1 && inst.Sign && inst.Wide {
			value = uint16(int16(int8(value)))
		}
		inst.Source = Immediate(value)
	case KIND_JUMP:
		inst.Op, _ = JumpOp(word.Opcode)
		inst.Source = Immediate(uint16(word.Mod))
	default:
		err = &ErrUnrecognizedOpcode{Offset: start, Word: word}
		return
	}

	inst.Length = len(dec.consumed)

	if dec.Verbose {
		log.Printf("decode: %04x: % x: %v", start, dec.consumed, inst)
	}

	return
}
