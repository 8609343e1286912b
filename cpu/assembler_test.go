package cpu

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sim86/source"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
}

func TestAssembler_Verbose(t *testing.T) {
	assert := assert.New(t)

	buff := &bytes.Buffer{}
	log.SetOutput(buff)
	flags := log.Flags()
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	}()

	asm := &Assembler{Verbose: true}
	_, err := asm.Parse(strings.NewReader("top: mov cx, 1\njnz top"))
	assert.NoError(err)

	// The listing follows the line trace, with linked jump targets.
	text := buff.String()
	assert.Contains(text, "0000: mov cx, 1\n")
	assert.Contains(text, "0003: jnz 0\n")
}

func TestAssembler_Lines(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line string
		code []byte
	}){
		{"mov cx, bx", []byte{0x8b, 0xcb}},
		{"mov ax, 5", []byte{0xb8, 0x05, 0x00}},
		{"mov cl, 12", []byte{0xb1, 0x0c}},
		{"mov dx, -2", []byte{0xba, 0xfe, 0xff}},
		{"mov bx, [4660]", []byte{0x8b, 0x1e, 0x34, 0x12}},
		{"mov [bx+di + 4999], cx", []byte{0x89, 0x89, 0x87, 0x13}},
		{"mov al, [bx + si]", []byte{0x8a, 0x00}},
		{"mov dx, [bp]", []byte{0x8b, 0x56, 0x00}},
		{"mov ah, [bx+si + 4]", []byte{0x8a, 0x60, 0x04}},
		{"add al, 9", []byte{0x04, 0x09}},
		{"add ax, 1000", []byte{0x05, 0xe8, 0x03}},
		{"sub bx, [bp]", []byte{0x2b, 0x5e, 0x00}},
		{"add si, 2", []byte{0x81, 0xc6, 0x02, 0x00}},
		{"add bl, 5", []byte{0x80, 0xc3, 0x05}},
		{"cmp cx, 10", []byte{0x83, 0xf9, 0x0a, 0x00}},
		{"cmp byte [bx], 34", []byte{0x80, 0x3f, 0x22}},
		{"add word [4660], 1", []byte{0x81, 0x06, 0x34, 0x12, 0x01, 0x00}},
		{"jnz 254", []byte{0x75, 0xfe}},
		{"loopnz 0x10", []byte{0xe0, 0x10}},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(entry.line))
		if !assert.NoError(err, entry.line) {
			continue
		}
		assert.Equal(entry.code, prog.Binary(), entry.line)

		// Assembled text decodes back to itself.
		dec := NewDecoder(&source.Rom{Data: prog.Binary()})
		inst, err := dec.Decode()
		assert.NoError(err, entry.line)

		expected := strings.Join(strings.Fields(entry.line), " ")
		expected = strings.ReplaceAll(expected, "bx + si", "bx+si")
		expected = strings.ReplaceAll(expected, "-2", "65534")
		expected = strings.ReplaceAll(expected, "0x10", "16")
		assert.Equal(expected, inst.String(), entry.line)
		assert.Equal(inst.String(), prog.Opcodes[0].Inst.String())
	}
}

func TestAssembler_NegativeByte(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		line string
		code []byte
		text string
	}){
		{"mov cl, -1", []byte{0xb1, 0xff}, "mov cl, 255"},
		{"add bl, -2", []byte{0x80, 0xc3, 0xfe}, "add bl, 254"},
		{"sub al, -128", []byte{0x2c, 0x80}, "sub al, 128"},
		{"cmp byte [bx], -1", []byte{0x80, 0x3f, 0xff}, "cmp byte [bx], 255"},
		{"mov cx, -1", []byte{0xb9, 0xff, 0xff}, "mov cx, 65535"},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(entry.line))
		if !assert.NoError(err, entry.line) {
			continue
		}
		assert.Equal(entry.code, prog.Binary(), entry.line)
		assert.Equal(entry.text, prog.Opcodes[0].Inst.String(), entry.line)
	}
}

func TestAssembler_Program(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; count down from COUNT",
		".equ COUNT 3",
		"      mov cx, COUNT",
		"top:  sub cx, 1       ; decrement",
		"      jnz top",
		"      mov bx, $(COUNT * 2 + top)",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(err) {
		return
	}

	assert.Equal(3, asm.Label["top"])
	assert.Equal("3", asm.Equate["COUNT"])

	expected := []Opcode{
		{LineNo: 3, Ip: 0, Words: []string{"mov", "cx", "3"}, Bytes: []byte{0xb9, 0x03, 0x00}},
		{LineNo: 4, Ip: 3, Words: []string{"sub", "cx", "1"}, Bytes: []byte{0x81, 0xe9, 0x01, 0x00}},
		{LineNo: 5, Ip: 7, Words: []string{"jnz", "top"}, Bytes: []byte{0x75, 0x03}, LinkLabel: "top"},
		{LineNo: 6, Ip: 9, Words: []string{"mov", "bx", "9"}, Bytes: []byte{0xbb, 0x09, 0x00}},
	}

	assert.Equal(len(expected), len(prog.Opcodes))
	for n := range min(len(expected), len(prog.Opcodes)) {
		op := prog.Opcodes[n]
		assert.Equal(expected[n].LineNo, op.LineNo)
		assert.Equal(expected[n].Ip, op.Ip)
		assert.Equal(expected[n].Words, op.Words)
		assert.Equal(expected[n].Bytes, op.Bytes)
		assert.Equal(expected[n].LinkLabel, op.LinkLabel)
		assert.Equal(len(op.Bytes), op.Inst.Length)
	}

	assert.Equal("jnz 3", prog.Opcodes[2].Inst.String())

	// Run the assembled loop to completion.
	cpu := NewCpu()
	dec := NewDecoder(&source.Rom{Data: prog.Binary()})
	for range 100 {
		assert.NoError(dec.Seek(int(cpu.Ip)))
		inst, err := dec.Decode()
		if errors.Is(err, ErrStreamEnd) {
			break
		}
		assert.NoError(err)
		assert.NoError(cpu.Execute(inst))
	}
	assert.Equal(uint16(0), cpu.Register.Get(REG_CX))
	assert.Equal(uint16(9), cpu.Register.Get(REG_BX))
	assert.Equal(uint16(12), cpu.Ip)
	assert.True(cpu.Flags.Zero)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("PTR", "bx")
	asm.Predefine("LIMIT", "0x20")

	prog, err := asm.Parse(strings.NewReader("cmp PTR, LIMIT\nmov al, LINENO"))
	assert.NoError(err)
	assert.Equal([]byte{0x83, 0xfb, 0x20, 0x00, 0xb0, 0x02}, prog.Binary())
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		program string
		lineno  int
		err     error
	}){
		{"nop", 1, ErrInstructionInvalid},
		{"mov ax", 1, ErrOpcodeValueMissing},
		{"mov ax, bx, cx", 1, ErrOpcodeExtraArgs},
		{"jnz", 1, ErrOpcodeValueMissing},
		{"jnz 1, 2", 1, ErrOpcodeExtraArgs},
		{"jnz 256", 1, ErrTargetInvalid},
		{"jnz [5]", 1, ErrTargetInvalid},
		{"mov ax, bl", 1, ErrOperandSize},
		{"mov byte ax, 1", 1, ErrOperandSize},
		{"add [bx], 1", 1, ErrOperandSize},
		{"mov word [bx], 1", 1, ErrInstructionInvalid},
		{"mov [bx], [si]", 1, ErrOperandInvalid},
		{"mov 5, ax", 1, ErrOperandInvalid},
		{"mov ax, [sp]", 1, ErrOperandInvalid},
		{"mov ax, label", 1, ErrOperandInvalid},
		{"mov al, 256", 1, ErrEncodeRange},
		{"mov cl, -129", 1, ErrEncodeRange},
		{"mov cl, 0xffff", 1, ErrEncodeRange},
		{"mov ax, 0x10000", 1, ErrEncodeRange},
		{".equ X", 1, ErrEquateSyntax},
		{".equ X 1\n.equ X 2", 2, ErrEquateDuplicate},
		{"a:\na:", 2, ErrLabelDuplicate},
		{"mov ax, 1\njnz nowhere", 2, ErrLabelMissing("nowhere")},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.program))
		assert.ErrorIs(err, entry.err, entry.program)

		var se *ErrSyntax
		if assert.True(errors.As(err, &se), entry.program) {
			assert.Equal(entry.lineno, se.LineNo, entry.program)
		}
	}

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("mov ax, $(1 +)"))
	assert.Error(err)

	_, err = asm.Parse(strings.NewReader(`mov ax, $("text")`))
	assert.ErrorIs(err, ErrParseExpression(`"text"`))

	_, err = asm.Parse(strings.NewReader("mov ax, 12abc"))
	assert.ErrorIs(err, ErrParseNumber("12abc"))
}
