// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the 8086 subset.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to byte offsets.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

var (
	parenRe = regexp.MustCompile(`\$\([^\$]*\)`)
	identRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	labelRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// valueOf returns the value of a simple word, as a 16-bit two's
// complement value.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 > 0xffff || v64 < -0x8000 {
		err = ErrEncodeRange
		return
	}

	value = uint16(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, perr := strconv.ParseInt(str, 0, 64)
		if perr != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single line into its mnemonic and operand texts.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	// .equ CONST VALUE
	if fields[0] == ".equ" {
		if len(fields) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[fields[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[fields[1]] = fields[2]
		return
	}

	for strings.HasSuffix(fields[0], ":") {
		label := fields[0][:len(fields[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.currentIp()
		fields = fields[1:]
		if len(fields) == 0 {
			return
		}
	}

	words = []string{fields[0]}
	rest := strings.Join(fields[1:], " ")
	if len(rest) == 0 {
		return
	}

	for _, arg := range strings.Split(rest, ",") {
		arg = strings.TrimSpace(arg)
		// Check for equates next
		arg = identRe.ReplaceAllStringFunc(arg, func(word string) string {
			equate, ok := asm.Equate[word]
			if ok {
				return equate
			}
			return word
		})
		words = append(words, arg)
	}

	return
}

// currentIp gets the current byte offset.
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + len(last.Bytes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		label := op.LinkLabel
		ip, ok := asm.Label[label]
		if !ok {
			err = ErrLabelMissing(label)
			return
		}
		if ip > 0xff {
			err = ErrTargetInvalid
			return
		}
		op.Inst.Source = Immediate(uint16(ip))
		op.Bytes[len(op.Bytes)-1] = byte(ip)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	if asm.Verbose {
		for ip, inst := range prog.Codes() {
			log.Printf("%04x: %v", ip, inst)
		}
	}

	return
}

// size is an explicit operand size prefix.
type size int

const (
	sizeNone = size(iota)
	sizeByte
	sizeWord
)

// parseOperand parses an operand text. A word that is neither a register,
// a number nor a memory reference is returned as a label.
func (asm *Assembler) parseOperand(text string) (op Operand, sz size, label string, err error) {
	if len(text) == 0 {
		err = ErrOperandInvalid
		return
	}

	if prefix, rest, ok := strings.Cut(text, " "); ok {
		switch prefix {
		case "byte":
			sz = sizeByte
			text = strings.TrimSpace(rest)
		case "word":
			sz = sizeWord
			text = strings.TrimSpace(rest)
		}
	}

	if strings.HasPrefix(text, "[") {
		if !strings.HasSuffix(text, "]") {
			err = ErrOperandInvalid
			return
		}
		op, err = asm.parseMemory(text[1 : len(text)-1])
		return
	}

	reg, ok := LookupRegister(text)
	if ok {
		op = RegisterOperand(reg)
		if (sz == sizeByte && reg.Wide()) || (sz == sizeWord && !reg.Wide()) {
			err = ErrOperandSize
		}
		return
	}

	value, err := asm.valueOf(text)
	if err == nil {
		op = Immediate(value)
		return
	}

	if labelRe.MatchString(text) {
		label = text
		err = nil
		return
	}

	return
}

// parseMemory parses the inside of a memory reference: a base expression
// and displacements joined by '+', or a single direct address.
func (asm *Assembler) parseMemory(text string) (op Operand, err error) {
	var regs []string
	var disp int

	for part := range strings.SplitSeq(text, "+") {
		part = strings.TrimSpace(part)
		_, is_reg := LookupRegister(part)
		if is_reg {
			regs = append(regs, part)
			continue
		}
		var value uint16
		value, err = asm.valueOf(part)
		if err != nil {
			return
		}
		disp += int(value)
	}

	if disp > 0xffff {
		err = ErrEncodeRange
		return
	}

	if len(regs) == 0 {
		op = Direct(uint16(disp))
		return
	}

	base := strings.Join(regs, "+")
	rm := slices.Index(effectiveBase[:], base)
	if rm < 0 {
		err = ErrOperandInvalid
		return
	}

	op = Effective(uint8(rm), uint16(disp))
	return
}

// byteImmediate narrows a negative immediate in -0x80..-1 to its low byte
// when the datum is 8 bits wide.
func byteImmediate(imm Operand, text string, wide bool) Operand {
	if !wide && imm.Value >= 0xff80 && strings.HasPrefix(strings.TrimSpace(text), "-") {
		imm.Value &= 0xff
	}
	return imm
}

// memoryMode selects the smallest mode that encodes an operand.
func memoryMode(op Operand) Mode {
	switch op.Class {
	case OPERAND_REGISTER:
		return MODE_REGISTER
	case OPERAND_EFFECTIVE:
		switch {
		case op.Displacement == 0 && op.Base != rmDirect:
			return MODE_MEMORY
		case op.Displacement <= 0xff:
			return MODE_MEMORY_DISP8
		default:
			return MODE_MEMORY_DISP16
		}
	}
	return MODE_MEMORY
}

// mnemonicMap maps mnemonics to operations.
var mnemonicMap = func() map[string]Op {
	ops := map[string]Op{}
	for op := OP_MOV; op <= OP_JCXZ; op++ {
		ops[op.String()] = op
	}
	return ops
}()

// parseWords assembles the words of a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	var inst Instruction
	var label string

	inst.Op = op
	args := words[1:]

	if op.IsJump() {
		if len(args) < 1 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		var target Operand
		target, _, label, err = asm.parseOperand(args[0])
		if err != nil {
			return
		}
		switch {
		case len(label) != 0:
			target = Immediate(0)
		case target.Class != OPERAND_IMMEDIATE || target.Value > 0xff:
			err = ErrTargetInvalid
			return
		}
		inst.Kind = KIND_JUMP
		inst.Source = target
	} else {
		if len(args) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		inst, err = asm.buildInstruction(op, args[0], args[1])
		if err != nil {
			return
		}
	}

	code, err := Encode(inst)
	if err != nil {
		return
	}
	inst.Length = len(code)

	opcode := Opcode{
		LineNo:    lineno,
		Ip:        asm.currentIp(),
		Words:     words,
		Inst:      inst,
		Bytes:     code,
		LinkLabel: label,
	}
	if asm.Verbose {
		log.Printf("%v: %04x: % x", lineno, opcode.Ip, code)
	}
	asm.Opcode = append(asm.Opcode, opcode)

	return
}

// buildInstruction selects the form of a two operand instruction.
func (asm *Assembler) buildInstruction(op Op, dst_text, src_text string) (inst Instruction, err error) {
	dst, dst_size, label, err := asm.parseOperand(dst_text)
	if err == nil && len(label) != 0 {
		err = ErrOperandInvalid
	}
	if err != nil {
		return
	}
	src, src_size, label, err := asm.parseOperand(src_text)
	if err == nil && len(label) != 0 {
		err = ErrOperandInvalid
	}
	if err != nil {
		return
	}

	inst.Op = op

	switch {
	case dst.Class == OPERAND_IMMEDIATE:
		err = ErrOperandInvalid
	case src.Class == OPERAND_IMMEDIATE:
		inst.Source = src
		inst.Dest = dst
		if src_size != sizeNone {
			err = ErrOperandInvalid
			return
		}

		if dst.Class == OPERAND_REGISTER {
			inst.Wide = dst.Register.Wide()
			inst.Mode = MODE_REGISTER
			inst.Source = byteImmediate(inst.Source, src_text, inst.Wide)
			switch {
			case op == OP_MOV:
				inst.Kind = KIND_MOV_IMM_REG
				return
			case dst.Register.Field() == 0:
				switch op {
				case OP_ADD:
					inst.Kind = KIND_ADD_IMM_ACC
				case OP_SUB:
					inst.Kind = KIND_SUB_IMM_ACC
				case OP_CMP:
					inst.Kind = KIND_CMP_IMM_ACC
				}
				return
			}
		} else {
			if op == OP_MOV {
				err = ErrInstructionInvalid
				return
			}
			if dst_size == sizeNone {
				err = ErrOperandSize
				return
			}
			inst.Wide = dst_size == sizeWord
			inst.Mode = memoryMode(dst)
		}

		// A 16-bit datum takes two data bytes: s=0 for add and sub,
		// s=1 for cmp.
		inst.Kind = KIND_IMM_RM
		inst.Sign = op == OP_CMP && inst.Wide
		inst.Source = byteImmediate(inst.Source, src_text, inst.Wide)
	case dst.Class == OPERAND_REGISTER || src.Class == OPERAND_REGISTER:
		inst.Kind = map[Op]Kind{
			OP_MOV: KIND_MOV_RM,
			OP_ADD: KIND_ADD_RM,
			OP_SUB: KIND_SUB_RM,
			OP_CMP: KIND_CMP_RM,
		}[op]
		inst.Dest = dst
		inst.Source = src

		var reg, rm Operand
		var rm_size size
		if dst.Class == OPERAND_REGISTER {
			inst.Direction = true
			reg, rm, rm_size = dst, src, src_size
		} else {
			reg, rm, rm_size = src, dst, dst_size
		}

		inst.Wide = reg.Register.Wide()
		inst.Mode = memoryMode(rm)
		if rm.Class == OPERAND_REGISTER && rm.Register.Wide() != inst.Wide {
			err = ErrOperandSize
			return
		}
		if (rm_size == sizeByte && inst.Wide) || (rm_size == sizeWord && !inst.Wide) {
			err = ErrOperandSize
			return
		}
	default:
		err = ErrOperandInvalid
	}

	return
}
