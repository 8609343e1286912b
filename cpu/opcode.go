package cpu

// Kind is the instruction form classified from the opcode byte.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_NONE        = Kind(0)  // none
	KIND_MOV_RM      = Kind(1)  // mov.rm
	KIND_MOV_IMM_REG = Kind(2)  // mov.imm.reg
	KIND_ADD_RM      = Kind(3)  // add.rm
	KIND_ADD_IMM_ACC = Kind(4)  // add.imm.acc
	KIND_SUB_RM      = Kind(5)  // sub.rm
	KIND_SUB_IMM_ACC = Kind(6)  // sub.imm.acc
	KIND_CMP_RM      = Kind(7)  // cmp.rm
	KIND_CMP_IMM_ACC = Kind(8)  // cmp.imm.acc
	KIND_IMM_RM      = Kind(9)  // imm.rm
	KIND_JUMP        = Kind(10) // jump
)

// Op is the operation an instruction performs, named by its mnemonic.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NONE   = Op(0)  // none
	OP_MOV    = Op(1)  // mov
	OP_ADD    = Op(2)  // add
	OP_SUB    = Op(3)  // sub
	OP_CMP    = Op(4)  // cmp
	OP_JO     = Op(5)  // jo
	OP_JNO    = Op(6)  // jno
	OP_JB     = Op(7)  // jb
	OP_JNB    = Op(8)  // jnb
	OP_JE     = Op(9)  // je
	OP_JNZ    = Op(10) // jnz
	OP_JBE    = Op(11) // jbe
	OP_JA     = Op(12) // ja
	OP_JS     = Op(13) // js
	OP_JNS    = Op(14) // jns
	OP_JP     = Op(15) // jp
	OP_JNP    = Op(16) // jnp
	OP_JL     = Op(17) // jl
	OP_JNL    = Op(18) // jnl
	OP_JLE    = Op(19) // jle
	OP_JG     = Op(20) // jg
	OP_LOOPNZ = Op(21) // loopnz
	OP_LOOPZ  = Op(22) // loopz
	OP_LOOP   = Op(23) // loop
	OP_JCXZ   = Op(24) // jcxz
)

// IsJump returns true for the conditional jump and loop operations.
func (op Op) IsJump() bool {
	return op >= OP_JO && op <= OP_JCXZ
}

// Mode is the addressing mode held in the 2-bit MOD field.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_MEMORY        = Mode(0) // mem
	MODE_MEMORY_DISP8  = Mode(1) // mem.d8
	MODE_MEMORY_DISP16 = Mode(2) // mem.d16
	MODE_REGISTER      = Mode(3) // reg
)

// pattern matches the fixed high-order bits of an opcode byte.
type pattern struct {
	mask     byte
	expected byte
	kind     Kind
}

// patterns are tested in order; the first match wins.
var patterns = [...]pattern{
	{0b1111_1100, 0b1000_1000, KIND_MOV_RM},
	{0b1111_0000, 0b1011_0000, KIND_MOV_IMM_REG},
	{0b1111_1100, 0b0000_0000, KIND_ADD_RM},
	{0b1111_1110, 0b0000_0100, KIND_ADD_IMM_ACC},
	{0b1111_1100, 0b0010_1000, KIND_SUB_RM},
	{0b1111_1110, 0b0010_1100, KIND_SUB_IMM_ACC},
	{0b1111_1100, 0b0011_1000, KIND_CMP_RM},
	{0b1111_1110, 0b0011_1100, KIND_CMP_IMM_ACC},
	{0b1111_1100, 0b1000_0000, KIND_IMM_RM},
}

// jump is an exact opcode byte of a conditional jump or loop.
type jump struct {
	opcode byte
	op     Op
}

var jumps = [20]jump{
	{0x70, OP_JO},
	{0x71, OP_JNO},
	{0x72, OP_JB},
	{0x73, OP_JNB},
	{0x74, OP_JE},
	{0x75, OP_JNZ},
	{0x76, OP_JBE},
	{0x77, OP_JA},
	{0x78, OP_JS},
	{0x79, OP_JNS},
	{0x7a, OP_JP},
	{0x7b, OP_JNP},
	{0x7c, OP_JL},
	{0x7d, OP_JNL},
	{0x7e, OP_JLE},
	{0x7f, OP_JG},
	{0xe0, OP_LOOPNZ},
	{0xe1, OP_LOOPZ},
	{0xe2, OP_LOOP},
	{0xe3, OP_JCXZ},
}

// groupOps resolves the REG field of the group immediate form.
var groupOps = [8]Op{
	0b000: OP_ADD,
	0b101: OP_SUB,
	0b111: OP_CMP,
}

// Classify returns the instruction kind of an opcode byte, or KIND_NONE.
func Classify(opcode byte) Kind {
	for _, p := range patterns {
		if opcode&p.mask == p.expected {
			return p.kind
		}
	}

	if _, ok := JumpOp(opcode); ok {
		return KIND_JUMP
	}

	return KIND_NONE
}

// JumpOp returns the jump or loop operation of an exact opcode byte.
func JumpOp(opcode byte) (op Op, ok bool) {
	for _, j := range jumps {
		if j.opcode == opcode {
			return j.op, true
		}
	}
	return
}

// jumpOpcode is the inverse of JumpOp.
func jumpOpcode(op Op) (opcode byte, ok bool) {
	for _, j := range jumps {
		if j.op == op {
			return j.opcode, true
		}
	}
	return
}

// GroupOp resolves the operation of the group immediate form from the REG
// field of its second byte.
func GroupOp(reg uint8) (op Op, ok bool) {
	op = groupOps[reg&0x7]
	ok = op != OP_NONE
	return
}

// groupReg is the inverse of GroupOp.
func groupReg(op Op) (reg uint8, ok bool) {
	for n, g := range groupOps {
		if g == op && op != OP_NONE {
			return uint8(n), true
		}
	}
	return
}

// Op returns the operation of every kind except the two-stage ones
// (KIND_IMM_RM and KIND_JUMP), which resolve it from further bits.
func (kind Kind) Op() Op {
	switch kind {
	case KIND_MOV_RM, KIND_MOV_IMM_REG:
		return OP_MOV
	case KIND_ADD_RM, KIND_ADD_IMM_ACC:
		return OP_ADD
	case KIND_SUB_RM, KIND_SUB_IMM_ACC:
		return OP_SUB
	case KIND_CMP_RM, KIND_CMP_IMM_ACC:
		return OP_CMP
	}
	return OP_NONE
}

// UsesRm returns true if the kind carries a MOD/REG/R/M second byte.
func (kind Kind) UsesRm() bool {
	switch kind {
	case KIND_MOV_RM, KIND_ADD_RM, KIND_SUB_RM, KIND_CMP_RM, KIND_IMM_RM:
		return true
	}
	return false
}

// rmOpcodes and accOpcodes are the fixed bits of the reg/mem and
// accumulator forms, by operation.
var rmOpcodes = map[Op]byte{
	OP_MOV: 0b1000_1000,
	OP_ADD: 0b0000_0000,
	OP_SUB: 0b0010_1000,
	OP_CMP: 0b0011_1000,
}

var accOpcodes = map[Op]byte{
	OP_ADD: 0b0000_0100,
	OP_SUB: 0b0010_1100,
	OP_CMP: 0b0011_1100,
}

const (
	opcodeMovImmReg = 0b1011_0000
	opcodeImmRm     = 0b1000_0000
)

// DataSize returns the number of immediate data bytes a form carries.
//
// The group immediate form carries two data bytes for cmp only when both
// s and w are set, and for add and sub only when s is clear and w is set.
func DataSize(kind Kind, op Op, sign, wide bool) int {
	switch kind {
	case KIND_MOV_IMM_REG, KIND_ADD_IMM_ACC, KIND_SUB_IMM_ACC, KIND_CMP_IMM_ACC:
		if wide {
			return 2
		}
		return 1
	case KIND_IMM_RM:
		switch op {
		case OP_CMP:
			if sign && wide {
				return 2
			}
		case OP_ADD, OP_SUB:
			if !sign && wide {
				return 2
			}
		}
		return 1
	}
	return 0
}
