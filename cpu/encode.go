package cpu

// Encode returns the little-endian byte sequence of an instruction.
func Encode(inst Instruction) (code []byte, err error) {
	var w byte
	if inst.Wide {
		w = 1
	}

	switch inst.Kind {
	case KIND_MOV_RM, KIND_ADD_RM, KIND_SUB_RM, KIND_CMP_RM:
		base, ok := rmOpcodes[inst.Op]
		if !ok || inst.Kind.Op() != inst.Op {
			err = ErrEncodeOp
			return
		}

		reg_op, rm_op := inst.Source, inst.Dest
		var d byte
		if inst.Direction {
			reg_op, rm_op = inst.Dest, inst.Source
			d = 1
		}

		if reg_op.Class != OPERAND_REGISTER {
			err = ErrEncodeOperand
			return
		}
		if reg_op.Register.Wide() != inst.Wide {
			err = ErrOperandSize
			return
		}
		if rm_op.Class == OPERAND_REGISTER && rm_op.Register.Wide() != inst.Wide {
			err = ErrOperandSize
			return
		}

		var mode Mode
		var rm uint8
		var disp []byte
		mode, rm, disp, err = rm_op.rmEncode(inst.Mode)
		if err != nil {
			return
		}

		code = append(code, base|d<<1|w, makeRm(mode, reg_op.Register.Field(), rm))
		code = append(code, disp...)
	case KIND_MOV_IMM_REG:
		if inst.Op != OP_MOV || inst.Dest.Class != OPERAND_REGISTER || inst.Source.Class != OPERAND_IMMEDIATE {
			err = ErrEncodeOperand
			return
		}
		if inst.Dest.Register.Wide() != inst.Wide {
			err = ErrOperandSize
			return
		}

		var data []byte
		data, err = encodeData(inst.Source.Value, DataSize(inst.Kind, inst.Op, false, inst.Wide), false)
		if err != nil {
			return
		}

		code = append(code, opcodeMovImmReg|w<<3|inst.Dest.Register.Field())
		code = append(code, data...)
	case KIND_ADD_IMM_ACC, KIND_SUB_IMM_ACC, KIND_CMP_IMM_ACC:
		base, ok := accOpcodes[inst.Op]
		if !ok || inst.Kind.Op() != inst.Op {
			err = ErrEncodeOp
			return
		}
		if inst.Dest.Class != OPERAND_REGISTER || inst.Dest.Register != RegisterOf(0, inst.Wide) {
			err = ErrEncodeOperand
			return
		}
		if inst.Source.Class != OPERAND_IMMEDIATE {
			err = ErrEncodeOperand
			return
		}

		var data []byte
		data, err = encodeData(inst.Source.Value, DataSize(inst.Kind, inst.Op, false, inst.Wide), false)
		if err != nil {
			return
		}

		code = append(code, base|w)
		code = append(code, data...)
	case KIND_IMM_RM:
		sub, ok := groupReg(inst.Op)
		if !ok {
			err = ErrEncodeOp
			return
		}
		if inst.Source.Class != OPERAND_IMMEDIATE {
			err = ErrEncodeOperand
			return
		}
		if inst.Dest.Class == OPERAND_REGISTER && inst.Dest.Register.Wide() != inst.Wide {
			err = ErrOperandSize
			return
		}

		var mode Mode
		var rm uint8
		var disp []byte
		mode, rm, disp, err = inst.Dest.rmEncode(inst.Mode)
		if err != nil {
			return
		}

		size := DataSize(inst.Kind, inst.Op, inst.Sign, inst.Wide)
		var data []byte
		data, err = encodeData(inst.Source.Value, size, inst.Sign && inst.Wide)
		if err != nil {
			return
		}

		var s byte
		if inst.Sign {
			s = 1
		}

		code = append(code, opcodeImmRm|s<<1|w, makeRm(mode, sub, rm))
		code = append(code, disp...)
		code = append(code, data...)
	case KIND_JUMP:
		opcode, ok := jumpOpcode(inst.Op)
		if !ok {
			err = ErrEncodeOp
			return
		}
		if inst.Source.Class != OPERAND_IMMEDIATE {
			err = ErrEncodeOperand
			return
		}
		if inst.Source.Value > 0xff {
			err = ErrEncodeRange
			return
		}
		code = append(code, opcode, byte(inst.Source.Value))
	default:
		err = ErrEncodeKind
	}

	if err != nil {
		code = nil
	}

	return
}

// encodeData returns the little-endian data bytes of an immediate. A
// single extended byte must reproduce the value when sign-extended.
func encodeData(value uint16, size int, extended bool) (data []byte, err error) {
	switch size {
	case 1:
		if extended {
			if uint16(int16(int8(value))) != value {
				err = ErrEncodeRange
				return
			}
		} else if value > 0xff {
			err = ErrEncodeRange
			return
		}
		data = []byte{byte(value)}
	case 2:
		data = []byte{byte(value), byte(value >> 8)}
	}
	return
}
