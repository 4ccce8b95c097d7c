package cpu

import (
	"errors"
)

// doAlu performs the requested ALU action on registers regA and regB.
//
// The result is written back to regA, except for ALU_OP_CMP, which only
// updates the flags. On success the PC advances past the three byte ALU
// instruction. On failure no register, flag or PC state is changed.
func (cpu *Cpu) doAlu(op AluOp, regA, regB byte) (err error) {
	a, err := cpu.Register.Get(regA)
	if err != nil {
		return
	}

	var b byte
	if op != ALU_OP_NOT {
		b, err = cpu.Register.Get(regB)
		if err != nil {
			return
		}
	}

	var output byte
	switch op {
	case ALU_OP_MUL:
		output = a * b
	case ALU_OP_AND:
		output = a & b
	case ALU_OP_OR:
		output = a | b
	case ALU_OP_XOR:
		output = a ^ b
	case ALU_OP_NOT:
		output = ^a
	case ALU_OP_SHL:
		output = a << b
	case ALU_OP_SHR:
		output = a >> b
	case ALU_OP_MOD:
		if b == 0 {
			err = errors.Join(ErrArithmeticFault, ErrDivisionByZero)
			return
		}
		output = a % b
	case ALU_OP_CMP:
		if a == b {
			cpu.Flags = FLAG_EQUAL
		} else {
			cpu.Flags = 0
		}
		cpu.Pc += 3
		return
	default:
		err = ErrUnknownOpcode
		return
	}

	cpu.Register[regA] = output
	cpu.Pc += 3

	return
}
