package cpu

import (
	"fmt"
	"strings"
)

// Instruction is a decoded LS8 instruction kind.
type Instruction int

const (
	INST_UNKNOWN = Instruction(iota) // ???
	INST_HLT                         // HLT
	INST_LDI                         // LDI
	INST_PRN                         // PRN
	INST_PUSH                        // PUSH
	INST_POP                         // POP
	INST_MUL                         // MUL
	INST_AND                         // AND
	INST_OR                          // OR
	INST_XOR                         // XOR
	INST_NOT                         // NOT
	INST_SHL                         // SHL
	INST_SHR                         // SHR
	INST_MOD                         // MOD
	INST_CMP                         // CMP
	INST_JMP                         // JMP
	INST_JEQ                         // JEQ
	INST_JNE                         // JNE
)

// AluOp is an ALU operation selector.
type AluOp int

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_MUL = AluOp(iota) // mul
	ALU_OP_AND               // and
	ALU_OP_OR                // or
	ALU_OP_XOR               // xor
	ALU_OP_NOT               // not
	ALU_OP_SHL               // shl
	ALU_OP_SHR               // shr
	ALU_OP_MOD               // mod
	ALU_OP_CMP               // cmp
)

// Operand kinds, used for decode and for the assembler.
type operandKind int

const (
	operandNone = operandKind(iota)
	operandRegister
	operandImmediate
)

type instructionInfo struct {
	name     string
	word     byte
	operands [2]operandKind
	alu      AluOp
	isAlu    bool
}

var instructionTable = [...]instructionInfo{
	INST_UNKNOWN: {name: "???"},
	INST_HLT:     {name: "HLT", word: 0b00000001},
	INST_LDI:     {name: "LDI", word: 0b10000010, operands: [2]operandKind{operandRegister, operandImmediate}},
	INST_PRN:     {name: "PRN", word: 0b01000111, operands: [2]operandKind{operandRegister}},
	INST_PUSH:    {name: "PUSH", word: 0b01000101, operands: [2]operandKind{operandRegister}},
	INST_POP:     {name: "POP", word: 0b01000110, operands: [2]operandKind{operandRegister}},
	INST_MUL:     {name: "MUL", word: 0b10100010, operands: [2]operandKind{operandRegister, operandRegister}, alu: ALU_OP_MUL, isAlu: true},
	INST_AND:     {name: "AND", word: 0b10100000, operands: [2]operandKind{operandRegister, operandRegister}, alu: ALU_OP_AND, isAlu: true},
	INST_OR:      {name: "OR", word: 0b10101010, operands: [2]operandKind{operandRegister, operandRegister}, alu: ALU_OP_OR, isAlu: true},
	INST_XOR:     {name: "XOR", word: 0b10101011, operands: [2]operandKind{operandRegister, operandRegister}, alu: ALU_OP_XOR, isAlu: true},
	INST_NOT:     {name: "NOT", word: 0b01101001, operands: [2]operandKind{operandRegister}, alu: ALU_OP_NOT, isAlu: true},
	INST_SHL:     {name: "SHL", word: 0b10101100, operands: [2]operandKind{operandRegister, operandRegister}, alu: ALU_OP_SHL, isAlu: true},
	INST_SHR:     {name: "SHR", word: 0b10101101, operands: [2]operandKind{operandRegister, operandRegister}, alu: ALU_OP_SHR, isAlu: true},
	INST_MOD:     {name: "MOD", word: 0b10100100, operands: [2]operandKind{operandRegister, operandRegister}, alu: ALU_OP_MOD, isAlu: true},
	INST_CMP:     {name: "CMP", word: 0b10100111, operands: [2]operandKind{operandRegister, operandRegister}, alu: ALU_OP_CMP, isAlu: true},
	INST_JMP:     {name: "JMP", word: 0b01010100, operands: [2]operandKind{operandRegister}},
	INST_JEQ:     {name: "JEQ", word: 0b01010101, operands: [2]operandKind{operandRegister}},
	INST_JNE:     {name: "JNE", word: 0b01010110, operands: [2]operandKind{operandRegister}},
}

// decodeTable maps every opcode byte to an instruction.
var decodeTable [256]Instruction

func init() {
	for inst, info := range instructionTable {
		if Instruction(inst) == INST_UNKNOWN {
			continue
		}
		decodeTable[info.word] = Instruction(inst)
	}
}

// Decode maps an opcode byte to its instruction, or INST_UNKNOWN.
func Decode(word byte) Instruction {
	return decodeTable[word]
}

// LookupInstruction finds an instruction by mnemonic, ignoring case.
func LookupInstruction(name string) (inst Instruction, ok bool) {
	name = strings.ToUpper(name)
	for n, info := range instructionTable {
		if Instruction(n) != INST_UNKNOWN && info.name == name {
			return Instruction(n), true
		}
	}
	return
}

func (inst Instruction) info() instructionInfo {
	if inst < 0 || int(inst) >= len(instructionTable) {
		return instructionTable[INST_UNKNOWN]
	}
	return instructionTable[inst]
}

// String returns the instruction mnemonic.
func (inst Instruction) String() string {
	return inst.info().name
}

// Word returns the opcode byte of the instruction.
func (inst Instruction) Word() byte {
	return inst.info().word
}

// Operands returns the number of operand bytes following the opcode.
func (inst Instruction) Operands() (count int) {
	for _, kind := range inst.info().operands {
		if kind != operandNone {
			count++
		}
	}
	return
}

// Size returns the number of bytes the instruction occupies, which is also
// its PC advance when it does not jump. ALU instructions always occupy three
// bytes, even the unary NOT. Unknown opcodes occupy a single byte.
func (inst Instruction) Size() int {
	if inst.info().isAlu {
		return 3
	}
	return 1 + inst.Operands()
}

// AluOp returns the ALU operation for ALU class instructions.
func (inst Instruction) AluOp() (op AluOp, ok bool) {
	info := inst.info()
	return info.alu, info.isAlu
}

// Code is the decoded view of the bytes at the program counter.
type Code struct {
	Word     byte   // Opcode byte.
	Operands []byte // Operand bytes that lie within memory, at most two.
}

// Instruction decodes the opcode byte.
func (code Code) Instruction() Instruction {
	return Decode(code.Word)
}

// operand returns operand n, if the instruction's encoding includes it.
func (code Code) operand(n int) (value byte, ok bool) {
	if n >= len(code.Operands) {
		return
	}
	return code.Operands[n], true
}

// String returns the assembly language representation of this code.
func (code Code) String() string {
	inst := code.Instruction()
	if inst == INST_UNKNOWN {
		return fmt.Sprintf(".db 0x%02x", code.Word)
	}

	info := inst.info()
	var args []string
	for n, kind := range info.operands {
		if kind == operandNone {
			break
		}
		value, ok := code.operand(n)
		switch {
		case !ok:
			args = append(args, "?")
		case kind == operandRegister:
			args = append(args, fmt.Sprintf("R%d", value))
		default:
			args = append(args, fmt.Sprintf("%d", value))
		}
	}

	if len(args) == 0 {
		return info.name
	}

	return info.name + " " + strings.Join(args, ",")
}
