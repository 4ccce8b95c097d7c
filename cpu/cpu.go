package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/ls8/io"
)

// Channel is an output channel interface.
type Channel io.Channel

// State is the execution state of the CPU.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
)

const (
	FLAG_EQUAL = byte(1) // Set by CMP when both registers are equal.
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"SP_INIT":        fmt.Sprintf("0x%02x", SP_INIT),
}

// Cpu is the simulation context for the LS8 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       uint         // Address of the next instruction.
	Register RegisterFile // Register bank.
	Sp       uint         // Stack pointer.
	Flags    byte         // Comparison flag.
	Memory   Memory       // Code and data.
	State    State        // Current execution state.

	Ticks int // Executed instruction counter.

	Output Channel // Destination of PRN.

	unknown map[byte]bool // Unknown opcodes already reported.
}

// NewCpu creates a new, reset, CPU.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %02x\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "state", cpu.State)
	text += fmt.Sprintf("% 5s: %d\n", "fl", cpu.Flags)
	text += fmt.Sprintf("% 5s: %02x\n", "sp", cpu.Sp)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %02x\n", fmt.Sprintf("r%d", n), val)
	}

	return
}

// Reset the CPU state.
// - Clears the registers, flags and memory.
// - Sets the stack pointer to the top of memory.
// - Sets the PC to 0, in the running state.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register.Reset()
	cpu.Memory.Reset()
	cpu.Pc = 0
	cpu.Sp = SP_INIT
	cpu.Flags = 0
	cpu.State = STATE_RUNNING
	cpu.Ticks = 0
	clear(cpu.unknown)

	if cpu.Output != nil {
		cpu.Output.Rewind()
	}
}

// Load copies a program image into memory, starting at address 0.
func (cpu *Cpu) Load(data []byte) (err error) {
	if len(data) > MEMORY_SIZE {
		err = ErrProgramSize
		return
	}

	copy(cpu.Memory[:], data)

	return
}

// FetchCode reads the opcode at the PC, and the operand bytes that follow
// it as far as the end of memory.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	code.Word, err = cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}

	for n := range uint(2) {
		value, err := cpu.Memory.Read(cpu.Pc + 1 + n)
		if err != nil {
			break
		}
		code.Operands = append(code.Operands, value)
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.State == STATE_HALTED {
		err = ErrHalted
		return
	}

	pc := cpu.Pc
	code, err := cpu.FetchCode()
	if err == nil {
		err = cpu.Execute(code)
	}

	if err != nil {
		cpu.State = STATE_HALTED
		err = &ErrFault{Pc: pc, Code: code, Err: err}
		if cpu.Verbose {
			log.Printf("cpu: %v", err)
		}
	}

	return
}

// Run ticks the CPU until it halts, or faults.
func (cpu *Cpu) Run() (err error) {
	for cpu.State == STATE_RUNNING {
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// operands returns the operand bytes the instruction needs, or an address
// fault naming the first missing byte. ALU instructions need both bytes,
// including the padding byte of NOT.
func (cpu *Cpu) operands(code Code) (a, b byte, err error) {
	need := code.Instruction().Size() - 1
	if len(code.Operands) < need {
		err = ErrAddress(cpu.Pc + 1 + uint(len(code.Operands)))
		return
	}

	if need > 0 {
		a = code.Operands[0]
	}
	if need > 1 {
		b = code.Operands[1]
	}

	return
}

// Execute executes a single decoded instruction.
// A faulting instruction leaves registers, memory, flags and PC untouched.
func (cpu *Cpu) Execute(code Code) (err error) {
	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.Pc, code)
	}

	inst := code.Instruction()

	a, b, err := cpu.operands(code)
	if err != nil {
		return
	}

	if op, ok := inst.AluOp(); ok {
		err = cpu.doAlu(op, a, b)
		if err != nil {
			return
		}
		cpu.Ticks++
		return
	}

	switch inst {
	case INST_HLT:
		cpu.State = STATE_HALTED
	case INST_LDI:
		err = cpu.Register.Set(a, b)
		if err != nil {
			return
		}
		cpu.Pc += 3
	case INST_PRN:
		var value byte
		value, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		if cpu.Output != nil {
			err = cpu.Output.Send(value)
			if err != nil {
				return
			}
		}
		cpu.Pc += 2
	case INST_PUSH:
		var value byte
		value, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		err = cpu.Push(value)
		if err != nil {
			return
		}
		cpu.Pc += 2
	case INST_POP:
		_, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		var value byte
		value, err = cpu.Pop()
		if err != nil {
			return
		}
		cpu.Register[a] = value
		cpu.Pc += 2
	case INST_JMP, INST_JEQ, INST_JNE:
		var target byte
		target, err = cpu.Register.Get(a)
		if err != nil {
			return
		}
		taken := inst == INST_JMP ||
			(inst == INST_JEQ && cpu.Flags == FLAG_EQUAL) ||
			(inst == INST_JNE && cpu.Flags == 0)
		if taken {
			cpu.Pc = uint(target)
		} else {
			cpu.Pc += 2
		}
	default:
		if cpu.unknown == nil {
			cpu.unknown = map[byte]bool{}
		}
		if !cpu.unknown[code.Word] {
			cpu.unknown[code.Word] = true
			if cpu.Verbose {
				log.Printf("%02x: %v 0x%02x", cpu.Pc, ErrUnknownOpcode, code.Word)
			}
		}
		cpu.Pc += 1
	}

	cpu.Ticks++

	return
}
