// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/internal"
	"github.com/ezrec/ls8/io"
)

// DefaultProgram is run when no program is supplied.
//
//	LDI R0,8
//	PRN R0
//	HLT
var DefaultProgram = []byte{0x82, 0x00, 0x08, 0x47, 0x00, 0x01}

var _emulator_defines = map[string]string{
	"ROM_SIZE": fmt.Sprintf("%d", io.ROM_SIZE),
}

// Emulator state. CPU + program listing + IO channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Tape io.Tape // PRN output channel.
}

// NewEmulator creates a new emulator, loaded with DefaultProgram.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.Cpu.Output = &emu.Tape
	emu.Program = ProgramOf(&io.Rom{Data: DefaultProgram})

	return
}

// Defines returns an iterator over all of the defines, for use as
// assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assembler returns an assembler with all of the emulator defines.
func (emu *Emulator) Assembler() (asm *cpu.Assembler) {
	asm = &cpu.Assembler{Verbose: emu.Verbose}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	return
}

// ProgramOf builds a program listing from a loaded image, one opcode per
// decoded instruction.
func ProgramOf(rom *io.Rom) (prog *cpu.Program) {
	prog = &cpu.Program{}

	for address, code := range cpu.Disassemble(rom.Data) {
		size := min(code.Instruction().Size(), len(rom.Data)-address)
		op := cpu.Opcode{
			Address: address,
			Words:   strings.Fields(code.String()),
			Codes:   rom.Data[address : address+size],
		}
		if address < len(rom.LineNo) {
			op.LineNo = rom.LineNo[address]
		}
		prog.Opcodes = append(prog.Opcodes, op)
	}

	return
}

// RomOf builds an image from a program listing, commenting the first byte
// of each opcode with its source.
func RomOf(prog *cpu.Program) (rom *io.Rom) {
	rom = &io.Rom{
		Data: prog.Binary(),
	}
	rom.Comments = make([]string, len(rom.Data))
	rom.LineNo = make([]int, len(rom.Data))

	for _, op := range prog.Opcodes {
		if len(op.Codes) == 0 {
			continue
		}
		rom.Comments[op.Address] = strings.Join(op.Words, " ")
		for n := range op.Codes {
			rom.LineNo[op.Address+n] = op.LineNo
		}
	}

	return
}

// Reset the emulator, and load the program into memory.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset()

	err = emu.Cpu.Load(emu.Program.Binary())
	if err != nil {
		return
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(int(emu.Cpu.Pc))
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Cpu.State == cpu.STATE_HALTED

	return
}

// Run ticks the emulator until the program halts, or faults.
func (emu *Emulator) Run() (err error) {
	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			return err
		}
	}

	return
}
