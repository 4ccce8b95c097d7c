package emulator

import (
	"bytes"
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(DefaultProgram, emu.Program.Binary())
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	defines := maps.Collect(emu.Defines())

	assert.Equal("256", defines["ROM_SIZE"])
	assert.Equal("256", defines["MEMORY_SIZE"])
	assert.Equal("8", defines["REGISTER_COUNT"])
	assert.Equal("0xff", defines["SP_INIT"])
}

func doRun(emu *Emulator, t *testing.T) (output string, err error) {
	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output

	assert.NoError(t, emu.Reset())

	err = emu.Run()
	output = tape_output.String()
	return
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	asm := emu.Assembler()
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(t, err)
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog
}

func TestEmulator_Default(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	output, err := doRun(emu, t)
	assert.NoError(err)
	assert.Equal("8\n", output)
	assert.Equal(3, emu.Ticks())
}

func TestEmulator_Mult(t *testing.T) {
	assert := assert.New(t)

	rom := &io.Rom{Strict: true}
	err := rom.Load(strings.NewReader(strings.Join([]string{
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"10000010 # LDI R1,9",
		"00000001",
		"00001001",
		"10100010 # MUL R0,R1",
		"00000000",
		"00000001",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	}, "\n")))
	assert.NoError(err)

	emu := NewEmulator()
	emu.Program = ProgramOf(rom)

	output, err := doRun(emu, t)
	assert.NoError(err)
	assert.Equal("72\n", output)
}

func TestEmulator_Tick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"LDI R0, 1",
		"PRN R0",
		"HLT",
	}, t)
	emu.Tape.Output = &bytes.Buffer{}
	assert.NoError(emu.Reset())

	for _, op := range emu.Program.Opcodes {
		assert.Equal(op.LineNo, emu.LineNo())
		assert.Equal(uint(op.Address), emu.Cpu.Pc)
		done, err := emu.Tick()
		assert.NoError(err)
		assert.Equal(op.Words[0] == "HLT", done)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulator_Loop(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"; Halve R0 until it reaches zero, printing each value.",
		"        LDI R0, 8",
		"        LDI R1, 1",
		"        LDI R2, 0",
		"        LDI R3, LOOP",
		"        LDI R4, DONE",
		"LOOP:   PUSH R0",
		"        POP R5",
		"        PRN R5",
		"        SHR R0, R1",
		"        CMP R0, R2",
		"        JEQ R4",
		"        JMP R3",
		"DONE:   HLT",
	}, t)

	output, err := doRun(emu, t)
	assert.NoError(err)
	assert.Equal("8\n4\n2\n1\n", output)
	assert.Equal(cpu.SP_INIT, emu.Cpu.Sp)
}

func TestEmulator_Fault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"LDI R0, 7",
		"LDI R1, 0",
		"",
		"MOD R0, R1",
		"PRN R0",
		"HLT",
	}, t)

	output, err := doRun(emu, t)
	assert.Equal("", output)
	assert.ErrorIs(err, cpu.ErrDivisionByZero)
	assert.ErrorIs(err, cpu.ErrArithmeticFault)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(4, runtime.LineNo)
		assert.Equal(uint(6), runtime.Pc)
		assert.Contains(runtime.Error(), "line 4")
	}

	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
	assert.Equal(byte(7), emu.Cpu.Register[0])

	// Reset restarts the program from the top.
	output, err = doRun(emu, t)
	assert.Equal("", output)
	assert.ErrorIs(err, cpu.ErrDivisionByZero)
}

func TestEmulator_AddressFault(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = ProgramOf(&io.Rom{Data: []byte{0x00, 0x00}})

	_, err := doRun(emu, t)
	assert.ErrorIs(err, cpu.ErrAddressFault)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(0, runtime.LineNo)
		assert.Equal(uint(cpu.MEMORY_SIZE), runtime.Pc)
	}
}

func TestProgramOf(t *testing.T) {
	assert := assert.New(t)

	rom := &io.Rom{
		Data:   []byte{0x82, 0x00, 0x08, 0x47, 0x00, 0x01, 0x82},
		LineNo: []int{2, 3, 4, 6, 7, 9, 10},
	}

	prog := ProgramOf(rom)
	assert.Len(prog.Opcodes, 4)
	assert.Equal(cpu.Opcode{LineNo: 2, Address: 0, Words: []string{"LDI", "R0,8"}, Codes: []byte{0x82, 0x00, 0x08}}, prog.Opcodes[0])
	assert.Equal(6, prog.Opcodes[1].LineNo)
	assert.Equal(9, prog.Opcodes[2].LineNo)
	assert.Equal([]byte{0x82}, prog.Opcodes[3].Codes)
	assert.Equal(rom.Data, prog.Binary())
}

func TestRomOf(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	doAssemble(emu, []string{
		"LDI R0, 8",
		"PRN R0",
		"HLT",
	}, t)

	rom := RomOf(emu.Program)
	assert.Equal(DefaultProgram, rom.Data)
	assert.Equal([]string{"LDI R0 8", "", "", "PRN R0", "", "HLT"}, rom.Comments)
	assert.Equal([]int{1, 1, 1, 2, 2, 3}, rom.LineNo)

	out := &bytes.Buffer{}
	assert.NoError(rom.Store(out))

	loaded := &io.Rom{Strict: true}
	assert.NoError(loaded.Load(out))
	assert.Equal(DefaultProgram, loaded.Data)
}
