package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ezrec/ls8/cpu"
	"github.com/ezrec/ls8/emulator"
	ls8io "github.com/ezrec/ls8/io"
)

var errCompileAndImage = errors.New("--compile and a program image are exclusive")

type runOptions struct {
	verbose bool
	strict  bool
	save    bool
	compile string
	output  string
	image   string

	stdout io.Writer
}

// load selects the program to run: compiled source, a .ls8 image, or the
// emulator default.
func (opts *runOptions) load(emu *emulator.Emulator) (err error) {
	switch {
	case len(opts.compile) != 0 && len(opts.image) != 0:
		err = errCompileAndImage
	case len(opts.compile) != 0:
		var inf *os.File
		inf, err = os.Open(opts.compile)
		if err != nil {
			err = errors.Join(ls8io.ErrLoad, err)
			return
		}
		defer inf.Close()

		asm := emu.Assembler()
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.compile, err)
		}
	case len(opts.image) != 0:
		var inf *os.File
		inf, err = os.Open(opts.image)
		if err != nil {
			err = errors.Join(ls8io.ErrLoad, err)
			return
		}
		defer inf.Close()

		rom := &ls8io.Rom{Strict: opts.strict}
		err = rom.Load(inf)
		if err != nil {
			err = fmt.Errorf("%v: %w", opts.image, err)
			return
		}
		emu.Program = emulator.ProgramOf(rom)
	}

	return
}

// store writes the loaded program as a .ls8 image.
func (opts *runOptions) store(emu *emulator.Emulator) (err error) {
	rom := emulator.RomOf(emu.Program)

	if opts.output == "-" {
		return rom.Store(opts.stdout)
	}

	ouf, err := os.Create(opts.output)
	if err != nil {
		return
	}

	err = rom.Store(ouf)
	if err != nil {
		ouf.Close()
		return
	}

	return ouf.Close()
}

func (opts *runOptions) run() (err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = opts.verbose
	emu.Tape.Output = opts.stdout

	err = opts.load(emu)
	if err != nil {
		return
	}

	if opts.save {
		return opts.store(emu)
	}

	err = emu.Reset()
	if err != nil {
		return
	}

	err = emu.Run()
	if err != nil {
		if opts.verbose {
			log.Printf("state at fault:\n%v", emu.Cpu.String())
			if emu.Cpu.Sp < cpu.SP_INIT {
				top, _ := emu.Cpu.Peek()
				log.Printf("stack top: %02x", top)
			}
		}
		return
	}

	if opts.verbose {
		log.Printf("halted after %d ticks", emu.Ticks())
	}

	return
}
