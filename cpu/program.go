package cpu

import (
	"iter"
)

// Link is an unresolved label reference inside an opcode's bytes.
type Link struct {
	Index int    // Index into Codes to patch.
	Label string // Label whose address is patched in.
}

// Opcode represents a line of assembled code with its source location and generated bytes.
type Opcode struct {
	LineNo  int
	Address int
	Words   []string
	Codes   []byte
	Links   []Link
}

type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the opcode that generated the byte at address.
func (prog *Program) Debug(address int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if address >= op.Address && address < op.Address+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  address - op.Address,
			}
			break
		}
	}

	return
}

// Size is the extent of the program image in bytes.
func (prog *Program) Size() (size int) {
	for _, op := range prog.Opcodes {
		size = max(size, op.Address+len(op.Codes))
	}
	return
}

// Binary returns the memory image of the program, zero filling any gaps.
func (prog *Program) Binary() (bins []byte) {
	bins = make([]byte, prog.Size())
	for address, code := range prog.Codes() {
		bins[address] = code
	}

	return
}

// Codes iterates over every assembled byte and its address.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(address int, code byte) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Address+n, code) {
					return
				}
			}
		}
	}
}
