package cpu

import (
	"iter"
)

// Disassemble walks a memory image from address 0, yielding each
// instruction as the CPU would decode it when executed in sequence.
func Disassemble(data []byte) iter.Seq2[int, Code] {
	return func(yield func(address int, code Code) bool) {
		for address := 0; address < len(data); {
			code := Code{Word: data[address]}
			end := min(address+3, len(data))
			code.Operands = data[address+1 : end]
			if !yield(address, code) {
				return
			}
			address += code.Instruction().Size()
		}
	}
}
