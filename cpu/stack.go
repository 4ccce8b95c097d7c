package cpu

import (
	"errors"
)

// Push decrements the stack pointer, then stores value at the new top.
func (cpu *Cpu) Push(value byte) (err error) {
	if cpu.Sp == 0 {
		err = errors.Join(ErrStackFull, ErrAddress(-1))
		return
	}

	err = cpu.Memory.Write(cpu.Sp-1, value)
	if err != nil {
		return
	}

	cpu.Sp--
	return
}

// Pop loads the value at the top of the stack, then increments the stack
// pointer.
func (cpu *Cpu) Pop() (value byte, err error) {
	value, err = cpu.Memory.Read(cpu.Sp)
	if err != nil {
		return
	}

	cpu.Sp++
	return
}

// Peek returns the value at the top of the stack.
func (cpu *Cpu) Peek() (value byte, err error) {
	return cpu.Memory.Read(cpu.Sp)
}
