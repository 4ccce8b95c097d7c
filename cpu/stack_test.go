package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Push(0x12))
	assert.Equal(SP_INIT-1, cpu.Sp)
	assert.Equal(byte(0x12), cpu.Memory[SP_INIT-1])

	value, err := cpu.Peek()
	assert.NoError(err)
	assert.Equal(byte(0x12), value)
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.NoError(cpu.Push(0x12))
	assert.NoError(cpu.Push(0xab))

	value, err := cpu.Pop()
	assert.NoError(err)
	assert.Equal(byte(0xab), value)

	value, err = cpu.Pop()
	assert.NoError(err)
	assert.Equal(byte(0x12), value)
	assert.Equal(SP_INIT, cpu.Sp)
}

func TestStack_Full(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Sp = 1
	cpu.Memory[0] = 0x55

	assert.NoError(cpu.Push(0x12))
	assert.Equal(uint(0), cpu.Sp)
	assert.Equal(byte(0x12), cpu.Memory[0])

	err := cpu.Push(0x34)
	assert.ErrorIs(err, ErrStackFull)
	assert.ErrorIs(err, ErrAddressFault)
	assert.Equal(uint(0), cpu.Sp)
	assert.Equal(byte(0x12), cpu.Memory[0])
}

func TestStack_PopPastTop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory[SP_INIT] = 0x77

	// The byte at the top of memory is poppable, the next one is not.
	value, err := cpu.Pop()
	assert.NoError(err)
	assert.Equal(byte(0x77), value)
	assert.Equal(uint(MEMORY_SIZE), cpu.Sp)

	_, err = cpu.Pop()
	assert.ErrorIs(err, ErrAddressFault)
	assert.Equal(uint(MEMORY_SIZE), cpu.Sp)

	_, err = cpu.Peek()
	assert.ErrorIs(err, ErrAddressFault)
}
