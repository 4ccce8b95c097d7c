package cpu

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Address: 0, Words: []string{"LDI", "R0", "8"}, Codes: []byte{0x82, 0x00, 0x08}},
			{LineNo: 2, Address: 3, Words: []string{"PRN", "R0"}, Codes: []byte{0x47, 0x00}},
			{LineNo: 4, Address: 8, Words: []string{"HLT"}, Codes: []byte{0x01}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0)
	assert.NotNil(dbg.Opcode)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(0, dbg.Index)

	dbg = prog.Debug(2)
	assert.Equal(1, dbg.LineNo)
	assert.Equal(2, dbg.Index)

	dbg = prog.Debug(4)
	assert.Equal(2, dbg.LineNo)
	assert.Equal(1, dbg.Index)

	dbg = prog.Debug(8)
	assert.Equal(4, dbg.LineNo)
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	for _, address := range []int{5, 7, 9, 300, -1} {
		dbg := prog.Debug(address)
		assert.Nil(dbg.Opcode)
		assert.Equal(0, dbg.Index)
	}
}

func TestProgram_Binary(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal(9, prog.Size())
	assert.Equal([]byte{0x82, 0x00, 0x08, 0x47, 0x00, 0x00, 0x00, 0x00, 0x01}, prog.Binary())

	assert.Empty((&Program{}).Binary())
}

func TestProgram_Codes(t *testing.T) {
	assert := assert.New(t)

	codes := maps.Collect(testProgram().Codes())
	assert.Len(codes, 6)
	assert.Equal(byte(0x47), codes[3])
	assert.Equal(byte(0x01), codes[8])

	count := 0
	for range testProgram().Codes() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}
