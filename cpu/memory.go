package cpu

const (
	MEMORY_SIZE = 256        // Bytes of memory, shared by code and data.
	SP_INIT     = uint(0xff) // Stack pointer after reset.
)

// Memory is the flat LS8 address space.
type Memory [MEMORY_SIZE]byte

// Read returns the byte at address.
func (mem *Memory) Read(address uint) (value byte, err error) {
	if address >= MEMORY_SIZE {
		err = ErrAddress(address)
		return
	}

	value = mem[address]
	return
}

// Write stores a byte at address.
func (mem *Memory) Write(address uint, value byte) (err error) {
	if address >= MEMORY_SIZE {
		err = ErrAddress(address)
		return
	}

	mem[address] = value
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem[:])
}
