package cpu

const (
	REGISTER_COUNT = 8 // General purpose registers r0-r7.
)

// RegisterFile is the general purpose register bank.
type RegisterFile [REGISTER_COUNT]byte

// Get returns the value of register index.
func (rf *RegisterFile) Get(index byte) (value byte, err error) {
	if int(index) >= len(rf) {
		err = ErrRegister(index)
		return
	}

	value = rf[index]
	return
}

// Set stores value in register index.
func (rf *RegisterFile) Set(index byte, value byte) (err error) {
	if int(index) >= len(rf) {
		err = ErrRegister(index)
		return
	}

	rf[index] = value
	return
}

// Reset zeros all registers.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}
