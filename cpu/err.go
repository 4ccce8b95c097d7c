package cpu

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted          = errors.New(f("halted"))
	ErrAddressFault    = errors.New(f("address fault"))
	ErrArithmeticFault = errors.New(f("arithmetic fault"))
	ErrDivisionByZero  = errors.New(f("division by zero"))
	ErrStackFull       = errors.New(f("stack full"))
	ErrUnknownOpcode   = errors.New(f("unknown opcode"))
	ErrProgramSize     = errors.New(f("program exceeds memory"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelSyntax        = errors.New(f("label syntax"))
	ErrOrgBackwards       = errors.New(f(".org moves backwards"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrValueRange         = errors.New(f("value out of byte range"))
)

// ErrAddress is a memory address outside of the LS8 memory.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %d out of range", int(ea))
}

func (ea ErrAddress) Is(err error) bool {
	return err == ErrAddressFault
}

// ErrRegister is a register index outside of the register file.
type ErrRegister byte

func (er ErrRegister) Error() string {
	return f("register %d out of range", int(er))
}

func (er ErrRegister) Is(err error) bool {
	return err == ErrAddressFault
}

// ErrFault is a fatal fault raised while executing an instruction.
type ErrFault struct {
	Pc   uint
	Code Code
	Err  error
}

func (err *ErrFault) Error() string {
	if err.Pc >= MEMORY_SIZE {
		// Nothing was fetched.
		return f("pc %02x: %v", err.Pc, err.Err)
	}
	return f("pc %02x %v: %v", err.Pc, err.Code, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
