package io

import (
	"errors"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	// Loader errors
	ErrLoad       = errors.New(f("load"))
	ErrLineFormat = errors.New(f("not an 8-bit binary literal"))
	ErrRomSize    = errors.New(f("image exceeds 256 bytes"))

	// Channel errors
	ErrChannelClosed = errors.New(f("channel closed"))
)

// ErrSyntax is a malformed line in a program image.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

func (err *ErrSyntax) Is(target error) bool {
	return target == ErrLoad
}
