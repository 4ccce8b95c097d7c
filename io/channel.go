// Package io provides the I/O collaborators of the LS8 emulator.
// It includes the output channel written by PRN (Tape) and the
// program image loader and writer for .ls8 text files (Rom).
package io

// Channel defines the interface for output channels of the LS8 system.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single value to the channel.
	Send(value byte) error
}
