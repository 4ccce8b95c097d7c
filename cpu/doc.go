// Package cpu implements the processor and assembler for the LS8 system.
//
// The CPU consists of a program counter (PC), eight 8-bit general-purpose
// registers (r0-r7), a dedicated stack pointer, a single comparison flag, an
// ALU, and a flat 256 byte memory shared by code and data.
//
// Instructions are one opcode byte followed by zero, one or two operand
// bytes. Each instruction advances the PC by its own amount; jumps replace
// the PC outright.
//
// The assembler provides a small assembly language for the LS8 instruction
// set, supporting labels, equates, raw data and compile-time expression
// evaluation.
package cpu
