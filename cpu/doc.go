// Package cpu implements the decoder, execution engine and assembler for a
// subset of the Intel 8086 instruction set.
//
// The supported forms are mov, add, sub and cmp between registers and
// register-or-memory operands, their immediate forms, and the twenty
// conditional jump and loop opcodes. Instructions are fetched from a
// source.Source, classified against a table of fixed bit patterns, and
// expanded through the MOD/REG/R/M fields into symbolic operands.
//
// Memory is not simulated: effective and direct addresses are carried as
// symbols, read as zero, and writes to them are dropped. Jump and loop
// targets are the raw displacement byte, used as an absolute offset.
package cpu
