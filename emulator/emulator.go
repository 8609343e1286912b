// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/ezrec/sim86/cpu"
	"github.com/ezrec/sim86/source"
)

// Resync is the policy applied when the decoder meets an unrecognized
// opcode.
type Resync int

//go:generate go tool stringer -linecomment -type=Resync
const (
	RESYNC_STOP = Resync(0) // stop
	RESYNC_SKIP = Resync(1) // skip
)

// ParseResync finds a resync policy by name.
func ParseResync(name string) (rs Resync, err error) {
	for rs = RESYNC_STOP; rs <= RESYNC_SKIP; rs++ {
		if rs.String() == name {
			return
		}
	}

	err = ErrResyncInvalid(name)
	return
}

const (
	MAX_STEPS = 65536   // Default step limit.
	MAX_IMAGE = 0x10000 // Largest image the instruction pointer can address.
)

// Emulator state for one run. CPU + decoder + byte source.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Assembled listing, loaded into Rom by Reset.

	Rom       source.Rom       // Program image.
	Source    source.Source    // Instruction source; the Rom if nil.
	ByteOrder binary.ByteOrder // Instruction head byte order; little-endian if nil.
	Resync    Resync           // Unrecognized opcode policy.
	MaxSteps  int              // Step limit; MAX_STEPS if zero.

	Log []string // Disassembly of every decoded instruction.

	decoder *cpu.Decoder
	done    bool
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Reset the execution state, and rewind the source.
func (emu *Emulator) Reset() (err error) {
	if emu.Program != nil {
		emu.Rom.Data = emu.Program.Binary()
	}

	src := emu.Source
	if src == nil {
		if emu.Rom.Len() > MAX_IMAGE {
			err = ErrImageSize
			return
		}
		src = &emu.Rom
	}

	emu.decoder = cpu.NewDecoder(src)
	if emu.ByteOrder != nil {
		emu.decoder.ByteOrder = emu.ByteOrder
	}
	emu.decoder.Verbose = emu.Verbose
	emu.decoder.Rewind()

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	emu.Log = emu.Log[:0]
	emu.done = false

	if emu.Verbose {
		log.Printf("emulator: reset, resync %v", emu.Resync)
	}

	return
}

// Ticks returns the total instructions executed since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return int(emu.Cpu.Ip)
}

// LineNo returns the source line number of an offset, or 0 if there is no
// listing for it.
func (emu *Emulator) LineNo(offset int) int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(offset)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// decode decodes the instruction at the decoder's position, applying the
// resync policy. skip is set when a byte was skipped instead.
func (emu *Emulator) decode() (inst cpu.Instruction, skip bool, done bool, err error) {
	offset := emu.decoder.Offset()

	inst, err = emu.decoder.Decode()

	var eo *cpu.ErrUnrecognizedOpcode
	switch {
	case errors.Is(err, cpu.ErrStreamEnd):
		err = nil
		done = true
	case errors.As(err, &eo) && emu.Resync == RESYNC_SKIP:
		err = nil
		skip = true
		skipped := emu.decoder.Consumed()[0]
		emu.decoder.Skip(1)
		emu.Log = append(emu.Log, fmt.Sprintf("db 0x%02x", skipped))
		if emu.Verbose {
			log.Printf("emulator: %04x: skip 0x%02x", offset, skipped)
		}
	case err != nil:
		// pass
	default:
		emu.Log = append(emu.Log, inst.String())
	}

	return
}

// Tick decodes and executes a single instruction. done is set once the
// source ends at an instruction boundary.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.decoder == nil {
		err = emu.Reset()
		if err != nil {
			return
		}
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	offset := emu.Ip()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Offset: offset, LineNo: emu.LineNo(offset), Err: err}
		}
	}()

	if emu.done {
		done = true
		return
	}

	// A taken jump moves the instruction pointer away from the decoder.
	// Offsets compare modulo 64KiB, the range of the instruction pointer.
	if uint16(emu.decoder.Offset()) != emu.Cpu.Ip {
		err = emu.decoder.Seek(offset)
		if errors.Is(err, source.ErrSeekRange) {
			// A jump past the end of the image ends the run.
			err = nil
			emu.done = true
			done = true
			return
		}
		if err != nil {
			return
		}
	}

	inst, skip, done, err := emu.decode()
	if err != nil {
		return
	}
	if done {
		emu.done = true
		return
	}
	if skip {
		emu.Cpu.Ip++
		return
	}

	max_steps := emu.MaxSteps
	if max_steps == 0 {
		max_steps = MAX_STEPS
	}
	if emu.Cpu.Ticks >= max_steps {
		// Not executed, so not logged.
		emu.Log = emu.Log[:len(emu.Log)-1]
		err = ErrStepLimit
		return
	}

	err = emu.Cpu.Execute(inst)
	return
}

// Run ticks the emulator until the source ends or an error occurs.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if done || err != nil {
			return
		}
	}
}

// Disassemble resets the emulator and decodes the whole source
// sequentially without executing it.
func (emu *Emulator) Disassemble() (text []string, err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	for {
		offset := emu.decoder.Offset()

		var done bool
		_, _, done, err = emu.decode()
		if err != nil {
			err = &ErrRuntime{Offset: offset, LineNo: emu.LineNo(offset), Err: err}
			break
		}
		if done {
			break
		}
	}

	text = slices.Clone(emu.Log)
	return
}
