package emulator

import (
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/ezrec/sim86/cpu"
	"github.com/ezrec/sim86/internal"
	"github.com/ezrec/sim86/translate"
)

// Report is the final state of a run.
type Report struct {
	Register cpu.RegisterFile
	Flags    cpu.Flags
	Ip       uint16
	Ticks    int
	Log      []string
}

// Report returns the current state of the emulator.
func (emu *Emulator) Report() (rep *Report) {
	rep = &Report{
		Register: emu.Cpu.Register,
		Flags:    emu.Cpu.Flags,
		Ip:       emu.Cpu.Ip,
		Ticks:    emu.Cpu.Ticks,
		Log:      slices.Clone(emu.Log),
	}

	return
}

// Values iterates the registers in encoding order, followed by the
// instruction pointer.
func (rep *Report) Values() iter.Seq2[string, uint16] {
	return internal.IterSeq2Concat(
		internal.IterSeq2MapKey(rep.Register.All(), cpu.Register.String),
		internal.IterSeq2Single("ip", rep.Ip),
	)
}

func flagText(set bool) string {
	if set {
		return "1"
	}
	return "0"
}

// Write prints the disassembly log followed by the final state. With
// aligned set, the state is a table for a terminal, otherwise it is one
// name=value line per item.
func (rep *Report) Write(w io.Writer, aligned bool) (err error) {
	for _, line := range rep.Log {
		_, err = fmt.Fprintln(w, line)
		if err != nil {
			return
		}
	}

	if !aligned {
		for name, value := range rep.Values() {
			_, err = fmt.Fprintf(w, "%s=0x%04x (%d)\n", name, value, value)
			if err != nil {
				return
			}
		}
		_, err = fmt.Fprintf(w, "zf=%s\nsf=%s\n", flagText(rep.Flags.Zero), flagText(rep.Flags.Sign))
		return
	}

	_, err = translate.Fprintf(w, "\nFinal registers:\n")
	if err != nil {
		return
	}
	for name, value := range rep.Values() {
		_, err = fmt.Fprintf(w, "% 8s: 0x%04x (%d)\n", name, value, value)
		if err != nil {
			return
		}
	}

	_, err = translate.Fprintf(w, "\nFlags:\n")
	if err != nil {
		return
	}
	_, err = fmt.Fprintf(w, "% 8s: %s\n% 8s: %s\n", "zf", flagText(rep.Flags.Zero), "sf", flagText(rep.Flags.Sign))
	if err != nil {
		return
	}

	_, err = translate.Fprintf(w, "\n%v instructions executed\n", fmt.Sprint(rep.Ticks))
	return
}
