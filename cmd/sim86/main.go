// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"encoding/binary"
	"flag"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/sim86/cpu"
	"github.com/ezrec/sim86/emulator"
	"github.com/ezrec/sim86/source"
)

func main() {
	var compile string
	var save string
	var input string
	var big_endian bool
	var resync string
	var steps int
	var disassemble bool
	var verbose bool

	asm := &cpu.Assembler{}

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&save, "s", "", "Save assembled binary to file, do not execute")
	flag.StringVar(&input, "i", "-", "Binary input")
	flag.BoolVar(&big_endian, "be", false, "Big-endian instruction fetch")
	flag.StringVar(&resync, "resync", "stop", "Unrecognized opcode policy (stop, skip)")
	flag.IntVar(&steps, "n", emulator.MAX_STEPS, "Step limit")
	flag.BoolVar(&disassemble, "d", false, "Disassemble only, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an equate (NAME=VALUE)", func(text string) error {
		name, value, _ := strings.Cut(text, "=")
		asm.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxSteps = steps

	rs, err := emulator.ParseResync(resync)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Resync = rs

	if big_endian {
		emu.ByteOrder = binary.BigEndian
	}

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm.Verbose = verbose
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(save) != 0 {
			err = os.WriteFile(save, prog.Binary(), 0o644)
			if err != nil {
				log.Fatalf("%v: %v", save, err)
			}
			return
		}

		emu.Program = prog
	} else {
		inf := os.Stdin
		if input != "-" {
			inf, err = os.Open(input)
			if err != nil {
				log.Fatalf("%v: %v", input, err)
			}
			defer inf.Close()
		}

		rom, err := source.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		emu.Rom = *rom
	}

	if disassemble {
		text, err := emu.Disassemble()
		for _, line := range text {
			os.Stdout.WriteString(line + "\n")
		}
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	err = emu.Reset()
	if err != nil {
		log.Fatal(err)
	}
	err = emu.Run()

	aligned := term.IsTerminal(int(os.Stdout.Fd()))
	werr := emu.Report().Write(os.Stdout, aligned)
	if werr != nil {
		log.Fatal(werr)
	}

	if err != nil {
		log.Fatal(err)
	}
}
