package emulator

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sim86/cpu"
)

func TestReport(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom.Data = []byte{
		0xb8, 0x05, 0x00, // mov ax, 5
		0x83, 0xf9, 0x0a, 0x00, // cmp cx, 10
	}

	err := emu.Run()
	assert.NoError(err)

	rep := emu.Report()
	assert.Equal(uint16(5), rep.Register.Get(cpu.REG_AX))
	assert.Equal(uint16(7), rep.Ip)
	assert.Equal(2, rep.Ticks)
	assert.False(rep.Flags.Zero)
	assert.True(rep.Flags.Sign)
	assert.Equal([]string{"mov ax, 5", "cmp cx, 10"}, rep.Log)

	var names []string
	for name := range rep.Values() {
		names = append(names, name)
	}
	assert.Equal([]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di", "ip"}, names)

	buff := &bytes.Buffer{}
	err = rep.Write(buff, false)
	assert.NoError(err)

	expected := []string{
		"mov ax, 5",
		"cmp cx, 10",
		"ax=0x0005 (5)",
		"cx=0x0000 (0)",
		"dx=0x0000 (0)",
		"bx=0x0000 (0)",
		"sp=0x0000 (0)",
		"bp=0x0000 (0)",
		"si=0x0000 (0)",
		"di=0x0000 (0)",
		"ip=0x0007 (7)",
		"zf=0",
		"sf=1",
		"",
	}
	assert.Equal(strings.Join(expected, "\n"), buff.String())

	// The report is a snapshot.
	emu.Cpu.Register.Set(cpu.REG_AX, 0)
	emu.Log[0] = ""
	assert.Equal(uint16(5), rep.Register.Get(cpu.REG_AX))
	assert.Equal("mov ax, 5", rep.Log[0])
}

func TestReport_Aligned(t *testing.T) {
	assert := assert.New(t)

	rep := &Report{
		Ip:  0xfe,
		Log: []string{"jnz 254"},
	}
	rep.Register.Set(cpu.REG_DI, 0xffff)
	rep.Flags.Zero = true

	buff := &bytes.Buffer{}
	err := rep.Write(buff, true)
	assert.NoError(err)

	text := buff.String()
	assert.True(strings.HasPrefix(text, "jnz 254\n"))
	assert.Contains(text, "      di: 0xffff (65535)\n")
	assert.Contains(text, "      ip: 0x00fe (254)\n")
	assert.Contains(text, "      zf: 1\n")
	assert.Contains(text, "      sf: 0\n")
}
