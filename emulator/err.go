package emulator

import (
	"errors"
	"fmt"

	"github.com/ezrec/sim86/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached"))
	ErrImageSize = errors.New(f("image larger than 64KiB"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Offset int
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo > 0 {
		return f("line %d %v", err.LineNo, err.Err)
	}
	return f("offset %v %v", fmt.Sprintf("0x%04x", err.Offset), err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

type ErrResyncInvalid string

func (err ErrResyncInvalid) Error() string {
	return f("'%v' is not a resync policy", string(err))
}
