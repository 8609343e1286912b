package source

import (
	"errors"

	"github.com/ezrec/sim86/translate"
)

var f = translate.From

var (
	// Source errors
	ErrSeekRange = errors.New(f("seek out of range"))
)
