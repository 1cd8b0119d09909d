package binary

import "errors"

var (
	errShortOperands     = errors.New("binary: instruction truncated before its declared operand list ended")
	errUnterminatedString = errors.New("binary: literal string operand never hits a zero byte")
)
