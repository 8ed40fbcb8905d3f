package errors

import (
	"fmt"
)

// SuccessABCICode is the code of every successful ABCI response.
const SuccessABCICode = 0

// Errors without a registered code share code 1. Their message may leak
// node details and is replaced outside of debug mode.
const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of the ABCI response reporting err.
//
// Outside of debug mode panics report only "panic" and unregistered errors
// only "internal error". In debug mode the log is the full message followed
// by the recorded stack.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case ErrPanic.Is(err):
		return ErrPanic.code, ErrPanic.desc
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode returns the code of the outermost error in the chain that has
// one.
func abciCode(err error) uint32 {
	for err != nil {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}
