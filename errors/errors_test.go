package errors

import (
	stdlib "errors"
	"fmt"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRentExempt = Register(4000, "rent exempt minimum")

func TestWrapKeepsKind(t *testing.T) {
	stage := Wrapf(ErrState, "stage %d", 2)
	escrow := Wrap(stage, "complete escrow")

	assert.Equal(t, "complete escrow: stage 2: invalid state", escrow.Error())
	assert.True(t, ErrState.Is(stage))
	assert.True(t, ErrState.Is(escrow))
	assert.False(t, ErrNotFound.Is(escrow))
	assert.Equal(t, ErrState, errors.Cause(escrow))
	assert.Equal(t, ErrState.ABCICode(), abciCode(escrow))

	// a module error wraps like a shared one
	assert.Equal(t, uint32(4000), abciCode(Wrap(errRentExempt, "open escrow")))
	assert.True(t, errRentExempt.Is(errRentExempt.New("lamports")))
}

func TestWrapStdlibError(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, "read escrow record")
	assert.Equal(t, io.ErrUnexpectedEOF, errors.Cause(err))
	assert.Equal(t, internalABCICode, abciCode(err))
	for _, kind := range []*Error{ErrNotFound, ErrDatabase, ErrInput} {
		assert.False(t, kind.Is(err), kind.Error())
	}
}

func TestErrorIsNil(t *testing.T) {
	var nilPtr *wrappedError
	var kind *Error

	assert.True(t, kind.Is(nil))
	assert.True(t, kind.Is(nilPtr))
	assert.False(t, kind.Is(ErrEmpty))
	assert.False(t, ErrEmpty.Is(nil))
	assert.False(t, ErrEmpty.Is(stdlib.New("value is empty")))
}

func TestRegisterTakenCode(t *testing.T) {
	assert.Panics(t, func() { Register(ErrNotFound.ABCICode(), "again") })
	// code 1 is kept for internal errors
	assert.Panics(t, func() { Register(internalABCICode, "internal") })
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestRecover(t *testing.T) {
	withdraw := func(amounts map[string]uint64) (err error) {
		defer Recover(&err)
		return fmt.Errorf("have %d", amounts["custody"]+1/amounts["vault"])
	}
	err := withdraw(map[string]uint64{"custody": 1})
	require.Error(t, err)
	assert.True(t, ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "divide by zero")
}
