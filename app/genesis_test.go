package app

import (
	"testing"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/store"
	"github.com/solpay/solpay/weavetest/assert"
)

func TestChainInitializers(t *testing.T) {
	first := &countingInit{}
	failing := &countingInit{err: errors.ErrState}
	last := &countingInit{}

	db := store.MemStore()
	assert.Nil(t, ChainInitializers(first, last).FromGenesis(solpay.Options{}, db))
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, last.calls)

	err := ChainInitializers(first, failing, last).FromGenesis(solpay.Options{}, db)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, 2, first.calls)
	assert.Equal(t, 1, failing.calls)
	// initialization stops at the first failure
	assert.Equal(t, 1, last.calls)
}
