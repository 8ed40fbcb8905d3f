package solpay_test

import (
	"testing"

	"github.com/solpay/solpay"
	"github.com/stretchr/testify/assert"
)

type staticQuery []solpay.Model

func (q staticQuery) Query(solpay.ReadOnlyKVStore, string, []byte) ([]solpay.Model, error) {
	return q, nil
}

func TestQueryRouter(t *testing.T) {
	escrows := staticQuery{solpay.Pair([]byte("esc:1"), []byte("open"))}
	r := solpay.NewQueryRouter()
	r.RegisterAll(func(qr solpay.QueryRouter) {
		qr.Register("/escrows", escrows)
	})

	assert.Equal(t, escrows, r.Handler("/escrows"))
	assert.Nil(t, r.Handler("/tokens"))
	assert.Nil(t, r.Handler("escrows"))

	assert.Panics(t, func() { r.Register("/escrows", staticQuery{}) })
	assert.Panics(t, func() { r.Register("tokens", staticQuery{}) })
}
