package app

import (
	"context"
	"testing"

	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/weavetest"
	"github.com/solpay/solpay/x/utils"
	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(
		c1,
		utils.NewLogging(),
		utils.NewRecovery(),
		nil,
		c2,
	).WithHandler(h)

	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/noop"}}

	_, err := stack.Check(ctx, nil, tx)
	assert.NoError(t, err)
	_, err = stack.Deliver(ctx, nil, tx)
	assert.NoError(t, err)

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainRecoversPanic(t *testing.T) {
	c1 := &weavetest.Decorator{}
	c2 := &weavetest.Decorator{}

	stack := ChainDecorators(
		c1,
		utils.NewRecovery(),
		c2,
	).WithHandler(weavetest.PanicHandler{Msg: "boom"})

	ctx := context.Background()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/panic"}}

	_, err := stack.Check(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(ctx, nil, tx)
	assert.True(t, errors.ErrPanic.Is(err))

	assert.Equal(t, 2, c1.CallCount())
	assert.Equal(t, 2, c2.CallCount())
}

func TestChainIsNotShared(t *testing.T) {
	base := ChainDecorators(&weavetest.Decorator{})
	d1 := &weavetest.Decorator{}
	d2 := &weavetest.Decorator{}

	// extending one chain must never leak into another built from the same base
	first := base.Chain(d1).WithHandler(&weavetest.Handler{})
	second := base.Chain(d2).WithHandler(&weavetest.Handler{})

	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/noop"}}
	_, err := first.Check(context.Background(), nil, tx)
	assert.NoError(t, err)
	assert.Equal(t, 1, d1.CallCount())
	assert.Equal(t, 0, d2.CallCount())

	_, err = second.Deliver(context.Background(), nil, tx)
	assert.NoError(t, err)
	assert.Equal(t, 1, d1.CallCount())
	assert.Equal(t, 1, d2.CallCount())
}

func TestChainSkipsNilAndStopsOnError(t *testing.T) {
	var missing *weavetest.Decorator
	first := &weavetest.Decorator{CheckErr: errors.ErrUnauthorized}
	second := &weavetest.Decorator{}
	h := &weavetest.Handler{}

	stack := ChainDecorators(missing, first, nil, second).WithHandler(h)
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/open"}}

	_, err := stack.Check(context.Background(), nil, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 1, first.CheckCallCount())
	assert.Equal(t, 0, second.CallCount())
	assert.Equal(t, 0, h.CallCount())

	_, err = stack.Deliver(context.Background(), nil, tx)
	assert.NoError(t, err)
	assert.Equal(t, 1, second.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}
