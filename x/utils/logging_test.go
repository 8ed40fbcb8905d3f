package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/store"
	"github.com/solpay/solpay/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := solpay.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()

	ok := &weavetest.Handler{DeliverResult: solpay.DeliverResult{Log: "all good"}}
	_, err := NewLogging().Deliver(ctx, db, nil, ok)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "all good")
	assert.Contains(t, buf.String(), "duration")

	buf.Reset()
	bad := &weavetest.Handler{DeliverErr: errors.Wrap(errors.ErrState, "broken")}
	_, err = NewLogging().Deliver(ctx, db, nil, bad)
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "broken")
}

func TestLoggingCheck(t *testing.T) {
	var buf bytes.Buffer
	ctx := solpay.WithLogger(context.Background(), log.NewTMLogger(&buf))
	db := store.MemStore()

	// successful checks log at debug level, which the TM logger keeps
	ok := &weavetest.Handler{CheckResult: solpay.CheckResult{Log: "escrow checked"}}
	_, err := NewLogging().Check(ctx, db, nil, ok)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "escrow checked")
	assert.Contains(t, buf.String(), "duration_us")

	buf.Reset()
	bad := &weavetest.Handler{CheckErr: errors.Wrap(errors.ErrUnauthorized, "recipient")}
	_, err = NewLogging().Check(ctx, db, nil, bad)
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "check failed")
	assert.Contains(t, buf.String(), "recipient")
}
