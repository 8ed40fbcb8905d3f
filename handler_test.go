package solpay

import (
	"encoding/json"
	"testing"

	"github.com/solpay/solpay/weavetest/assert"
)

func TestReadOptions(t *testing.T) {
	var opts Options
	assert.Nil(t, json.Unmarshal([]byte(`{"token": {"decimals": 6}, "broken": {"decimals": "six"}}`), &opts))

	var conf struct {
		Decimals int `json:"decimals"`
	}
	assert.Nil(t, opts.ReadOptions("token", &conf))
	assert.Equal(t, 6, conf.Decimals)

	// a missing key leaves the object untouched
	conf.Decimals = 9
	assert.Nil(t, opts.ReadOptions("escrow", &conf))
	assert.Equal(t, 9, conf.Decimals)

	if err := opts.ReadOptions("broken", &conf); err == nil {
		t.Fatal("invalid value must fail")
	}
}
