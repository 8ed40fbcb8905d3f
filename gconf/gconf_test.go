package gconf

import (
	"encoding/json"
	"testing"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/store"
	"github.com/solpay/solpay/weavetest/assert"
)

type MyConfig struct {
	Number int64          `json:"number"`
	Text   string         `json:"text"`
	Addr   solpay.Address `json:"addr"`
}

func (c *MyConfig) Marshal() ([]byte, error)   { return Marshal(c) }
func (c *MyConfig) Unmarshal(raw []byte) error { return Unmarshal(raw, c) }
func (c *MyConfig) Validate() error {
	if c.Number < 0 {
		return errors.Wrap(errors.ErrInput, "negative number")
	}
	return c.Addr.Validate()
}

func TestSaveLoad(t *testing.T) {
	addr := make(solpay.Address, solpay.AddressLength)
	addr[3] = 9

	cases := map[string]struct {
		Conf        *MyConfig
		WantSaveErr *errors.Error
	}{
		"valid": {
			Conf: &MyConfig{Number: 852151421, Text: "foobar", Addr: addr},
		},
		"invalid address cannot be saved": {
			Conf:        &MyConfig{Addr: solpay.Address("too short")},
			WantSaveErr: errors.ErrInput,
		},
		"invalid number cannot be saved": {
			Conf:        &MyConfig{Number: -1, Addr: addr},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mine", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got MyConfig
			if err := Load(db, "mine", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, *tc.Conf, got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	var got MyConfig
	err := Load(store.MemStore(), "mine", &got)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestInitConfig(t *testing.T) {
	const genesis = `
		{
			"conf": {
				"mine": {
					"number": 321,
					"text": "hello",
					"addr": "hex:0000000000000000000000000000000000000000000000000000000000000001"
				}
			}
		}
	`
	var opts solpay.Options
	if err := json.Unmarshal([]byte(genesis), &opts); err != nil {
		t.Fatalf("cannot unmarshal genesis: %s", err)
	}

	db := store.MemStore()
	var conf MyConfig
	assert.Nil(t, InitConfig(db, opts, "mine", &conf))

	var got MyConfig
	assert.Nil(t, Load(db, "mine", &got))
	assert.Equal(t, int64(321), got.Number)
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, byte(1), got.Addr[31])

	err := InitConfig(db, opts, "other", &MyConfig{})
	assert.IsErr(t, errors.ErrNotFound, err)

	qr := solpay.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/config").Query(db, solpay.KeyQueryMod, []byte("mine"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("_c:mine"), res[0].Key)
}
