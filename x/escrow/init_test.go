package escrow

import (
	"encoding/json"
	"testing"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/store"
	"github.com/solpay/solpay/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	cases := map[string]struct {
		Genesis     string
		WantErr     *errors.Error
		WantProgram solpay.Address
	}{
		"default program": {
			Genesis:     `{}`,
			WantProgram: DefaultProgramID,
		},
		"configured program": {
			Genesis:     `{"conf": {"escrow": {"program_id": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"}}}`,
			WantProgram: solpay.MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"),
		},
		"invalid program": {
			Genesis: `{"conf": {"escrow": {"program_id": "hex:0102"}}}`,
			WantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts solpay.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr != nil {
				return
			}
			program, err := ProgramID(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantProgram, program)
		})
	}
}
