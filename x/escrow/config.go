package escrow

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/gconf"
)

const confPkg = "escrow"

// DefaultProgramID is used when the genesis does not configure one.
var DefaultProgramID = solpay.MustParseAddress("6qZM5m4H6ZspdKraMmJKCLNbFmw6hdWt6z3h71gScQmq")

// Configuration of the escrow program.
type Configuration struct {
	// ProgramID is part of every escrow address derivation.
	ProgramID solpay.Address `json:"program_id"`
}

func (c *Configuration) Marshal() ([]byte, error)   { return gconf.Marshal(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return gconf.Unmarshal(raw, c) }

func (c *Configuration) Validate() error {
	if err := c.ProgramID.Validate(); err != nil {
		return errors.Wrap(err, "program id")
	}
	return nil
}

// ProgramID returns the configured escrow program id.
func ProgramID(db gconf.ReadStore) (solpay.Address, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case errors.ErrNotFound.Is(err):
		return DefaultProgramID, nil
	case err != nil:
		return nil, errors.Wrap(err, "load configuration")
	}
	return conf.ProgramID, nil
}
