package escrow

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
	"github.com/solpay/solpay/orm"
)

// Stage of an escrow lifecycle.
type Stage uint8

const (
	StageDeposited  Stage = 1
	StageCompleted  Stage = 2
	StagePulledBack Stage = 3
)

// ParseStage returns the stage represented by given code. Unknown codes
// are rejected, there is no default stage.
func ParseStage(code uint8) (Stage, error) {
	switch s := Stage(code); s {
	case StageDeposited, StageCompleted, StagePulledBack:
		return s, nil
	default:
		return 0, errors.Wrapf(ErrStage, "unknown stage %d", code)
	}
}

func (s Stage) String() string {
	switch s {
	case StageDeposited:
		return "deposited"
	case StageCompleted:
		return "completed"
	case StagePulledBack:
		return "pulled back"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// recordDiscriminator prefixes every serialized record.
var recordDiscriminator = func() []byte {
	sum := sha256.Sum256([]byte("account:EscrowState"))
	return sum[:8]
}()

// RecordSize is the length of a serialized record.
const RecordSize = 8 + 8 + 8 + 4*solpay.AddressLength + 1

// Record is the escrow state stored under the state address.
type Record struct {
	ID     uint64
	Amount uint64
	Sender solpay.Address
	// Recipient is the only party that can complete the escrow.
	Recipient solpay.Address
	Mint      solpay.Address
	// Custody is the address of the token account holding the funds.
	Custody solpay.Address
	Stage   Stage
}

var _ orm.Model = (*Record)(nil)

// Validate ensures the record is well formed.
func (r *Record) Validate() error {
	if r.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	if err := r.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := r.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := r.Mint.Validate(); err != nil {
		return errors.Wrap(err, "mint")
	}
	if err := r.Custody.Validate(); err != nil {
		return errors.Wrap(err, "custody")
	}
	if _, err := ParseStage(uint8(r.Stage)); err != nil {
		return err
	}
	return nil
}

// Marshal serializes the record into its fixed size little endian layout.
func (r *Record) Marshal() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	raw := make([]byte, 0, RecordSize)
	raw = append(raw, recordDiscriminator...)

	var num [8]byte
	binary.LittleEndian.PutUint64(num[:], r.ID)
	raw = append(raw, num[:]...)
	binary.LittleEndian.PutUint64(num[:], r.Amount)
	raw = append(raw, num[:]...)

	raw = append(raw, r.Sender...)
	raw = append(raw, r.Recipient...)
	raw = append(raw, r.Mint...)
	raw = append(raw, r.Custody...)
	raw = append(raw, byte(r.Stage))
	return raw, nil
}

// Unmarshal loads the record from its serialized form.
func (r *Record) Unmarshal(raw []byte) error {
	if len(raw) != RecordSize {
		return errors.Wrapf(errors.ErrModel, "record of %d bytes", len(raw))
	}
	if !bytes.Equal(raw[:8], recordDiscriminator) {
		return errors.Wrap(errors.ErrModel, "not an escrow record")
	}
	stage, err := ParseStage(raw[RecordSize-1])
	if err != nil {
		return err
	}

	raw = raw[8:]
	r.ID = binary.LittleEndian.Uint64(raw[0:8])
	r.Amount = binary.LittleEndian.Uint64(raw[8:16])
	raw = raw[16:]
	r.Sender = solpay.NewAddress(raw[0:32])
	r.Recipient = solpay.NewAddress(raw[32:64])
	r.Mint = solpay.NewAddress(raw[64:96])
	r.Custody = solpay.NewAddress(raw[96:128])
	r.Stage = stage
	return nil
}

// NewBucket returns the bucket of escrow records, keyed by state address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("escrows", &Record{})
}
