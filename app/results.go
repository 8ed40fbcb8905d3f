package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
)

// resultsTag is the key of the repeated bytes field 1.
const resultsTag = 1<<3 | proto.WireBytes

// ResultSet is the protobuf message
//
//	message ResultSet { repeated bytes results = 1; }
//
// used to return any number of keys or values in a query response.
type ResultSet struct {
	Results [][]byte
}

// Marshal serializes the result set using the protobuf wire format.
func (r *ResultSet) Marshal() ([]byte, error) {
	buf := proto.NewBuffer(nil)
	for _, res := range r.Results {
		if err := buf.EncodeVarint(resultsTag); err != nil {
			return nil, errors.Wrap(errors.ErrModel, err.Error())
		}
		if err := buf.EncodeRawBytes(res); err != nil {
			return nil, errors.Wrap(errors.ErrModel, err.Error())
		}
	}
	return buf.Bytes(), nil
}

// Unmarshal loads a protobuf serialized result set.
func (r *ResultSet) Unmarshal(raw []byte) error {
	r.Results = nil
	for len(raw) > 0 {
		tag, n := proto.DecodeVarint(raw)
		if n == 0 {
			return errors.Wrap(errors.ErrModel, "malformed tag")
		}
		if tag != resultsTag {
			return errors.Wrapf(errors.ErrModel, "unexpected tag %d", tag)
		}
		raw = raw[n:]

		size, n := proto.DecodeVarint(raw)
		if n == 0 || uint64(len(raw)-n) < size {
			return errors.Wrap(errors.ErrModel, "malformed result")
		}
		raw = raw[n:]
		r.Results = append(r.Results, append([]byte{}, raw[:size]...))
		raw = raw[size:]
	}
	return nil
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []solpay.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []solpay.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]solpay.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]solpay.Model, len(kref))
	for i := range mods {
		mods[i] = solpay.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o solpay.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
