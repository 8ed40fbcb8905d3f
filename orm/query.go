package orm

import (
	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
)

// ConsumeIterator will read all remaining data into an
// array and release the iterator
func ConsumeIterator(itr solpay.Iterator) ([]solpay.Model, error) {
	defer itr.Release()

	var res []solpay.Model
	for {
		key, value, err := itr.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		res = append(res, solpay.Pair(key, value))
	}
}

// PrefixRange turns a prefix into (start, end) to create
// and iterator
func PrefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// RegisterQuery will register a raw kv store query handler as "/".
func RegisterQuery(qr solpay.QueryRouter) {
	qr.Register("/", rawQuery{})
}

// rawQuery reads the store directly, without any bucket prefix.
type rawQuery struct{}

var _ solpay.QueryHandler = rawQuery{}

func (rawQuery) Query(db solpay.ReadOnlyKVStore, mod string, data []byte) ([]solpay.Model, error) {
	switch mod {
	case solpay.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, nil
		}
		return []solpay.Model{solpay.Pair(data, value)}, nil
	case solpay.PrefixQueryMod:
		start, end := PrefixRange(data)
		it, err := db.Iterator(start, end)
		if err != nil {
			return nil, err
		}
		return ConsumeIterator(it)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
