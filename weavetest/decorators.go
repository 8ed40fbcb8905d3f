package weavetest

import "github.com/solpay/solpay"

// calls counts Check and Deliver invocations of a mock.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Decorator is a counting solpay.Decorator. It passes every call to the
// next handler unless CheckErr or DeliverErr is set, in which case that
// error is returned instead. Rejected calls are counted too.
type Decorator struct {
	calls
	CheckErr   error
	DeliverErr error
}

var _ solpay.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx, next solpay.Checker) (*solpay.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx solpay.Context, db solpay.KVStore, tx solpay.Tx, next solpay.Deliverer) (*solpay.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}
