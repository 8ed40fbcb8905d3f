package weavetest

import "github.com/solpay/solpay"

// Tx represents a transaction carrying a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg solpay.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ solpay.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (solpay.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message that is only routed, never executed.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by Validate.
	Err error
}

var _ solpay.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
