package app

import (
	"fmt"
	"regexp"

	"github.com/solpay/solpay"
	"github.com/solpay/solpay/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path
// of its message.
type Router struct {
	routes map[string]solpay.Handler
}

var _ solpay.Registry = (*Router)(nil)
var _ solpay.Handler = (*Router)(nil)

// NewRouter returns a router without any routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]solpay.Handler),
	}
}

// Handle registers a handler for given message path. It panics if the path
// is not valid or was already registered.
func (r *Router) Handle(path string, h solpay.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for path. For an unknown path a
// handler returning ErrNotFound is used.
func (r *Router) Handler(path string) solpay.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the registered handler.
func (r *Router) Check(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx) (*solpay.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.Handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the registered handler.
func (r *Router) Deliver(ctx solpay.Context, store solpay.KVStore, tx solpay.Tx) (*solpay.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

type notFoundHandler string

func (path notFoundHandler) Check(solpay.Context, solpay.KVStore, solpay.Tx) (*solpay.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(path))
}

func (path notFoundHandler) Deliver(solpay.Context, solpay.KVStore, solpay.Tx) (*solpay.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", string(path))
}
