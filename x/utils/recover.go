package utils

import (
	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
)

// Recovery is a decorator to recover from panics in transactions. A panic
// is logged and returned as ErrPanic.
type Recovery struct{}

var _ weave.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (_ *weave.CheckResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicErr(ctx, tx, p)
		}
	}()
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (_ *weave.DeliverResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicErr(ctx, tx, p)
		}
	}()
	return next.Deliver(ctx, store, tx)
}

func panicErr(ctx weave.Context, tx weave.Tx, p interface{}) error {
	weave.GetLogger(ctx).Error("recovered from panic", "path", weave.GetPath(tx), "panic", p)
	return errors.Wrapf(errors.ErrPanic, "%v", p)
}
