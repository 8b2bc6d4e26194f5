package utils

import (
	"time"

	weave "github.com/iov-one/taxweave"
	"github.com/jonboulle/clockwork"
)

// Logging is a decorator to log messages as they pass through.
type Logging struct {
	clock clockwork.Clock
}

var _ weave.Decorator = Logging{}

// NewLogging creates a Logging decorator measuring durations with given
// clock. A nil clock means the real one.
func NewLogging(clock clockwork.Clock) Logging {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return Logging{clock: clock}
}

// Check logs error -> error, success -> debug
func (l Logging) Check(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Checker) (*weave.CheckResult, error) {
	start := l.clock.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	l.logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (l Logging) Deliver(ctx weave.Context, store weave.KVStore, tx weave.Tx, next weave.Deliverer) (*weave.DeliverResult, error) {
	start := l.clock.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	l.logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

func (l Logging) logDuration(ctx weave.Context, tx weave.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := l.clock.Since(start)
	logger := weave.GetLogger(ctx).With(
		"path", weave.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	// An entry is emitted even for an empty message, as the other fields
	// are still relevant.
	switch {
	case err != nil:
		logger.Error(msg, "err", err)
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
