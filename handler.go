package weave

import (
	"encoding/json"

	"github.com/iov-one/taxweave/errors"
)

// Handler is a core engine that can process a few specific messages. This
// could represent "collect tax", or "distribute rewards".
type Handler interface {
	Checker
	Deliverer
}

// Checker is a subset of Handler to verify the validity of a transaction.
// It is its own interface to allow better type controls in the next
// arguments in Decorator.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is a subset of Handler to execute a transaction. It is its own
// interface to allow better type controls in the next arguments in
// Decorator.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator wraps a Handler to provide common functionality like
// authentication, logging or savepoints, to many Handlers.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry is an interface to register your handler, the setup side of a
// Router.
type Registry interface {
	// Handle assigns given handler to process all messages of the same
	// path as the given message.
	Handle(m Msg, h Handler)
}

// CheckResult captures any non-error result of checking a message.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
}

// DeliverResult captures any non-error result of executing a message.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
}

// Options are the app options. Each extension can look up it's key and
// parse the json as desired.
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key, and parses the json
// into the given obj. Returns an error if it cannot parse. Noop and no error
// if key is missing.
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "options %q: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize extensions from
// genesis file contents.
type Initializer interface {
	FromGenesis(opts Options, db KVStore) error
}

// MultiInitializer combines many initializers into one. Initializers are
// called in the order given.
type MultiInitializer []Initializer

var _ Initializer = MultiInitializer(nil)

// FromGenesis calls all initializers. It stops at the first failure.
func (m MultiInitializer) FromGenesis(opts Options, db KVStore) error {
	for _, i := range m {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
