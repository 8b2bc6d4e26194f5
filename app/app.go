package app

import (
	"sync"

	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/x/utils"
	"github.com/jonboulle/clockwork"
	"github.com/tendermint/tendermint/libs/log"
)

// Application owns a store and executes transactions against it one at a
// time, the way a chain delivers the transactions of a block. The block
// time of every transaction is read from the clock.
type Application struct {
	mu sync.Mutex

	store   weave.CacheableKVStore
	handler weave.Handler
	init    weave.Initializer
	queries weave.QueryRouter
	clock   clockwork.Clock
	logger  log.Logger

	chainID string
	height  int64
}

// NewApplication returns an application that is not yet initialized with
// a genesis. A nil clock means the real one and a nil logger discards all
// entries.
func NewApplication(
	store weave.CacheableKVStore,
	handler weave.Handler,
	init weave.Initializer,
	queries weave.QueryRouter,
	clock clockwork.Clock,
	logger log.Logger,
) *Application {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Application{
		store:   store,
		handler: handler,
		init:    init,
		queries: queries,
		clock:   clock,
		logger:  logger,
	}
}

// InitChain initializes all extensions from the genesis. Either the whole
// genesis is loaded or nothing.
func (a *Application) InitChain(gen Genesis) error {
	if err := gen.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	err := utils.Atomic(a.store, func(db weave.KVStore) error {
		if err := saveChainID(db, gen.ChainID); err != nil {
			return err
		}
		if a.init == nil {
			return nil
		}
		if err := a.init.FromGenesis(gen.AppState, db); err != nil {
			return errors.Wrap(err, "genesis")
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.chainID = gen.ChainID
	a.logger.Info("chain initialized", "chain_id", gen.ChainID)
	return nil
}

// ChainID returns the chain id this application was initialized with. It
// is loaded from the store if InitChain was called by another instance.
func (a *Application) ChainID() (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chainID != "" {
		return a.chainID, nil
	}
	id, err := loadChainID(a.store)
	if err != nil {
		return "", err
	}
	a.chainID = id
	return id, nil
}

// Check runs the transaction against a copy of the store. Nothing is ever
// written. Given context must not carry the height or the block time, both
// are set by the application.
func (a *Application) Check(ctx weave.Context, tx weave.Tx) (*weave.CheckResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	db := a.store.CacheWrap()
	defer db.Discard()
	return a.handler.Check(a.context(ctx, "check_tx", a.height, tx), db, tx)
}

// Deliver executes the transaction as the next block. A failed
// transaction writes nothing and does not advance the height.
func (a *Application) Deliver(ctx weave.Context, tx weave.Tx) (*weave.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	height := a.height + 1
	db := a.store.CacheWrap()
	res, err := a.handler.Deliver(a.context(ctx, "deliver_tx", height, tx), db, tx)
	if err != nil {
		db.Discard()
		return nil, err
	}
	if err := db.Write(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	a.height = height
	return res, nil
}

// Query returns the models found by the handler registered for the path.
func (a *Application) Query(path, mod string, data []byte) ([]weave.Model, error) {
	h := a.queries.Handler(path)
	if h == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "no query handler for %q", path)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return h.Query(a.store, mod, data)
}

// Height returns the number of delivered transactions.
func (a *Application) Height() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.height
}

func (a *Application) context(ctx weave.Context, call string, height int64, tx weave.Tx) weave.Context {
	ctx = weave.WithHeight(ctx, height)
	ctx = weave.WithBlockTime(ctx, a.clock.Now())
	if a.chainID != "" {
		ctx = weave.WithChainID(ctx, a.chainID)
	}
	ctx = weave.WithLogger(ctx, a.logger)
	return weave.WithLogInfo(ctx, "call", call, "path", weave.GetPath(tx))
}
