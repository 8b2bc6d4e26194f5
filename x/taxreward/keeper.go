package taxreward

import (
	"sync"

	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/coin"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/gconf"
	"github.com/iov-one/taxweave/orm"
	"github.com/iov-one/taxweave/x"
	"github.com/iov-one/taxweave/x/cash"
	"github.com/iov-one/taxweave/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Keeper applies all operations on stored states. Every operation runs in
// a savepoint, so a failure leaves both the state and the ledger unchanged.
//
// Operations of a keeper, and of its copies, are serialized: a state
// shares wallets with other states and the ledger, and the store is not
// safe for concurrent use. Callers writing to the same store outside of
// the keeper must serialize with it themselves, as app.Application does.
type Keeper struct {
	bucket  orm.ModelBucket
	ledger  cash.Controller
	mu      *sync.Mutex
	metrics *Metrics
}

// NewKeeper returns a keeper moving value with given ledger. Metrics may be
// nil.
func NewKeeper(ledger cash.Controller, metrics *Metrics) Keeper {
	return Keeper{
		bucket:  NewStateBucket(),
		ledger:  ledger,
		mu:      &sync.Mutex{},
		metrics: metrics,
	}
}

// TaxRequest describes a single tax collection.
type TaxRequest struct {
	Payer weave.Address
	// Gross is the taxed amount.
	Gross uint64
	// UseBalance taxes the whole payer balance of the token instead of
	// Gross.
	UseBalance bool
}

// DistributionRequest describes a single reward distribution.
type DistributionRequest struct {
	Recipient   weave.Address
	Holding     uint64
	TotalSupply uint64
	// HoldingFromLedger reads the recipient holding from the ledger
	// instead of using Holding.
	HoldingFromLedger bool
}

func logger(ctx weave.Context, stateID []byte) log.Logger {
	return weave.GetLogger(ctx).With("module", "taxreward", "state", string(stateID))
}

// Create stores a new state under given ID. It fails with ErrDuplicate if
// the ID is taken.
func (k Keeper) Create(ctx weave.Context, db weave.KVStore, stateID []byte, s *State) error {
	if err := validateStateID(stateID); err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	return utils.Atomic(db, func(db weave.KVStore) error {
		switch ok, err := k.bucket.Has(db, stateID); {
		case err != nil:
			return err
		case ok:
			return errors.Wrapf(errors.ErrDuplicate, "state %q", stateID)
		}
		if err := k.bucket.Put(db, stateID, s); err != nil {
			return errors.Wrap(err, "save state")
		}
		logger(ctx, stateID).Info("state created",
			"tax_rate_bps", s.TaxRateBps,
			"reward_interval_seconds", s.RewardIntervalSeconds,
			"last_distribution", int64(s.LastDistribution))
		return nil
	})
}

// State returns the state stored under given ID.
func (k Keeper) State(db weave.ReadOnlyKVStore, stateID []byte) (*State, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.load(db, stateID)
}

func (k Keeper) load(db weave.ReadOnlyKVStore, stateID []byte) (*State, error) {
	var s State
	if err := k.bucket.One(db, stateID, &s); err != nil {
		return nil, errors.Wrapf(err, "state %q", stateID)
	}
	return &s, nil
}

// CollectTax moves the tax of a transfer from the payer to the tax vault.
// It returns the collected amount. A zero tax is a success that moves
// nothing.
func (k Keeper) CollectTax(ctx weave.Context, db weave.KVStore, stateID []byte, req TaxRequest) (uint64, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	var tax uint64
	err := utils.Atomic(db, func(db weave.KVStore) error {
		s, err := k.load(db, stateID)
		if err != nil {
			return err
		}
		gross := req.Gross
		if req.UseBalance {
			bal, err := k.ledger.Balance(db, req.Payer)
			if err != nil {
				return errors.Wrap(err, "payer balance")
			}
			gross = bal.Get(s.RewardTicker).Amount
		}
		tax, err = TaxAmount(gross, s.TaxRateBps)
		if err != nil {
			return err
		}
		if tax == 0 {
			return nil
		}
		if err := k.ledger.MoveCoins(db, req.Payer, s.TaxVault, coin.NewCoin(tax, s.RewardTicker)); err != nil {
			return transferFailed(err, "tax payment")
		}
		logger(ctx, stateID).Info("tax collected", "payer", req.Payer, "gross", gross, "tax", tax)
		return nil
	})
	if err != nil {
		return 0, err
	}
	k.metrics.taxCollected(tax)
	return tax, nil
}

// DistributeRewards pays the recipient its share of the reward vault and
// advances the schedule to the current block time. The schedule advances
// even when the share is zero.
func (k Keeper) DistributeRewards(ctx weave.Context, db weave.KVStore, stateID []byte, req DistributionRequest) (uint64, error) {
	now, err := weave.Now(ctx)
	if err != nil {
		return 0, err
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	var payout uint64
	err = utils.Atomic(db, func(db weave.KVStore) error {
		s, err := k.load(db, stateID)
		if err != nil {
			return err
		}
		vault, err := k.ledger.Balance(db, s.RewardVault)
		if err != nil {
			return errors.Wrap(err, "reward vault balance")
		}
		holding := req.Holding
		if req.HoldingFromLedger {
			bal, err := k.ledger.Balance(db, req.Recipient)
			if err != nil {
				return errors.Wrap(err, "recipient balance")
			}
			holding = bal.Get(s.RewardTicker).Amount
		}

		payout, err = PlanDistribution(s, now, vault.Get(s.RewardTicker).Amount, holding, req.TotalSupply)
		if err != nil {
			return err
		}
		if payout > 0 {
			if err := k.ledger.MoveCoins(db, s.RewardVault, req.Recipient, coin.NewCoin(payout, s.RewardTicker)); err != nil {
				return transferFailed(err, "reward payout")
			}
		}
		s.LastDistribution = now
		if err := k.bucket.Put(db, stateID, s); err != nil {
			return errors.Wrap(err, "save state")
		}
		logger(ctx, stateID).Info("rewards distributed",
			"recipient", req.Recipient,
			"holding", holding,
			"total_supply", req.TotalSupply,
			"payout", payout)
		return nil
	})
	k.metrics.distribution(distributionOutcome(payout, err), payout)
	if err != nil {
		return 0, err
	}
	return payout, nil
}

func distributionOutcome(payout uint64, err error) string {
	switch {
	case err == nil && payout == 0:
		return outcomeZeroPayout
	case err == nil:
		return outcomePaid
	case ErrTooEarlyForDistribution.Is(err):
		return outcomeTooEarly
	case ErrNoRewardsToDistribute.Is(err):
		return outcomeNoRewards
	case ErrNoEligibleHolders.Is(err):
		return outcomeNoHolders
	default:
		return outcomeFailed
	}
}

// ForceUpdateLastDistribution sets the time of the last distribution to
// any value. Only the state authority is allowed to do this.
func (k Keeper) ForceUpdateLastDistribution(ctx weave.Context, db weave.KVStore, auth x.Authenticator, stateID []byte, t weave.UnixTime) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	err := utils.Atomic(db, func(db weave.KVStore) error {
		s, err := k.load(db, stateID)
		if err != nil {
			return err
		}
		if err := x.RequireAddress(ctx, auth, s.Authority, "authority"); err != nil {
			return err
		}
		previous := s.LastDistribution
		s.LastDistribution = t
		if err := k.bucket.Put(db, stateID, s); err != nil {
			return errors.Wrap(err, "save state")
		}
		logger(ctx, stateID).Info("distribution schedule overridden",
			"previous", int64(previous),
			"last_distribution", int64(t))
		return nil
	})
	if err != nil {
		return err
	}
	k.metrics.override()
	return nil
}

// AcquireRewards moves the price from the buyer to the configured collector
// and mints amount of the reward token into the reward vault.
func (k Keeper) AcquireRewards(ctx weave.Context, db weave.KVStore, stateID []byte, buyer weave.Address, price coin.Coin, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero reward amount")
	}
	if !price.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive price")
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	err := utils.Atomic(db, func(db weave.KVStore) error {
		s, err := k.load(db, stateID)
		if err != nil {
			return err
		}
		if price.Ticker == s.RewardTicker {
			return errors.Wrapf(errors.ErrCurrency, "price must not be paid in %s", s.RewardTicker)
		}
		var conf Configuration
		if err := gconf.Load(db, BucketName, &conf); err != nil {
			return errors.Wrap(err, "load configuration")
		}
		if err := k.ledger.MoveCoins(db, buyer, conf.Collector, price); err != nil {
			return transferFailed(err, "price payment")
		}
		if err := k.ledger.CoinMint(db, s.RewardVault, coin.NewCoin(amount, s.RewardTicker)); err != nil {
			return transferFailed(err, "reward mint")
		}
		logger(ctx, stateID).Info("rewards acquired", "buyer", buyer, "price", price.String(), "amount", amount)
		return nil
	})
	if err != nil {
		return err
	}
	k.metrics.minted(amount)
	return nil
}
