package taxreward

import (
	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/gconf"
)

const optKey = "taxreward"

// GenesisState is a state declared in the genesis file. Unlike a state
// created with a message, the time of the last distribution is explicit.
type GenesisState struct {
	ID                    string         `json:"id"`
	Authority             weave.Address  `json:"authority"`
	RewardTicker          string         `json:"reward_ticker"`
	TaxVault              weave.Address  `json:"tax_vault"`
	RewardVault           weave.Address  `json:"reward_vault"`
	TaxRateBps            uint32         `json:"tax_rate_bps"`
	RewardIntervalSeconds uint32         `json:"reward_interval_seconds"`
	LastDistribution      weave.UnixTime `json:"last_distribution"`
}

// Initializer loads states and the configuration from the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores all declared states. The configuration is optional,
// without it rewards cannot be acquired.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	switch err := gconf.InitConfig(db, opts, optKey, &Configuration{}); {
	case errors.ErrNotFound.Is(err):
	case err != nil:
		return errors.Wrap(err, "init config")
	}

	var states []GenesisState
	if err := opts.ReadOptions(optKey, &states); err != nil {
		return err
	}
	bucket := NewStateBucket()
	for i, gs := range states {
		id := []byte(gs.ID)
		if err := validateStateID(id); err != nil {
			return errors.Wrapf(err, "state %d", i)
		}
		s, err := NewState(gs.Authority, gs.RewardTicker, gs.TaxVault, gs.RewardVault, RateConfig{
			TaxRateBps:            gs.TaxRateBps,
			RewardIntervalSeconds: gs.RewardIntervalSeconds,
		}, gs.LastDistribution)
		if err != nil {
			return errors.Wrapf(err, "state %q", gs.ID)
		}
		switch ok, err := bucket.Has(db, id); {
		case err != nil:
			return err
		case ok:
			return errors.Wrapf(errors.ErrDuplicate, "state %q", gs.ID)
		}
		if err := bucket.Put(db, id, s); err != nil {
			return errors.Wrapf(err, "state %q", gs.ID)
		}
	}
	return nil
}
