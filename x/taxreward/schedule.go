package taxreward

import (
	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
)

// PlanDistribution decides the payout of a single distribution without
// applying it. Checks are done in order: the interval gate, an empty vault,
// a zero supply. The payout is the recipient pro-rata share of the vault,
// never more than the vault holds. A zero payout is a valid result.
func PlanDistribution(s *State, now weave.UnixTime, vaultBalance, holding, totalSupply uint64) (uint64, error) {
	if s.LastDistribution > now {
		return 0, errors.Wrapf(ErrTooEarlyForDistribution,
			"last distribution at %d is after block time %d", int64(s.LastDistribution), int64(now))
	}
	// now >= last, so the difference fits in uint64 even when int64 would wrap.
	if elapsed := uint64(now) - uint64(s.LastDistribution); elapsed < uint64(s.RewardIntervalSeconds) {
		return 0, errors.Wrapf(ErrTooEarlyForDistribution,
			"%ds elapsed since last distribution, %ds required", elapsed, s.RewardIntervalSeconds)
	}
	if vaultBalance == 0 {
		return 0, errors.Wrap(ErrNoRewardsToDistribute, "reward vault is empty")
	}
	if totalSupply == 0 {
		return 0, errors.Wrap(ErrNoEligibleHolders, "total eligible supply is zero")
	}
	payout, err := ProRataShare(holding, vaultBalance, totalSupply)
	if err != nil {
		return 0, err
	}
	if payout > vaultBalance {
		payout = vaultBalance
	}
	return payout, nil
}
