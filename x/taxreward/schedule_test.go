package taxreward

import (
	"math"
	"testing"

	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/weavetest/assert"
)

func TestPlanDistribution(t *testing.T) {
	const last = weave.UnixTime(1000)

	cases := map[string]struct {
		Now         weave.UnixTime
		Vault       uint64
		Holding     uint64
		TotalSupply uint64
		Want        uint64
		WantErr     *errors.Error
	}{
		"proportional share": {
			Now: last + 3600, Vault: 1000, Holding: 250, TotalSupply: 1000,
			Want: 250,
		},
		"exactly one interval elapsed": {
			Now: last + 60, Vault: 1000, Holding: 1000, TotalSupply: 1000,
			Want: 1000,
		},
		"one second too early": {
			Now: last + 59, Vault: 1000, Holding: 1000, TotalSupply: 1000,
			WantErr: ErrTooEarlyForDistribution,
		},
		"last distribution in the future": {
			Now: last - 1, Vault: 1000, Holding: 1000, TotalSupply: 1000,
			WantErr: ErrTooEarlyForDistribution,
		},
		"gate before empty vault": {
			Now: last + 1, Vault: 0, Holding: 1, TotalSupply: 0,
			WantErr: ErrTooEarlyForDistribution,
		},
		"empty vault before zero supply": {
			Now: last + 60, Vault: 0, Holding: 1, TotalSupply: 0,
			WantErr: ErrNoRewardsToDistribute,
		},
		"zero supply": {
			Now: last + 60, Vault: 1000, Holding: 1, TotalSupply: 0,
			WantErr: ErrNoEligibleHolders,
		},
		"zero holding is a zero payout": {
			Now: last + 60, Vault: 1000, Holding: 0, TotalSupply: 1000,
			Want: 0,
		},
		"payout is clamped to the vault": {
			Now: last + 60, Vault: 1000, Holding: 5000, TotalSupply: 1000,
			Want: 1000,
		},
		"overflowing share": {
			Now: last + 60, Vault: math.MaxUint64, Holding: math.MaxUint64, TotalSupply: 1,
			WantErr: ErrArithmeticOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := &State{
				TaxRateBps:            500,
				RewardIntervalSeconds: 60,
				LastDistribution:      last,
			}
			got, err := PlanDistribution(s, tc.Now, tc.Vault, tc.Holding, tc.TotalSupply)
			assert.IsErr(t, tc.WantErr, err)
			assert.Equal(t, tc.Want, got)
			assert.Equal(t, last, s.LastDistribution)
		})
	}
}

func TestPlanDistributionGateBounds(t *testing.T) {
	cases := map[string]struct {
		Last    weave.UnixTime
		Now     weave.UnixTime
		WantErr *errors.Error
	}{
		"last distribution before the epoch": {
			Last: -3600, Now: 0,
		},
		"last distribution one second before the epoch": {
			Last: -1, Now: 59,
		},
		"still too early around the epoch": {
			Last: -1, Now: 58,
			WantErr: ErrTooEarlyForDistribution,
		},
		"smallest last distribution": {
			Last: math.MinInt64, Now: 0,
		},
		"widest possible gap": {
			Last: math.MinInt64, Now: math.MaxInt64,
		},
		"largest last distribution": {
			Last: math.MaxInt64, Now: 0,
			WantErr: ErrTooEarlyForDistribution,
		},
		"smallest block time": {
			Last: 0, Now: math.MinInt64,
			WantErr: ErrTooEarlyForDistribution,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s := &State{RewardIntervalSeconds: 60, LastDistribution: tc.Last}
			got, err := PlanDistribution(s, tc.Now, 100, 1, 1)
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr == nil {
				assert.Equal(t, uint64(100), got)
			}
		})
	}
}
