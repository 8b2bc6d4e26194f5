package taxreward

import (
	"math"
	"math/bits"
	"testing"

	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/weavetest/assert"
)

func TestRateConfigValidate(t *testing.T) {
	cases := map[string]struct {
		Conf    RateConfig
		WantErr *errors.Error
	}{
		"zero tax": {
			Conf: RateConfig{TaxRateBps: 0, RewardIntervalSeconds: 60},
		},
		"max tax": {
			Conf: RateConfig{TaxRateBps: 1000, RewardIntervalSeconds: 3600},
		},
		"tax above cap": {
			Conf:    RateConfig{TaxRateBps: 1001, RewardIntervalSeconds: 3600},
			WantErr: ErrInvalidTaxRate,
		},
		"interval too short": {
			Conf:    RateConfig{TaxRateBps: 100, RewardIntervalSeconds: 59},
			WantErr: ErrInvalidRewardInterval,
		},
		"zero interval": {
			Conf:    RateConfig{TaxRateBps: 100},
			WantErr: ErrInvalidRewardInterval,
		},
		"rate is checked first": {
			Conf:    RateConfig{TaxRateBps: 5000, RewardIntervalSeconds: 1},
			WantErr: ErrInvalidTaxRate,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.WantErr, tc.Conf.Validate())
		})
	}
}

func TestTaxAmount(t *testing.T) {
	cases := map[string]struct {
		Gross uint64
		Rate  uint32
		Want  uint64
	}{
		"five percent": {Gross: 10000, Rate: 500, Want: 500},
		"rounds down":  {Gross: 19, Rate: 500, Want: 0},
		"floor":        {Gross: 1999, Rate: 1000, Want: 199},
		"zero rate":    {Gross: 1000000, Rate: 0, Want: 0},
		"zero gross":   {Gross: 0, Rate: 1000, Want: 0},
		"max gross":    {Gross: math.MaxUint64, Rate: 1000, Want: math.MaxUint64 / 10},
		"single unit":  {Gross: 10000, Rate: 1, Want: 1},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := TaxAmount(tc.Gross, tc.Rate)
			assert.Nil(t, err)
			assert.Equal(t, tc.Want, got)
		})
	}
}

// edgeAmounts are gross amounts exercised with every allowed tax rate.
var edgeAmounts = []uint64{0, 1, 9999, 10000, 10001, 123456789, math.MaxUint64 / 2, math.MaxUint64}

// floorBps computes floor(gross * rate / 10000) with 128 bit arithmetic.
func floorBps(gross uint64, rate uint32) uint64 {
	hi, lo := bits.Mul64(gross, uint64(rate))
	q, _ := bits.Div64(hi, lo, BpsDenominator)
	return q
}

func TestTaxAmountAllRates(t *testing.T) {
	for rate := uint32(0); rate <= MaxTaxRateBps; rate++ {
		for _, gross := range edgeAmounts {
			got, err := TaxAmount(gross, rate)
			if err != nil {
				t.Fatalf("%d at %d bps: %+v", gross, rate, err)
			}
			if want := floorBps(gross, rate); got != want {
				t.Fatalf("%d at %d bps: want %d, got %d", gross, rate, want, got)
			}
			if got > gross/10 {
				t.Fatalf("%d at %d bps: tax %d above the cap", gross, rate, got)
			}
		}
	}
}

func TestProRataShare(t *testing.T) {
	cases := map[string]struct {
		Holding, Balance, Supply uint64
		Want                     uint64
		WantErr                  *errors.Error
	}{
		"quarter": {
			Holding: 250, Balance: 1000, Supply: 1000,
			Want: 250,
		},
		"floor": {
			Holding: 1, Balance: 10, Supply: 3,
			Want: 3,
		},
		"dust rounds to zero": {
			Holding: 1, Balance: 999, Supply: 1000,
			Want: 0,
		},
		"holding above supply": {
			Holding: 2000, Balance: 1000, Supply: 1000,
			Want: 2000,
		},
		"large values do not wrap": {
			Holding: math.MaxUint64, Balance: math.MaxUint64, Supply: math.MaxUint64,
			Want: math.MaxUint64,
		},
		"result does not fit": {
			Holding: math.MaxUint64, Balance: 2, Supply: 1,
			WantErr: ErrArithmeticOverflow,
		},
		"zero supply": {
			Holding: 1, Balance: 1, Supply: 0,
			WantErr: ErrNoEligibleHolders,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ProRataShare(tc.Holding, tc.Balance, tc.Supply)
			assert.IsErr(t, tc.WantErr, err)
			assert.Equal(t, tc.Want, got)
		})
	}
}
