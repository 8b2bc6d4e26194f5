package taxreward

import (
	"github.com/holiman/uint256"
	"github.com/iov-one/taxweave/errors"
)

const (
	// BpsDenominator is the number of basis points making 100%.
	BpsDenominator = 10000
	// MaxTaxRateBps caps the tax rate at 10%.
	MaxTaxRateBps = 1000
	// MinRewardIntervalSeconds is the shortest allowed distribution
	// cadence.
	MinRewardIntervalSeconds = 60
)

// RateConfig holds the policy parameters of a State. They are validated
// once, when the state is created, and never change afterwards.
type RateConfig struct {
	TaxRateBps            uint32
	RewardIntervalSeconds uint32
}

// Validate returns ErrInvalidTaxRate or ErrInvalidRewardInterval for a
// configuration that cannot be used.
func (c RateConfig) Validate() error {
	if c.TaxRateBps > MaxTaxRateBps {
		return errors.Wrapf(ErrInvalidTaxRate, "%d bps exceeds %d bps", c.TaxRateBps, MaxTaxRateBps)
	}
	if c.RewardIntervalSeconds < MinRewardIntervalSeconds {
		return errors.Wrapf(ErrInvalidRewardInterval, "%ds is shorter than %ds", c.RewardIntervalSeconds, MinRewardIntervalSeconds)
	}
	return nil
}

// TaxAmount returns floor(gross * rateBps / 10000).
func TaxAmount(gross uint64, rateBps uint32) (uint64, error) {
	return mulDiv(gross, uint64(rateBps), BpsDenominator)
}

// ProRataShare returns floor(holding * balance / supply). Supply must not
// be zero.
func ProRataShare(holding, balance, supply uint64) (uint64, error) {
	if supply == 0 {
		return 0, errors.Wrap(ErrNoEligibleHolders, "zero supply")
	}
	return mulDiv(holding, balance, supply)
}

// mulDiv computes floor(a * b / d) in a 256 bit domain. The product of two
// 64 bit values never wraps there, only the narrowed result can be out of
// range.
func mulDiv(a, b, d uint64) (uint64, error) {
	x := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	x.Div(x, uint256.NewInt(d))
	if !x.IsUint64() {
		return 0, errors.Wrapf(ErrArithmeticOverflow, "%d * %d / %d", a, b, d)
	}
	return x.Uint64(), nil
}
