package taxreward

import (
	"github.com/iov-one/taxweave/errors"
)

// taxreward reserves 1300~1309 error codes
var (
	// ErrInvalidTaxRate is returned when the tax rate exceeds the cap.
	ErrInvalidTaxRate = errors.Register(1300, "invalid tax rate")
	// ErrInvalidRewardInterval is returned when the distribution interval
	// is shorter than the minimum.
	ErrInvalidRewardInterval = errors.Register(1301, "invalid reward interval")
	// ErrTooEarlyForDistribution is returned when a distribution is
	// requested before the interval since the last one has elapsed.
	ErrTooEarlyForDistribution = errors.Register(1302, "too early for distribution")
	// ErrNoRewardsToDistribute is returned when the reward vault is empty.
	ErrNoRewardsToDistribute = errors.Register(1303, "no rewards to distribute")
	// ErrNoEligibleHolders is returned when the total eligible supply is
	// zero.
	ErrNoEligibleHolders = errors.Register(1304, "no eligible holders")
	// ErrTransferFailed is returned when the ledger rejected a value
	// movement.
	ErrTransferFailed = errors.Register(1305, "transfer failed")
	// ErrArithmeticOverflow is returned when a computed amount cannot be
	// represented.
	ErrArithmeticOverflow = errors.Register(1306, "arithmetic overflow")
)

// transferFailed marks a ledger rejection. The result is both
// ErrTransferFailed and the original ledger error.
func transferFailed(ledgerErr error, description string) error {
	return errors.Wrap(errors.Append(ErrTransferFailed, ledgerErr), description)
}
