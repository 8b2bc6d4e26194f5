package taxreward

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Distribution outcomes reported by the distributions counter.
const (
	outcomePaid       = "paid"
	outcomeZeroPayout = "zero_payout"
	outcomeTooEarly   = "too_early"
	outcomeNoRewards  = "no_rewards"
	outcomeNoHolders  = "no_holders"
	outcomeFailed     = "failed"
)

// Metrics groups all collectors of this extension. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	TaxCollected  prometheus.Counter
	Distributions *prometheus.CounterVec
	RewardsPaid   prometheus.Counter
	RewardsMinted prometheus.Counter
	Overrides     prometheus.Counter
}

// NewMetrics creates all collectors and registers them with given
// registerer. A nil registerer creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TaxCollected: factory.NewCounter(prometheus.CounterOpts{
			Name: "taxreward_tax_collected_units_total",
			Help: "Total number of token units moved into tax vaults",
		}),
		Distributions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taxreward_distributions_total",
			Help: "Total number of distribution attempts by outcome",
		}, []string{"outcome"}),
		RewardsPaid: factory.NewCounter(prometheus.CounterOpts{
			Name: "taxreward_rewards_paid_units_total",
			Help: "Total number of token units paid out of reward vaults",
		}),
		RewardsMinted: factory.NewCounter(prometheus.CounterOpts{
			Name: "taxreward_rewards_minted_units_total",
			Help: "Total number of token units minted into reward vaults",
		}),
		Overrides: factory.NewCounter(prometheus.CounterOpts{
			Name: "taxreward_schedule_overrides_total",
			Help: "Total number of forced updates of the distribution schedule",
		}),
	}
}

func (m *Metrics) taxCollected(amount uint64) {
	if m != nil {
		m.TaxCollected.Add(float64(amount))
	}
}

func (m *Metrics) distribution(outcome string, payout uint64) {
	if m == nil {
		return
	}
	m.Distributions.WithLabelValues(outcome).Inc()
	if payout > 0 {
		m.RewardsPaid.Add(float64(payout))
	}
}

func (m *Metrics) minted(amount uint64) {
	if m != nil {
		m.RewardsMinted.Add(float64(amount))
	}
}

func (m *Metrics) override() {
	if m != nil {
		m.Overrides.Inc()
	}
}
