package taxreward

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/coin"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/orm"
)

const (
	// BucketName is where all states are stored.
	BucketName = "taxreward"

	maxStateIDLength = 64
)

// State is the record of a single deployed policy. Everything but the
// last distribution time is set on creation and never changes.
type State struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Authority may force an update of the distribution schedule.
	Authority weave.Address `protobuf:"bytes,2,opt,name=authority,proto3" json:"authority,omitempty"`
	// RewardTicker is the ticker of the taxed and rewarded token.
	RewardTicker string        `protobuf:"bytes,3,opt,name=reward_ticker,json=rewardTicker,proto3" json:"reward_ticker,omitempty"`
	TaxVault     weave.Address `protobuf:"bytes,4,opt,name=tax_vault,json=taxVault,proto3" json:"tax_vault,omitempty"`
	RewardVault  weave.Address `protobuf:"bytes,5,opt,name=reward_vault,json=rewardVault,proto3" json:"reward_vault,omitempty"`
	// TaxRateBps is the flat tax rate in basis points.
	TaxRateBps uint32 `protobuf:"varint,6,opt,name=tax_rate_bps,json=taxRateBps,proto3" json:"tax_rate_bps,omitempty"`
	// RewardIntervalSeconds is the minimal time between two
	// distributions.
	RewardIntervalSeconds uint32         `protobuf:"varint,7,opt,name=reward_interval_seconds,json=rewardIntervalSeconds,proto3" json:"reward_interval_seconds,omitempty"`
	LastDistribution      weave.UnixTime `protobuf:"varint,8,opt,name=last_distribution,json=lastDistribution,proto3" json:"last_distribution"`
}

var _ orm.Model = (*State)(nil)

func (m *State) Reset()         { *m = State{} }
func (m *State) String() string { return proto.CompactTextString(m) }
func (*State) ProtoMessage()    {}

// NewState validates the policy parameters and returns a state that
// considers now the time of the last distribution. The first distribution
// is possible a full interval after creation.
func NewState(
	authority weave.Address,
	rewardTicker string,
	taxVault, rewardVault weave.Address,
	rate RateConfig,
	now weave.UnixTime,
) (*State, error) {
	if err := rate.Validate(); err != nil {
		return nil, err
	}
	s := &State{
		Metadata:              &weave.Metadata{Schema: 1},
		Authority:             authority,
		RewardTicker:          rewardTicker,
		TaxVault:              taxVault,
		RewardVault:           rewardVault,
		TaxRateBps:            rate.TaxRateBps,
		RewardIntervalSeconds: rate.RewardIntervalSeconds,
		LastDistribution:      now,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Rate returns the policy parameters.
func (m *State) Rate() RateConfig {
	return RateConfig{
		TaxRateBps:            m.TaxRateBps,
		RewardIntervalSeconds: m.RewardIntervalSeconds,
	}
}

// Validate ensures the state is consistent.
func (m *State) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	errs = errors.AppendField(errs, "RewardTicker", coin.NewCoin(0, m.RewardTicker).Validate())
	errs = errors.AppendField(errs, "TaxVault", m.TaxVault.Validate())
	errs = errors.AppendField(errs, "RewardVault", m.RewardVault.Validate())
	errs = errors.Append(errs, m.Rate().Validate())
	return errs
}

// NewStateBucket returns the bucket keeping all states by their ID.
func NewStateBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &State{})
}

// validateStateID ensures the ID can be used as a state key.
func validateStateID(id []byte) error {
	switch {
	case len(id) == 0:
		return errors.Wrap(errors.ErrEmpty, "state id")
	case len(id) > maxStateIDLength:
		return errors.Wrapf(errors.ErrInput, "state id longer than %d", maxStateIDLength)
	}
	return nil
}

// Configuration is the global configuration of this extension, stored with
// gconf.
type Configuration struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owner may update this configuration.
	Owner weave.Address `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	// Collector receives the price paid for acquired rewards.
	Collector weave.Address `protobuf:"bytes,3,opt,name=collector,proto3" json:"collector,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// GetOwner implements gconf.OwnedConfig.
func (m *Configuration) GetOwner() weave.Address {
	return m.Owner
}

func (m *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Collector", m.Collector.Validate())
	return errs
}
