package taxreward

import (
	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/coin"
	"github.com/iov-one/taxweave/errors"
)

var (
	_ weave.Msg = (*InitializeMsg)(nil)
	_ weave.Msg = (*CollectTaxMsg)(nil)
	_ weave.Msg = (*DistributeMsg)(nil)
	_ weave.Msg = (*ForceUpdateMsg)(nil)
	_ weave.Msg = (*AcquireRewardsMsg)(nil)
	_ weave.Msg = (*UpdateConfigurationMsg)(nil)
)

// InitializeMsg creates a new state. Authority must sign.
type InitializeMsg struct {
	Metadata              *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	StateID               []byte          `protobuf:"bytes,2,opt,name=state_id,json=stateId,proto3" json:"state_id,omitempty"`
	Authority             weave.Address   `protobuf:"bytes,3,opt,name=authority,proto3" json:"authority,omitempty"`
	RewardTicker          string          `protobuf:"bytes,4,opt,name=reward_ticker,json=rewardTicker,proto3" json:"reward_ticker,omitempty"`
	TaxVault              weave.Address   `protobuf:"bytes,5,opt,name=tax_vault,json=taxVault,proto3" json:"tax_vault,omitempty"`
	RewardVault           weave.Address   `protobuf:"bytes,6,opt,name=reward_vault,json=rewardVault,proto3" json:"reward_vault,omitempty"`
	TaxRateBps            uint32          `protobuf:"varint,7,opt,name=tax_rate_bps,json=taxRateBps,proto3" json:"tax_rate_bps,omitempty"`
	RewardIntervalSeconds uint32          `protobuf:"varint,8,opt,name=reward_interval_seconds,json=rewardIntervalSeconds,proto3" json:"reward_interval_seconds,omitempty"`
}

func (m *InitializeMsg) Reset()         { *m = InitializeMsg{} }
func (m *InitializeMsg) String() string { return proto.CompactTextString(m) }
func (*InitializeMsg) ProtoMessage()    {}

func (InitializeMsg) Path() string {
	return "taxreward/initialize"
}

func (m *InitializeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "StateID", validateStateID(m.StateID))
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	errs = errors.AppendField(errs, "RewardTicker", coin.NewCoin(0, m.RewardTicker).Validate())
	errs = errors.AppendField(errs, "TaxVault", m.TaxVault.Validate())
	errs = errors.AppendField(errs, "RewardVault", m.RewardVault.Validate())
	errs = errors.Append(errs, m.Rate().Validate())
	return errs
}

// Rate returns the policy parameters declared by this message.
func (m *InitializeMsg) Rate() RateConfig {
	return RateConfig{
		TaxRateBps:            m.TaxRateBps,
		RewardIntervalSeconds: m.RewardIntervalSeconds,
	}
}

// CollectTaxMsg collects the tax of a transfer. Payer must sign.
type CollectTaxMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	StateID  []byte          `protobuf:"bytes,2,opt,name=state_id,json=stateId,proto3" json:"state_id,omitempty"`
	Payer    weave.Address   `protobuf:"bytes,3,opt,name=payer,proto3" json:"payer,omitempty"`
	// Amount is the gross transferred amount of the reward token.
	Amount uint64 `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// UseBalance taxes the whole payer balance. Amount must be zero.
	UseBalance bool `protobuf:"varint,5,opt,name=use_balance,json=useBalance,proto3" json:"use_balance,omitempty"`
}

func (m *CollectTaxMsg) Reset()         { *m = CollectTaxMsg{} }
func (m *CollectTaxMsg) String() string { return proto.CompactTextString(m) }
func (*CollectTaxMsg) ProtoMessage()    {}

func (CollectTaxMsg) Path() string {
	return "taxreward/collect_tax"
}

func (m *CollectTaxMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "StateID", validateStateID(m.StateID))
	errs = errors.AppendField(errs, "Payer", m.Payer.Validate())
	if m.UseBalance && m.Amount != 0 {
		errs = errors.AppendField(errs, "Amount",
			errors.Wrap(errors.ErrInput, "amount must be empty when taxing the balance"))
	}
	return errs
}

// DistributeMsg pays a single holder its share of the reward vault. Anyone
// can submit it.
type DistributeMsg struct {
	Metadata  *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	StateID   []byte          `protobuf:"bytes,2,opt,name=state_id,json=stateId,proto3" json:"state_id,omitempty"`
	Recipient weave.Address   `protobuf:"bytes,3,opt,name=recipient,proto3" json:"recipient,omitempty"`
	Holding   uint64          `protobuf:"varint,4,opt,name=holding,proto3" json:"holding,omitempty"`
	// TotalSupply is the total eligible supply. A zero value is rejected
	// when the distribution is applied.
	TotalSupply uint64 `protobuf:"varint,5,opt,name=total_supply,json=totalSupply,proto3" json:"total_supply,omitempty"`
	// HoldingFromLedger reads the holding from the recipient wallet.
	// Holding must be zero.
	HoldingFromLedger bool `protobuf:"varint,6,opt,name=holding_from_ledger,json=holdingFromLedger,proto3" json:"holding_from_ledger,omitempty"`
}

func (m *DistributeMsg) Reset()         { *m = DistributeMsg{} }
func (m *DistributeMsg) String() string { return proto.CompactTextString(m) }
func (*DistributeMsg) ProtoMessage()    {}

func (DistributeMsg) Path() string {
	return "taxreward/distribute"
}

func (m *DistributeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "StateID", validateStateID(m.StateID))
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	if m.HoldingFromLedger && m.Holding != 0 {
		errs = errors.AppendField(errs, "Holding",
			errors.Wrap(errors.ErrInput, "holding must be empty when read from the ledger"))
	}
	return errs
}

// Request returns the distribution described by this message.
func (m *DistributeMsg) Request() DistributionRequest {
	return DistributionRequest{
		Recipient:         m.Recipient,
		Holding:           m.Holding,
		TotalSupply:       m.TotalSupply,
		HoldingFromLedger: m.HoldingFromLedger,
	}
}

// ForceUpdateMsg sets the time of the last distribution. State authority
// must sign. Any value is accepted, including one before the epoch.
type ForceUpdateMsg struct {
	Metadata         *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	StateID          []byte          `protobuf:"bytes,2,opt,name=state_id,json=stateId,proto3" json:"state_id,omitempty"`
	LastDistribution weave.UnixTime  `protobuf:"varint,3,opt,name=last_distribution,json=lastDistribution,proto3" json:"last_distribution"`
}

func (m *ForceUpdateMsg) Reset()         { *m = ForceUpdateMsg{} }
func (m *ForceUpdateMsg) String() string { return proto.CompactTextString(m) }
func (*ForceUpdateMsg) ProtoMessage()    {}

func (ForceUpdateMsg) Path() string {
	return "taxreward/force_update"
}

func (m *ForceUpdateMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "StateID", validateStateID(m.StateID))
	return errs
}

// AcquireRewardsMsg buys reward tokens into the reward vault. Buyer must
// sign.
type AcquireRewardsMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	StateID  []byte          `protobuf:"bytes,2,opt,name=state_id,json=stateId,proto3" json:"state_id,omitempty"`
	Buyer    weave.Address   `protobuf:"bytes,3,opt,name=buyer,proto3" json:"buyer,omitempty"`
	// Price is paid to the configured collector.
	Price *coin.Coin `protobuf:"bytes,4,opt,name=price,proto3" json:"price,omitempty"`
	// Amount of reward tokens minted into the reward vault.
	Amount uint64 `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *AcquireRewardsMsg) Reset()         { *m = AcquireRewardsMsg{} }
func (m *AcquireRewardsMsg) String() string { return proto.CompactTextString(m) }
func (*AcquireRewardsMsg) ProtoMessage()    {}

func (AcquireRewardsMsg) Path() string {
	return "taxreward/acquire_rewards"
}

func (m *AcquireRewardsMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "StateID", validateStateID(m.StateID))
	errs = errors.AppendField(errs, "Buyer", m.Buyer.Validate())
	switch {
	case coin.IsEmpty(m.Price):
		errs = errors.AppendField(errs, "Price", errors.ErrAmount)
	case !m.Price.IsPositive():
		errs = errors.AppendField(errs, "Price", errors.Wrap(errors.ErrAmount, "must be positive"))
	default:
		errs = errors.AppendField(errs, "Price", m.Price.Validate())
	}
	if m.Amount == 0 {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	return errs
}

// UpdateConfigurationMsg replaces non empty fields of the configuration.
// Configuration owner must sign.
type UpdateConfigurationMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *Configuration  `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func (UpdateConfigurationMsg) Path() string {
	return "taxreward/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Patch == nil {
		errs = errors.AppendField(errs, "Patch", errors.ErrEmpty)
	}
	return errs
}
