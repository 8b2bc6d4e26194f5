package taxreward

import (
	"strconv"

	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/gconf"
	"github.com/iov-one/taxweave/x"
)

// RegisterRoutes registers handlers for all messages of this extension.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, k Keeper) {
	r.Handle(&InitializeMsg{}, &InitializeHandler{auth: auth, keeper: k})
	r.Handle(&CollectTaxMsg{}, &CollectTaxHandler{auth: auth, keeper: k})
	r.Handle(&DistributeMsg{}, &DistributeHandler{keeper: k})
	r.Handle(&ForceUpdateMsg{}, &ForceUpdateHandler{auth: auth, keeper: k})
	r.Handle(&AcquireRewardsMsg{}, &AcquireRewardsHandler{auth: auth, keeper: k})
	r.Handle(&UpdateConfigurationMsg{}, gconf.NewUpdateConfigurationHandler(BucketName, &Configuration{}, auth))
}

// RegisterQuery registers the state bucket as "/taxrewards".
func RegisterQuery(qr weave.QueryRouter) {
	NewStateBucket().Register("taxrewards", qr)
}

// InitializeHandler creates states.
type InitializeHandler struct {
	auth   x.Authenticator
	keeper Keeper
}

var _ weave.Handler = (*InitializeHandler)(nil)

func (h *InitializeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *InitializeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, s, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.keeper.Create(ctx, db, msg.StateID, s); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: msg.StateID}, nil
}

func (h *InitializeHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*InitializeMsg, *State, error) {
	var msg InitializeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Authority, "authority"); err != nil {
		return nil, nil, err
	}
	now, err := weave.Now(ctx)
	if err != nil {
		return nil, nil, err
	}
	s, err := NewState(msg.Authority, msg.RewardTicker, msg.TaxVault, msg.RewardVault, msg.Rate(), now)
	if err != nil {
		return nil, nil, err
	}
	return &msg, s, nil
}

// CollectTaxHandler collects the tax of a transfer.
type CollectTaxHandler struct {
	auth   x.Authenticator
	keeper Keeper
}

var _ weave.Handler = (*CollectTaxHandler)(nil)

func (h *CollectTaxHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *CollectTaxHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	tax, err := h.keeper.CollectTax(ctx, db, msg.StateID, TaxRequest{
		Payer:      msg.Payer,
		Gross:      msg.Amount,
		UseBalance: msg.UseBalance,
	})
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: amountData(tax)}, nil
}

func (h *CollectTaxHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*CollectTaxMsg, error) {
	var msg CollectTaxMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Payer, "payer"); err != nil {
		return nil, err
	}
	if _, err := h.keeper.State(db, msg.StateID); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DistributeHandler distributes rewards. No signature is required.
type DistributeHandler struct {
	keeper Keeper
}

var _ weave.Handler = (*DistributeHandler)(nil)

func (h *DistributeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *DistributeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	payout, err := h.keeper.DistributeRewards(ctx, db, msg.StateID, msg.Request())
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: amountData(payout)}, nil
}

func (h *DistributeHandler) validate(db weave.KVStore, tx weave.Tx) (*DistributeMsg, error) {
	var msg DistributeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := h.keeper.State(db, msg.StateID); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ForceUpdateHandler overrides the distribution schedule.
type ForceUpdateHandler struct {
	auth   x.Authenticator
	keeper Keeper
}

var _ weave.Handler = (*ForceUpdateHandler)(nil)

func (h *ForceUpdateHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	s, err := h.keeper.State(db, msg.StateID)
	if err != nil {
		return nil, err
	}
	if err := x.RequireAddress(ctx, h.auth, s.Authority, "authority"); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *ForceUpdateHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	if err := h.keeper.ForceUpdateLastDistribution(ctx, db, h.auth, msg.StateID, msg.LastDistribution); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h *ForceUpdateHandler) validate(tx weave.Tx) (*ForceUpdateMsg, error) {
	var msg ForceUpdateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

// AcquireRewardsHandler funds reward vaults.
type AcquireRewardsHandler struct {
	auth   x.Authenticator
	keeper Keeper
}

var _ weave.Handler = (*AcquireRewardsHandler)(nil)

func (h *AcquireRewardsHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{}, nil
}

func (h *AcquireRewardsHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.keeper.AcquireRewards(ctx, db, msg.StateID, msg.Buyer, *msg.Price, msg.Amount); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: amountData(msg.Amount)}, nil
}

func (h *AcquireRewardsHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*AcquireRewardsMsg, error) {
	var msg AcquireRewardsMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Buyer, "buyer"); err != nil {
		return nil, err
	}
	s, err := h.keeper.State(db, msg.StateID)
	if err != nil {
		return nil, err
	}
	if msg.Price.Ticker == s.RewardTicker {
		return nil, errors.Wrapf(errors.ErrCurrency, "price must not be paid in %s", s.RewardTicker)
	}
	return &msg, nil
}

// amountData is the result data of operations returning an amount.
func amountData(n uint64) []byte {
	return []byte(strconv.FormatUint(n, 10))
}
