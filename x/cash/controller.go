package cash

import (
	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/coin"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/orm"
)

// Controller is the ledger interface other extensions depend on.
type Controller interface {
	// Balance returns all coins held by given address. An unknown
	// address holds nothing.
	Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coins, error)

	// MoveCoins moves the given amount from src to dest. It fails with
	// ErrEmpty if src holds nothing and with ErrInsufficientAmount if
	// src does not hold the amount.
	MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Coin) error

	// CoinMint creates the given amount of coins in the dest wallet.
	CoinMint(db weave.KVStore, dest weave.Address, amount coin.Coin) error
}

// BaseController is the wallet bucket backed Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given wallet bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) Balance(db weave.ReadOnlyKVStore, addr weave.Address) (coin.Coins, error) {
	w, err := c.load(db, addr)
	if err != nil {
		return nil, err
	}
	return coin.Coins(w.Coins), nil
}

func (c BaseController) MoveCoins(db weave.KVStore, src, dest weave.Address, amount coin.Coin) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if len(sender.Coins) == 0 {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	remaining, err := coin.Coins(sender.Coins).Subtract(amount)
	if err != nil {
		return errors.Wrapf(err, "account %s", src)
	}

	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	received, err := coin.Coins(recipient.Coins).Add(amount)
	if err != nil {
		return errors.Wrapf(err, "account %s", dest)
	}

	// Both wallets are validated before any write, so a failure cannot
	// leave a single side updated.
	sender.Coins = remaining
	recipient.Coins = received
	if err := sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save sender")
	}
	if err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save recipient")
	}
	return nil
}

func (c BaseController) CoinMint(db weave.KVStore, dest weave.Address, amount coin.Coin) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	w, err := c.load(db, dest)
	if err != nil {
		return err
	}
	coins, err := coin.Coins(w.Coins).Add(amount)
	if err != nil {
		return errors.Wrapf(err, "account %s", dest)
	}
	w.Coins = coins
	if err := c.bucket.Put(db, dest, w); err != nil {
		return errors.Wrap(err, "save wallet")
	}
	return nil
}

// load returns the wallet of given address or an empty one.
func (c BaseController) load(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &weave.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrapf(err, "load wallet %s", addr)
	}
}

func validAmount(amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	return nil
}
