package cash

import (
	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/coin"
	"github.com/iov-one/taxweave/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
type GenesisAccount struct {
	Address weave.Address `json:"address"`
	Coins   []coin.Coin   `json:"coins"`
}

// Initializer fulfils the weave.Initializer interface to load wallets from
// the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis and save it to
// the database.
func (Initializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewWalletBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d address", i)
		}
		var coins coin.Coins
		for _, c := range acct.Coins {
			var err error
			if coins, err = coins.Add(c); err != nil {
				return errors.Wrapf(err, "account %d coins", i)
			}
		}
		w := &Wallet{Metadata: &weave.Metadata{Schema: 1}, Coins: coins}
		if err := bucket.Put(kv, acct.Address, w); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
