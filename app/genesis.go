package app

import (
	"encoding/json"
	"io/ioutil"

	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
)

// Genesis file format. Every extension reads its own key of the
// application state.
type Genesis struct {
	ChainID  string        `json:"chain_id"`
	AppState weave.Options `json:"app_state"`
}

// Validate returns an error if this genesis cannot initialize a chain.
func (g Genesis) Validate() error {
	if !weave.IsValidChainID(g.ChainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", g.ChainID)
	}
	return nil
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "read genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshal genesis file: %s", err)
	}
	return gen, nil
}

const chainIDKey = "_wv:chainID"

// loadChainID returns the chain id stored if any.
func loadChainID(db weave.ReadOnlyKVStore) (string, error) {
	v, err := db.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the store. It fails if the chain id was
// already set.
func saveChainID(db weave.KVStore, chainID string) error {
	k := []byte(chainIDKey)
	switch ok, err := db.Has(k); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case ok:
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	return db.Set(k, []byte(chainID))
}
