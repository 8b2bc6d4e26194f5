package taxreward

import (
	"encoding/json"
	"testing"

	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/gconf"
	"github.com/iov-one/taxweave/store"
	"github.com/iov-one/taxweave/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	const withConfig = `{
		"conf": {
			"taxreward": {
				"metadata": {"schema": 1},
				"owner": "cond:test/seq/04",
				"collector": "cond:test/seq/04"
			}
		},
		"taxreward": [
			{
				"id": "main",
				"authority": "cond:test/seq/01",
				"reward_ticker": "TAX",
				"tax_vault": "cond:test/seq/02",
				"reward_vault": "cond:test/seq/03",
				"tax_rate_bps": 500,
				"reward_interval_seconds": 86400,
				"last_distribution": "2019-06-01T00:00:00Z"
			}
		]
	}`

	cases := map[string]struct {
		Genesis    string
		WantErr    *errors.Error
		WantStates []string
		WantConfig bool
	}{
		"states and configuration": {
			Genesis:    withConfig,
			WantStates: []string{"main"},
			WantConfig: true,
		},
		"nothing declared": {
			Genesis: `{}`,
		},
		"invalid tax rate": {
			Genesis: `{"taxreward": [{
				"id": "main",
				"authority": "cond:test/seq/01",
				"reward_ticker": "TAX",
				"tax_vault": "cond:test/seq/02",
				"reward_vault": "cond:test/seq/03",
				"tax_rate_bps": 1500,
				"reward_interval_seconds": 86400
			}]}`,
			WantErr: ErrInvalidTaxRate,
		},
		"duplicated id": {
			Genesis: `{"taxreward": [
				{"id": "main", "authority": "cond:test/seq/01", "reward_ticker": "TAX", "tax_vault": "cond:test/seq/02", "reward_vault": "cond:test/seq/03", "tax_rate_bps": 1, "reward_interval_seconds": 60},
				{"id": "main", "authority": "cond:test/seq/01", "reward_ticker": "TAX", "tax_vault": "cond:test/seq/02", "reward_vault": "cond:test/seq/03", "tax_rate_bps": 1, "reward_interval_seconds": 60}
			]}`,
			WantErr: errors.ErrDuplicate,
		},
		"last distribution before the epoch": {
			Genesis: `{"taxreward": [
				{"id": "main", "authority": "cond:test/seq/01", "reward_ticker": "TAX", "tax_vault": "cond:test/seq/02", "reward_vault": "cond:test/seq/03", "tax_rate_bps": 1, "reward_interval_seconds": 60, "last_distribution": -1}
			]}`,
			WantErr: errors.ErrInput,
		},
		"missing id": {
			Genesis: `{"taxreward": [
				{"authority": "cond:test/seq/01", "reward_ticker": "TAX", "tax_vault": "cond:test/seq/02", "reward_vault": "cond:test/seq/03", "tax_rate_bps": 1, "reward_interval_seconds": 60}
			]}`,
			WantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts weave.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.Genesis), &opts))

			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr != nil {
				return
			}

			k := NewKeeper(nil, nil)
			for _, id := range tc.WantStates {
				s, err := k.State(db, []byte(id))
				assert.Nil(t, err)
				assert.Equal(t, uint32(500), s.TaxRateBps)
				assert.Equal(t, weave.UnixTime(1559347200), s.LastDistribution)
			}

			var conf Configuration
			err = gconf.Load(db, BucketName, &conf)
			if tc.WantConfig {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, errors.ErrNotFound, err)
			}
		})
	}
}
