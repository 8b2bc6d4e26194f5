package weave_test

import (
	"encoding/json"
	"fmt"
	"testing"

	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := weave.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
	})

	Convey("test hexademical condition printing", t, func() {
		cond := weave.NewCondition("12", "32", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	vault := weave.NewCondition("taxrwd", "vault", []byte("reward"))

	bech, err := vault.Address().Bech32("tax")
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr weave.Address
	}{
		"default decoding": {
			json:     `"6865782d61646472"`,
			wantAddr: weave.Address("hex-addr"),
		},
		"hex decoding": {
			json:     `"hex:6865782d61646472"`,
			wantAddr: weave.Address("hex-addr"),
		},
		"cond decoding": {
			json:     `"cond:taxrwd/vault/726577617264"`,
			wantAddr: vault.Address(),
		},
		"bech32 decoding": {
			json:     fmt.Sprintf("%q", "bech32:"+bech),
			wantAddr: vault.Address(),
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a weave.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestConditionParse(t *testing.T) {
	cond := weave.NewCondition("taxrwd", "vault", []byte{0xCA, 0xFE})
	ext, typ, data, err := cond.Parse()
	require.NoError(t, err)
	assert.Equal(t, "taxrwd", ext)
	assert.Equal(t, "vault", typ)
	assert.Equal(t, []byte{0xCA, 0xFE}, data)
	assert.Equal(t, "taxrwd/vault/CAFE", cond.String())

	_, _, _, err = weave.Condition("no slashes").Parse()
	assert.True(t, errors.ErrInput.Is(err))
}

func TestAddressValidate(t *testing.T) {
	assert.NoError(t, weave.NewAddress([]byte("anything")).Validate())
	assert.True(t, errors.ErrEmpty.Is(weave.Address(nil).Validate()))
	assert.True(t, errors.ErrInput.Is(weave.Address("short").Validate()))

	addr := weave.NewAddress([]byte("anything"))
	other := append(weave.Address(nil), addr...)
	assert.True(t, addr.Equals(other))
	other[0]++
	assert.False(t, addr.Equals(other))
}

func TestConditionJSON(t *testing.T) {
	vault := weave.NewCondition("taxrwd", "vault", []byte{0x01, 0x02})
	raw, err := json.Marshal(vault)
	require.NoError(t, err)
	assert.Equal(t, `"taxrwd/vault/0102"`, string(raw))

	var got weave.Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, vault, got)

	raw, err = json.Marshal(weave.Condition(nil))
	require.NoError(t, err)
	assert.Equal(t, `""`, string(raw))
}
