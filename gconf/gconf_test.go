package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/store"
	"github.com/iov-one/taxweave/weavetest"
	"github.com/iov-one/taxweave/weavetest/assert"
)

type testConfig struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
	Limit    int64           `protobuf:"varint,3,opt,name=limit,proto3" json:"limit,omitempty"`
}

func (m *testConfig) Reset()         { *m = testConfig{} }
func (m *testConfig) String() string { return proto.CompactTextString(m) }
func (*testConfig) ProtoMessage()    {}

func (m *testConfig) GetOwner() weave.Address { return m.Owner }

func (m *testConfig) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return err
	}
	if m.Limit < 0 {
		return errors.Wrap(errors.ErrInput, "negative limit")
	}
	return m.Owner.Validate()
}

type updateMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Patch    *testConfig     `protobuf:"bytes,2,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *updateMsg) Reset()         { *m = updateMsg{} }
func (m *updateMsg) String() string { return proto.CompactTextString(m) }
func (*updateMsg) ProtoMessage()    {}
func (*updateMsg) Path() string     { return "test/update_configuration" }
func (m *updateMsg) Validate() error {
	if m.Patch != nil && m.Patch.Limit < 0 {
		return errors.Wrap(errors.ErrMsg, "negative limit")
	}
	return m.Metadata.Validate()
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()
	owner := weavetest.NewCondition().Address()

	var got testConfig
	assert.IsErr(t, errors.ErrNotFound, Load(db, "test", &got))

	assert.IsErr(t, errors.ErrEmpty, Save(db, "test", &testConfig{Metadata: &weave.Metadata{Schema: 1}}))

	conf := &testConfig{Metadata: &weave.Metadata{Schema: 1}, Owner: owner, Limit: 7}
	assert.Nil(t, Save(db, "test", conf))
	assert.Nil(t, Load(db, "test", &got))
	assert.Equal(t, conf, &got)

	// Other packages do not see this configuration.
	assert.IsErr(t, errors.ErrNotFound, Load(db, "other", &got))
}

func TestInitConfig(t *testing.T) {
	owner := weavetest.NewCondition().Address()
	raw := `{"conf": {"test": {"metadata": {"schema": 1}, "owner": "` + owner.String() + `", "limit": 3}}}`
	var opts weave.Options
	assert.Nil(t, json.Unmarshal([]byte(raw), &opts))

	db := store.MemStore()
	assert.Nil(t, InitConfig(db, opts, "test", &testConfig{}))

	var got testConfig
	assert.Nil(t, Load(db, "test", &got))
	assert.Equal(t, int64(3), got.Limit)
	assert.Equal(t, owner, got.Owner)

	assert.IsErr(t, errors.ErrNotFound, InitConfig(db, opts, "missing", &testConfig{}))
}

func TestUpdateConfigurationHandler(t *testing.T) {
	owner := weavetest.NewCondition()
	newOwner := weavetest.NewCondition().Address()

	cases := map[string]struct {
		Signer    weave.Condition
		Msg       weave.Msg
		WantErr   *errors.Error
		WantLimit int64
		WantOwner weave.Address
	}{
		"owner patches limit": {
			Signer: owner,
			Msg: &updateMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Patch:    &testConfig{Limit: 42},
			},
			WantLimit: 42,
			WantOwner: owner.Address(),
		},
		"owner transfers ownership": {
			Signer: owner,
			Msg: &updateMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Patch:    &testConfig{Owner: newOwner},
			},
			WantLimit: 5,
			WantOwner: newOwner,
		},
		"not the owner": {
			Signer: weavetest.NewCondition(),
			Msg: &updateMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Patch:    &testConfig{Limit: 42},
			},
			WantErr:   errors.ErrUnauthorized,
			WantLimit: 5,
			WantOwner: owner.Address(),
		},
		"missing patch": {
			Signer:    owner,
			Msg:       &updateMsg{Metadata: &weave.Metadata{Schema: 1}},
			WantErr:   errors.ErrState,
			WantLimit: 5,
			WantOwner: owner.Address(),
		},
		"invalid message": {
			Signer: owner,
			Msg: &updateMsg{
				Metadata: &weave.Metadata{Schema: 1},
				Patch:    &testConfig{Limit: -1},
			},
			WantErr:   errors.ErrMsg,
			WantLimit: 5,
			WantOwner: owner.Address(),
		},
		"message without patch field": {
			Signer:    owner,
			Msg:       &weavetest.Msg{RoutePath: "test/update_configuration"},
			WantErr:   errors.ErrInput,
			WantLimit: 5,
			WantOwner: owner.Address(),
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			initial := &testConfig{Metadata: &weave.Metadata{Schema: 1}, Owner: owner.Address(), Limit: 5}
			assert.Nil(t, Save(db, "test", initial))

			h := NewUpdateConfigurationHandler("test", &testConfig{}, &weavetest.Auth{Signer: tc.Signer})
			_, err := h.Deliver(context.Background(), db, &weavetest.Tx{Msg: tc.Msg})
			assert.IsErr(t, tc.WantErr, err)

			var got testConfig
			assert.Nil(t, Load(db, "test", &got))
			assert.Equal(t, tc.WantLimit, got.Limit)
			assert.Equal(t, tc.WantOwner, got.Owner)
		})
	}
}
