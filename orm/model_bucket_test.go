package orm

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/store"
	"github.com/iov-one/taxweave/weavetest/assert"
)

type counter struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Count    int64           `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *counter) Reset()         { *m = counter{} }
func (m *counter) String() string { return proto.CompactTextString(m) }
func (*counter) ProtoMessage()    {}

func (m *counter) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Count < 0 {
		return errors.Wrap(errors.ErrModel, "negative count")
	}
	return nil
}

type other struct {
	Name string `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *other) Reset()         { *m = other{} }
func (m *other) String() string { return proto.CompactTextString(m) }
func (*other) ProtoMessage()    {}
func (*other) Validate() error  { return nil }

func TestModelBucket(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	err := b.Put(db, []byte("c1"), &counter{Metadata: &weave.Metadata{Schema: 1}, Count: 1})
	assert.Nil(t, err)

	var c1 counter
	assert.Nil(t, b.One(db, []byte("c1"), &c1))
	assert.Equal(t, int64(1), c1.Count)

	ok, err := b.Has(db, []byte("c1"))
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	assert.Nil(t, b.Delete(db, []byte("c1")))
	if err := b.Delete(db, []byte("unknown")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error when deleting unexisting instance: %s", err)
	}
	if err := b.One(db, []byte("c1"), &c1); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error for an unknown model get: %s", err)
	}
}

func TestModelBucketPutRejects(t *testing.T) {
	cases := map[string]struct {
		Key     []byte
		Model   Model
		WantErr *errors.Error
	}{
		"valid": {
			Key:   []byte("a"),
			Model: &counter{Metadata: &weave.Metadata{Schema: 1}, Count: 4},
		},
		"missing metadata": {
			Key:     []byte("a"),
			Model:   &counter{Count: 4},
			WantErr: errors.ErrMetadata,
		},
		"invalid model": {
			Key:     []byte("a"),
			Model:   &counter{Metadata: &weave.Metadata{Schema: 1}, Count: -1},
			WantErr: errors.ErrModel,
		},
		"empty key": {
			Model:   &counter{Metadata: &weave.Metadata{Schema: 1}},
			WantErr: errors.ErrEmpty,
		},
		"wrong type": {
			Key:     []byte("a"),
			Model:   &other{Name: "x"},
			WantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			b := NewModelBucket("cnts", &counter{})
			if err := b.Put(db, tc.Key, tc.Model); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestModelBucketOneWrongType(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})
	assert.Nil(t, b.Put(db, []byte("a"), &counter{Metadata: &weave.Metadata{Schema: 1}}))

	var o other
	if err := b.One(db, []byte("a"), &o); !errors.ErrType.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})
	for _, k := range []string{"aa", "ab", "b"} {
		assert.Nil(t, b.Put(db, []byte(k), &counter{Metadata: &weave.Metadata{Schema: 1}, Count: 1}))
	}
	// Data from another bucket must never leak into the query result.
	assert.Nil(t, NewModelBucket("other", &other{}).Put(db, []byte("aa"), &other{Name: "x"}))

	qr := weave.NewQueryRouter()
	b.Register("", qr)
	h := qr.Handler("/cnts")
	if h == nil {
		t.Fatal("bucket not registered")
	}

	res, err := h.Query(db, weave.KeyQueryMod, []byte("ab"))
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res))
	assert.Equal(t, []byte("cnts:ab"), res[0].Key)

	res, err = h.Query(db, weave.KeyQueryMod, []byte("missing"))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res))

	res, err = h.Query(db, weave.PrefixQueryMod, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))

	if _, err := h.Query(db, "range", nil); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestPrefixEnd(t *testing.T) {
	cases := map[string]struct {
		Prefix []byte
		Want   []byte
	}{
		"simple":       {Prefix: []byte("ab"), Want: []byte("ac")},
		"carry":        {Prefix: []byte{0x01, 0xff}, Want: []byte{0x02}},
		"all max":      {Prefix: []byte{0xff, 0xff}, Want: nil},
		"empty prefix": {Prefix: nil, Want: nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.Want, prefixEnd(tc.Prefix))
		})
	}
}
