package utils

import (
	"bytes"
	"context"
	"strings"
	"testing"

	weave "github.com/iov-one/taxweave"
	"github.com/iov-one/taxweave/errors"
	"github.com/iov-one/taxweave/store"
	"github.com/iov-one/taxweave/weavetest"
	"github.com/iov-one/taxweave/weavetest/assert"
	"github.com/jonboulle/clockwork"
	"github.com/tendermint/tendermint/libs/log"
)

// writeHandler stores a key and then returns the configured error.
type writeHandler struct {
	key []byte
	err error
}

func (h writeHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if err := db.Set(h.key, []byte("check")); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &weave.CheckResult{Log: "checked"}, nil
}

func (h writeHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	if err := db.Set(h.key, []byte("deliver")); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &weave.DeliverResult{Log: "delivered"}, nil
}

func TestSavepoint(t *testing.T) {
	cases := map[string]struct {
		Savepoint  Savepoint
		HandlerErr error
		Check      bool
		WantStored bool
	}{
		"deliver success is written": {
			Savepoint:  NewSavepoint().OnDeliver(),
			WantStored: true,
		},
		"deliver failure is dropped": {
			Savepoint:  NewSavepoint().OnDeliver(),
			HandlerErr: errors.ErrAmount,
		},
		"check failure is dropped": {
			Savepoint:  NewSavepoint().OnCheck(),
			HandlerErr: errors.ErrAmount,
			Check:      true,
		},
		"disabled savepoint keeps partial write": {
			Savepoint:  NewSavepoint().OnCheck(),
			HandlerErr: errors.ErrAmount,
			WantStored: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			key := []byte("key")
			h := weavetest.Decorate(writeHandler{key: key, err: tc.HandlerErr}, tc.Savepoint)

			var err error
			if tc.Check {
				_, err = h.Check(context.Background(), db, &weavetest.Tx{})
			} else {
				_, err = h.Deliver(context.Background(), db, &weavetest.Tx{})
			}
			assert.IsErr(t, tc.HandlerErr, err)

			ok, err := db.Has(key)
			assert.Nil(t, err)
			assert.Equal(t, tc.WantStored, ok)
		})
	}
}

func TestAtomic(t *testing.T) {
	db := store.MemStore()
	err := Atomic(db, func(db weave.KVStore) error {
		if err := db.Set([]byte("a"), []byte("1")); err != nil {
			return err
		}
		return errors.ErrState
	})
	assert.IsErr(t, errors.ErrState, err)
	v, err := db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Nil(t, v)

	err = Atomic(db, func(db weave.KVStore) error {
		return db.Set([]byte("a"), []byte("2"))
	})
	assert.Nil(t, err)
	v, err = db.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("2"), v)
}

type panicHandler struct{}

func (panicHandler) Check(weave.Context, weave.KVStore, weave.Tx) (*weave.CheckResult, error) {
	panic("check boom")
}

func (panicHandler) Deliver(weave.Context, weave.KVStore, weave.Tx) (*weave.DeliverResult, error) {
	panic("deliver boom")
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	ctx := weave.WithLogger(context.Background(), log.NewTMLogger(&buf))
	h := weavetest.Decorate(panicHandler{}, NewRecovery())

	_, err := h.Check(ctx, store.MemStore(), &weavetest.Tx{})
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = h.Deliver(ctx, store.MemStore(), &weavetest.Tx{})
	assert.IsErr(t, errors.ErrPanic, err)

	if !strings.Contains(buf.String(), "deliver boom") {
		t.Fatalf("panic not logged: %s", buf.String())
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	ctx := weave.WithLogger(context.Background(), log.NewTMLogger(&buf))
	clock := clockwork.NewFakeClock()

	inner := &weavetest.Handler{DeliverErr: errors.ErrAmount.New("bad amount")}
	h := weavetest.Decorate(inner, NewLogging(clock))
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/path"}}

	_, err := h.Deliver(ctx, store.MemStore(), tx)
	assert.IsErr(t, errors.ErrAmount, err)
	assert.Equal(t, 1, inner.DeliverCallCount())

	out := buf.String()
	for _, want := range []string{"test/path", "bad amount", "duration=0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("%q not logged: %s", want, out)
		}
	}
}
