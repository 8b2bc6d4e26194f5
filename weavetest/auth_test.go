package weavetest

import (
	"context"
	"testing"
)

func TestAuth(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()
	auth := &Auth{Signer: a, Signers: nil}
	auth.Signers = append(auth.Signers, b)

	ctx := context.Background()
	if !auth.HasAddress(ctx, a.Address()) {
		t.Fatal("signer not authenticated")
	}
	if !auth.HasAddress(ctx, b.Address()) {
		t.Fatal("one of signers not authenticated")
	}
	if auth.HasAddress(ctx, c.Address()) {
		t.Fatal("unknown condition authenticated")
	}
	if n := len(auth.GetConditions(ctx)); n != 2 {
		t.Fatalf("want 2 conditions, got %d", n)
	}
}

func TestCtxAuth(t *testing.T) {
	a, b := NewCondition(), NewCondition()
	auth := &CtxAuth{Key: "test"}

	ctx := context.Background()
	if auth.HasAddress(ctx, a.Address()) {
		t.Fatal("empty context must not authenticate")
	}
	ctx = auth.SetConditions(ctx, a)
	if !auth.HasAddress(ctx, a.Address()) {
		t.Fatal("condition not authenticated")
	}
	if auth.HasAddress(ctx, b.Address()) {
		t.Fatal("unknown condition authenticated")
	}

	other := &CtxAuth{Key: "other"}
	if other.HasAddress(ctx, a.Address()) {
		t.Fatal("conditions must not leak between keys")
	}
}

func TestNewConditionUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		c := NewCondition()
		if err := c.Validate(); err != nil {
			t.Fatalf("invalid condition: %s", err)
		}
		if seen[c.String()] {
			t.Fatalf("duplicated condition: %s", c)
		}
		seen[c.String()] = true
	}
}
