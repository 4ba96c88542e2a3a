// ABOUTME: Tests for the in-memory mock store
// ABOUTME: Verifies the mock honors the same Store contract as SQLite

package store

import (
	"context"
	"errors"
	"testing"
)

func TestMockStore_GetOrCreateAndUpdate(t *testing.T) {
	m := NewMockStore()
	ctx := context.Background()

	uc, err := m.GetOrCreateContext(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetOrCreateContext failed: %v", err)
	}
	if uc.Flow != DefaultFlow || uc.Step != DefaultStep {
		t.Errorf("defaults = (%s, %s), want (%s, %s)", uc.Flow, uc.Step, DefaultFlow, DefaultStep)
	}

	updated, err := m.UpdateContext(ctx, "user-1", ContextUpdate{
		Flow: strPtr("SUPPORT"),
		Step: strPtr("AWAITING_ISSUE"),
	})
	if err != nil {
		t.Fatalf("UpdateContext failed: %v", err)
	}
	if updated.Flow != "SUPPORT" || updated.Step != "AWAITING_ISSUE" {
		t.Errorf("updated = (%s, %s), want (SUPPORT, AWAITING_ISSUE)", updated.Flow, updated.Step)
	}
}

func TestMockStore_UpdateNotFound(t *testing.T) {
	m := NewMockStore()

	_, err := m.UpdateContext(context.Background(), "nobody", ContextUpdate{Step: strPtr("INIT")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMockStore_ReturnsCopies(t *testing.T) {
	m := NewMockStore()
	ctx := context.Background()

	uc, err := m.GetOrCreateContext(ctx, "user-2")
	if err != nil {
		t.Fatalf("GetOrCreateContext failed: %v", err)
	}

	// Mutating the returned context must not affect the stored record
	uc.Flow = "SUPPORT"
	uc.Variables["leak"] = true

	again, err := m.GetOrCreateContext(ctx, "user-2")
	if err != nil {
		t.Fatalf("GetOrCreateContext failed: %v", err)
	}
	if again.Flow != DefaultFlow {
		t.Errorf("stored flow mutated externally: %s", again.Flow)
	}
	if _, ok := again.Variables["leak"]; ok {
		t.Error("stored variables mutated externally")
	}
}

func TestMockStore_ResetContexts(t *testing.T) {
	m := NewMockStore()
	ctx := context.Background()

	if _, err := m.GetOrCreateContext(ctx, "user-3"); err != nil {
		t.Fatalf("GetOrCreateContext failed: %v", err)
	}
	if err := m.ResetContexts(ctx); err != nil {
		t.Fatalf("ResetContexts failed: %v", err)
	}

	contexts, err := m.ListContexts(ctx)
	if err != nil {
		t.Fatalf("ListContexts failed: %v", err)
	}
	if len(contexts) != 0 {
		t.Errorf("got %d contexts after reset, want 0", len(contexts))
	}
}
