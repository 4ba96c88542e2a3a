// ABOUTME: Store interface and data types for flow-gateway persistence
// ABOUTME: Defines UserContext and the Store interface for conversation state

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// DefaultFlow and DefaultStep are the state seeded for a user's first message.
const (
	DefaultFlow = "WELCOME"
	DefaultStep = "INIT"
)

// UserContext represents the persisted conversation state for one user.
// UserID is the stable external identifier (a phone number for the
// WhatsApp-style provider) and is unique per record.
type UserContext struct {
	ID              string
	UserID          string
	Flow            string
	Step            string
	Variables       map[string]any
	LastInteraction time.Time
}

// ContextUpdate describes a partial update to a UserContext. Nil fields are
// left unchanged; a non-nil Variables map (including an empty one) replaces
// the stored variables wholesale. LastInteraction is always stamped by the
// store on update.
type ContextUpdate struct {
	Flow      *string
	Step      *string
	Variables map[string]any
}

// Store defines the interface for conversation context persistence
type Store interface {
	// GetOrCreateContext returns the context for userID, creating the default
	// (WELCOME/INIT, empty variables) if none exists. Creation is atomic:
	// concurrent first messages for the same userID must not produce
	// duplicate records.
	GetOrCreateContext(ctx context.Context, userID string) (*UserContext, error)

	// UpdateContext merges only the supplied fields into the stored record,
	// stamps LastInteraction, and returns the resulting full record.
	// Returns ErrNotFound if no record exists for userID.
	UpdateContext(ctx context.Context, userID string, update ContextUpdate) (*UserContext, error)

	// ListContexts returns a snapshot of every stored context.
	// No ordering is guaranteed.
	ListContexts(ctx context.Context) ([]*UserContext, error)

	// ResetContexts deletes every context. Irreversible; subsequent
	// GetOrCreateContext calls re-seed defaults.
	ResetContexts(ctx context.Context) error

	// Close releases store resources
	Close() error
}
