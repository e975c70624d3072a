package driving

import (
	"context"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

// Selection describes the current selection state of a workspace.
type Selection struct {
	IDs         []string `json:"ids"`
	AllSelected bool     `json:"all_selected"`
}

// WorkspaceService owns the per-bot document registry cache and its
// selection set. The registry is replaced wholesale on every load so the
// caller never sees a mix of stale and fresh documents; every replace
// resets the selection.
type WorkspaceService interface {
	// Load fetches the bot's documents from the backend and replaces the
	// cached registry. Order is preserved as returned by the backend.
	Load(ctx context.Context, customerID, botID string) ([]*domain.Document, error)

	// Refresh re-invokes the most recent load for the bot.
	Refresh(ctx context.Context, customerID, botID string) error

	// Documents returns the cached registry without touching the backend.
	Documents(customerID, botID string) []*domain.Document

	// ToggleSelect flips the selection state of one document.
	// Returns domain.ErrNotFound if the id is not in the cached registry.
	ToggleSelect(customerID, botID, documentID string) error

	// SelectAll selects every document in the cached registry.
	SelectAll(customerID, botID string)

	// ClearSelection empties the selection.
	ClearSelection(customerID, botID string)

	// Selection returns the selected ids and whether the whole non-empty
	// registry is selected.
	Selection(customerID, botID string) Selection
}
