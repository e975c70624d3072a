package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driven"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driving"
)

// Ensure Workspaces implements WorkspaceService
var _ driving.WorkspaceService = (*Workspaces)(nil)

// workspaceKey scopes a workspace to one customer and one bot. Including
// the customer id means a bot id from another tenant can never collide.
func workspaceKey(customerID, botID string) string {
	return customerID + ":" + botID
}

// workspace is the per-bot mutable state owned by the core: the cached
// document registry, the selection set, and the single-slot in-flight
// gates for uploads and bulk operations.
type workspace struct {
	mu         sync.Mutex
	customerID string
	botID      string

	docs      []*domain.Document
	selection *domain.SelectionSet

	uploading  bool
	uploadMode domain.SubmissionKind
	bulkAction driving.BulkOperation
}

// replaceDocs swaps the registry wholesale and resets the selection, so a
// stale selection can never reference now-absent documents.
func (w *workspace) replaceDocs(docs []*domain.Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.docs = docs
	w.selection.Clear()
}

// beginUpload claims the submission slot and records the open form.
func (w *workspace) beginUpload(mode domain.SubmissionKind) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.uploading {
		return domain.ErrUploadInFlight
	}
	w.uploading = true
	w.uploadMode = mode
	return nil
}

// endUpload releases the submission slot. The form stays open unless
// closeUploadForm was called.
func (w *workspace) endUpload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.uploading = false
}

// closeUploadForm returns the workspace to its pre-submission mode.
func (w *workspace) closeUploadForm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.uploadMode = ""
}

// UploadMode reports the currently open upload form, if any.
func (w *workspace) UploadMode() domain.SubmissionKind {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.uploadMode
}

// beginBulk claims the single bulk-action slot.
func (w *workspace) beginBulk(op driving.BulkOperation) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.bulkAction != "" {
		return domain.ErrBulkInFlight
	}
	w.bulkAction = op
	return nil
}

// endBulk releases the bulk-action slot.
func (w *workspace) endBulk() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bulkAction = ""
}

func (w *workspace) clearSelection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selection.Clear()
}

// Workspaces implements the Document Registry component. It owns every
// workspace and is the only writer of registry and selection state.
type Workspaces struct {
	mu    sync.Mutex
	byKey map[string]*workspace

	backend  driven.ContentBackend
	notifier *Notifier
	logger   *slog.Logger
}

// NewWorkspaces creates the workspace registry service.
func NewWorkspaces(backend driven.ContentBackend, notifier *Notifier, logger *slog.Logger) *Workspaces {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspaces{
		byKey:    make(map[string]*workspace),
		backend:  backend,
		notifier: notifier,
		logger:   logger,
	}
}

// workspace returns the workspace for a customer/bot pair, creating it on
// first use.
func (s *Workspaces) workspace(customerID, botID string) *workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := workspaceKey(customerID, botID)
	ws, ok := s.byKey[key]
	if !ok {
		ws = &workspace{
			customerID: customerID,
			botID:      botID,
			selection:  domain.NewSelectionSet(),
		}
		s.byKey[key] = ws
	}
	return ws
}

// Load fetches the bot's documents and replaces the cached registry.
// On failure the list is left empty and an error toast is recorded.
func (s *Workspaces) Load(ctx context.Context, customerID, botID string) ([]*domain.Document, error) {
	ws := s.workspace(customerID, botID)

	docs, err := s.backend.ListDocuments(ctx, customerID, botID)
	if err != nil {
		s.logger.Warn("failed to load documents", "bot_id", botID, "error", err)
		s.notifier.Error(customerID, botID, "Failed to load documents")
		ws.replaceDocs(nil)
		return nil, err
	}

	ws.replaceDocs(docs)
	return docs, nil
}

// Refresh re-invokes the most recent load for the bot.
func (s *Workspaces) Refresh(ctx context.Context, customerID, botID string) error {
	_, err := s.Load(ctx, customerID, botID)
	return err
}

// Documents returns the cached registry in backend order.
func (s *Workspaces) Documents(customerID, botID string) []*domain.Document {
	ws := s.workspace(customerID, botID)
	ws.mu.Lock()
	defer ws.mu.Unlock()
	out := make([]*domain.Document, len(ws.docs))
	copy(out, ws.docs)
	return out
}

// ToggleSelect flips one document's selection state.
func (s *Workspaces) ToggleSelect(customerID, botID, documentID string) error {
	ws := s.workspace(customerID, botID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	for _, doc := range ws.docs {
		if doc.ID == documentID {
			ws.selection.Toggle(documentID)
			return nil
		}
	}
	return domain.ErrNotFound
}

// SelectAll selects every document currently in the registry.
func (s *Workspaces) SelectAll(customerID, botID string) {
	ws := s.workspace(customerID, botID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ids := make([]string, len(ws.docs))
	for i, doc := range ws.docs {
		ids[i] = doc.ID
	}
	ws.selection.Replace(ids)
}

// ClearSelection empties the workspace's selection.
func (s *Workspaces) ClearSelection(customerID, botID string) {
	s.workspace(customerID, botID).clearSelection()
}

// Selection returns the selected ids and whether the whole non-empty
// registry is selected.
func (s *Workspaces) Selection(customerID, botID string) driving.Selection {
	ws := s.workspace(customerID, botID)
	ws.mu.Lock()
	defer ws.mu.Unlock()

	return driving.Selection{
		IDs:         ws.selection.IDs(),
		AllSelected: len(ws.docs) > 0 && ws.selection.Len() == len(ws.docs),
	}
}
