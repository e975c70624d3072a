package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driven"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driving"
)

// Ensure bulkService implements BulkService
var _ driving.BulkService = (*bulkService)(nil)

// bulkService applies retrain and delete operations to a document set as a
// single unit.
type bulkService struct {
	backend    driven.ContentBackend
	workspaces *Workspaces
	notifier   *Notifier
	logger     *slog.Logger
}

// NewBulkService creates a new BulkService.
func NewBulkService(
	backend driven.ContentBackend,
	workspaces *Workspaces,
	notifier *Notifier,
	logger *slog.Logger,
) driving.BulkService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bulkService{
		backend:    backend,
		workspaces: workspaces,
		notifier:   notifier,
		logger:     logger,
	}
}

// Apply runs one bulk operation against a workspace. An empty id set is a
// silent no-op. On success the selection is cleared and the registry is
// refreshed; on failure both are left untouched so the operator can retry.
func (s *bulkService) Apply(ctx context.Context, customerID, botID string, op driving.BulkOperation, documentIDs []string) (int, error) {
	if len(documentIDs) == 0 {
		return 0, nil
	}

	ws := s.workspaces.workspace(customerID, botID)
	if err := ws.beginBulk(op); err != nil {
		return 0, err
	}
	defer ws.endBulk()

	var (
		count    int
		err      error
		verb     string
		fallback string
	)
	switch op {
	case driving.BulkRetrain:
		count, err = s.backend.Retrain(ctx, customerID, botID, documentIDs)
		verb, fallback = "retrained", "Retrain failed"
	case driving.BulkDelete:
		count, err = s.backend.DeleteBulk(ctx, customerID, botID, documentIDs)
		verb, fallback = "deleted", "Delete failed"
	default:
		return 0, fmt.Errorf("%w: unknown bulk operation %q", domain.ErrInvalidInput, op)
	}

	if err != nil {
		s.logger.Warn("bulk operation failed",
			"operation", op,
			"bot_id", botID,
			"documents", len(documentIDs),
			"error", err,
		)
		s.notifier.Error(customerID, botID, domain.BackendMessage(err, fallback))
		return 0, err
	}

	s.notifier.Success(customerID, botID, fmt.Sprintf("%d document(s) %s", count, verb))
	ws.clearSelection()

	if err := s.workspaces.Refresh(ctx, customerID, botID); err != nil {
		s.logger.Warn("registry refresh after bulk operation failed", "bot_id", botID, "error", err)
	}

	return count, nil
}
