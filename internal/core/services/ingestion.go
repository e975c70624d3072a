package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driven"
	"github.com/botforge-labs/trainset-core/internal/core/ports/driving"
)

// Ensure ingestionService implements IngestionService
var _ driving.IngestionService = (*ingestionService)(nil)

// dispatchFallbacks are the static error messages used when the backend
// supplies none.
var dispatchFallbacks = map[domain.SubmissionKind]string{
	domain.SubmissionFile:    "Upload failed",
	domain.SubmissionText:    "Upload failed",
	domain.SubmissionQA:      "Upload failed",
	domain.SubmissionWebsite: "Scrape failed",
	domain.SubmissionVideo:   "Extraction failed",
}

// ingestionService is the Ingestion Dispatcher: it validates a submission,
// routes it to the matching backend endpoint, and normalizes the outcome
// into exactly one notification.
type ingestionService struct {
	backend    driven.ContentBackend
	workspaces *Workspaces
	notifier   *Notifier
	logger     *slog.Logger
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(
	backend driven.ContentBackend,
	workspaces *Workspaces,
	notifier *Notifier,
	logger *slog.Logger,
) driving.IngestionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ingestionService{
		backend:    backend,
		workspaces: workspaces,
		notifier:   notifier,
		logger:     logger,
	}
}

// Submit dispatches one submission. The workspace's upload slot is held for
// the duration of the backend call; a second submission while one is in
// flight returns domain.ErrUploadInFlight. A submission either fully
// succeeds or fully fails; it is never retried here.
func (s *ingestionService) Submit(ctx context.Context, sub *domain.UploadSubmission) (*driving.SubmissionOutcome, error) {
	if err := sub.Validate(); err != nil {
		s.notifier.Error(sub.CustomerID, sub.BotID, err.Error())
		return nil, err
	}

	ws := s.workspaces.workspace(sub.CustomerID, sub.BotID)
	if err := ws.beginUpload(sub.Kind); err != nil {
		return nil, err
	}
	defer ws.endUpload()

	message, docs, err := s.dispatch(ctx, sub)
	if err != nil {
		s.logger.Warn("submission failed",
			"kind", sub.Kind,
			"bot_id", sub.BotID,
			"error", err,
		)
		// The form stays open with the operator's input preserved.
		s.notifier.Error(sub.CustomerID, sub.BotID, domain.BackendMessage(err, dispatchFallbacks[sub.Kind]))
		return nil, err
	}

	notification := s.notifier.Success(sub.CustomerID, sub.BotID, message)
	ws.closeUploadForm()

	// Refresh only after the mutating call has resolved; a refresh failure
	// does not undo the successful submission.
	if err := s.workspaces.Refresh(ctx, sub.CustomerID, sub.BotID); err != nil {
		s.logger.Warn("registry refresh after submission failed", "bot_id", sub.BotID, "error", err)
	}

	return &driving.SubmissionOutcome{
		Notification: notification,
		Documents:    docs,
	}, nil
}

// dispatch routes the submission to the backend endpoint for its variant
// and builds the success message.
func (s *ingestionService) dispatch(ctx context.Context, sub *domain.UploadSubmission) (string, []*domain.Document, error) {
	switch sub.Kind {
	case domain.SubmissionFile:
		result, err := s.backend.UploadFile(ctx, sub)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("%q uploaded successfully", sub.FileName), result.Documents, nil

	case domain.SubmissionText:
		doc, err := s.backend.UploadText(ctx, sub)
		if err != nil {
			return "", nil, err
		}
		return "Text content uploaded successfully", []*domain.Document{doc}, nil

	case domain.SubmissionQA:
		// Q&A rides the text endpoint with its synthesized title/content.
		doc, err := s.backend.UploadText(ctx, sub)
		if err != nil {
			return "", nil, err
		}
		return "Q&A added successfully", []*domain.Document{doc}, nil

	case domain.SubmissionWebsite:
		result, err := s.backend.ScrapeWebsite(ctx, sub)
		if err != nil {
			return "", nil, err
		}
		return scrapeMessage(sub.FullSite, result), nil, nil

	case domain.SubmissionVideo:
		doc, err := s.backend.ExtractVideo(ctx, sub)
		if err != nil {
			return "", nil, err
		}
		return "YouTube transcript extracted successfully", []*domain.Document{doc}, nil
	}

	return "", nil, fmt.Errorf("%w: unknown submission kind %q", domain.ErrInvalidInput, sub.Kind)
}

// scrapeMessage differentiates single-page scrapes from multi-page crawls,
// substituting "multiple" when the backend reports no page count.
func scrapeMessage(fullSite bool, result *driven.ScrapeResult) string {
	if fullSite {
		if result.PagesScraped > 0 {
			return fmt.Sprintf("Website crawled — %d pages scraped", result.PagesScraped)
		}
		return "Website crawled — multiple pages scraped"
	}
	title := result.Title
	if title == "" {
		title = "page"
	}
	return fmt.Sprintf("Page scraped — %q", title)
}
