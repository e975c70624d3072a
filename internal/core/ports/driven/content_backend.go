package driven

import (
	"context"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

// UploadResult is the backend's response to a file upload.
type UploadResult struct {
	Documents []*domain.Document `json:"documents"`
}

// ScrapeResult is the backend's response to a website scrape or crawl.
// PagesScraped is zero when the backend does not report a count.
type ScrapeResult struct {
	PagesScraped int    `json:"pagesScraped"`
	Title        string `json:"title"`
}

// ContentBackend is the Content Processing Backend: it extracts text,
// crawls, transcribes and persists documents. The core only calls it and
// interprets its responses; it never retries a failed call.
type ContentBackend interface {
	// ListDocuments returns a bot's documents in backend order.
	ListDocuments(ctx context.Context, customerID, botID string) ([]*domain.Document, error)

	// UploadFile sends a file submission as multipart form data.
	UploadFile(ctx context.Context, sub *domain.UploadSubmission) (*UploadResult, error)

	// UploadText sends a pasted-text (or synthesized Q&A) submission.
	UploadText(ctx context.Context, sub *domain.UploadSubmission) (*domain.Document, error)

	// ScrapeWebsite ingests a single page, or the full site when requested.
	ScrapeWebsite(ctx context.Context, sub *domain.UploadSubmission) (*ScrapeResult, error)

	// ExtractVideo ingests a video transcript.
	ExtractVideo(ctx context.Context, sub *domain.UploadSubmission) (*domain.Document, error)

	// Retrain re-processes the given documents; returns the affected count.
	Retrain(ctx context.Context, customerID, botID string, documentIDs []string) (int, error)

	// DeleteBulk removes the given documents; returns the affected count.
	// Destructive and irreversible; operator confirmation happens upstream.
	DeleteBulk(ctx context.Context, customerID, botID string, documentIDs []string) (int, error)
}
