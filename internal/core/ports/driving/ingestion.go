package driving

import (
	"context"

	"github.com/botforge-labs/trainset-core/internal/core/domain"
)

// SubmissionOutcome is the terminal result of a successful dispatch.
type SubmissionOutcome struct {
	// Notification is the success toast for this submission.
	Notification *domain.Notification `json:"notification"`

	// Documents are the documents the backend reported as created, when it
	// reports them (file, text, video variants).
	Documents []*domain.Document `json:"documents,omitempty"`
}

// IngestionService validates and dispatches content submissions.
// Exactly one submission is in flight per workspace; validation failures
// never reach the network layer.
type IngestionService interface {
	Submit(ctx context.Context, sub *domain.UploadSubmission) (*SubmissionOutcome, error)
}
