package driving

import "context"

// BulkOperation is a state-changing action applied to a set of documents
// as one logical unit.
type BulkOperation string

const (
	BulkRetrain BulkOperation = "retrain"
	BulkDelete  BulkOperation = "delete"
)

// BulkService coordinates bulk operations against a workspace's documents.
// At most one bulk operation is in flight per workspace; an empty id set is
// a silent no-op. Delete is irreversible; the caller must have obtained
// operator confirmation before invoking it.
type BulkService interface {
	// Apply runs the operation and returns the affected count.
	Apply(ctx context.Context, customerID, botID string, op BulkOperation, documentIDs []string) (int, error)
}
