package driven

import "github.com/botforge-labs/trainset-core/internal/core/domain"

// TokenVerifier validates tokens issued by the external session provider
// and extracts the caller's tenant identity.
type TokenVerifier interface {
	Verify(token string) (*domain.AuthContext, error)
}
