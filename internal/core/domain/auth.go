package domain

// AuthContext is the caller identity supplied by the external session
// provider. The core trusts it; tenant enforcement beyond matching the
// customer id is the backend's responsibility.
type AuthContext struct {
	CustomerID string `json:"customer_id"`
	SessionID  string `json:"session_id,omitempty"`
}
