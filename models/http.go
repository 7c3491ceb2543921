package models

// Request and response bodies exchanged with the presentation layer.
// The session token travels in the Authorization header, never in a body.

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login. Identifier accepts
// either a username or an e-mail address.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}

// AddItemRequest is the body of POST /api/shelf/.
type AddItemRequest struct {
	ExternalID string `json:"external_id"`
	Title      string `json:"title"`
	PosterURL  string `json:"poster_url,omitempty"`
}

// SetStatusRequest is the body of POST /api/shelf/{itemID}/status.
type SetStatusRequest struct {
	Status Status `json:"status"`
}

// SetRatingRequest is the body of POST /api/shelf/{itemID}/rating.
type SetRatingRequest struct {
	Rating Rating `json:"rating"`
}

// ChangeIdentifierRequest is the body of the username/email change endpoints.
type ChangeIdentifierRequest struct {
	Value string `json:"value"`
}

// ChangePasswordRequest is the body of POST /api/account/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PasswordResetRequest is the body of POST /api/auth/password-reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest is the body of
// POST /api/auth/password-reset/confirm.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// SearchResponse is the body of GET /api/search. When the catalog is
// unreachable Results is empty and Notice explains the degradation.
type SearchResponse struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
	Notice  string         `json:"notice,omitempty"`
}
