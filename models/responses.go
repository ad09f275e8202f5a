package models

// AuthResponse is the body returned by the register and login endpoints:
// the public projection of the account plus a fresh token pair.
type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse is the body returned by the token refresh endpoint.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// MessageResponse is a generic informational body for delete-style
// endpoints that report success with a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body for every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
