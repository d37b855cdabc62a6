package users

import "github.com/google/uuid"

// SignUpRequest creates an account and logs it in
type SignUpRequest struct {
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	AccountID string `json:"account_id"`
	Password  string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is shared by login and refresh. Refresh leaves RefreshToken empty.
type TokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token,omitempty"`
	TokenType        string `json:"token_type"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

type SignUpResponse struct {
	User Profile `json:"user"`
	TokenResponse
}

type Profile struct {
	ID        uuid.UUID `json:"id"`
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
}
