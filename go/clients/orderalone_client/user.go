package orderalone_client

import (
	"context"
	"fmt"
)

// Login authenticates an existing account
func (c *OrderAloneClient) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.PostPublic(ctx, userLoginPath, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	return &resp, nil
}

// SignUp creates an account and returns its first token pair
func (c *OrderAloneClient) SignUp(ctx context.Context, req SignUpRequest) (*TokenResponse, error) {
	var resp TokenResponse
	if err := c.PostPublic(ctx, userSignupPath, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}
	return &resp, nil
}

// Me returns the profile of the authenticated user
func (c *OrderAloneClient) Me(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.Get(ctx, userMePath, &profile); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}
