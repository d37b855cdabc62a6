package orderalone_client

import (
	"context"
	"fmt"

	"github.com/mcdev12/orderalone/go/clients"
)

type OrderAloneClient struct {
	*clients.BaseClient
}

// NewOrderAloneClient creates a client that authenticates with creds and refreshes through /user/refresh.
func NewOrderAloneClient(baseURL string, creds clients.Credentials) *OrderAloneClient {
	client := &OrderAloneClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}
	client.SetHeader("User-Agent", userAgent)

	client.SetAuth(creds, func(ctx context.Context, refreshToken string) (string, error) {
		resp, err := client.Refresh(ctx, refreshToken)
		if err != nil {
			return "", err
		}
		return resp.AccessToken, nil
	})

	return client
}

// Refresh exchanges a refresh token for a new access token
func (c *OrderAloneClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	var resp TokenResponse
	body := map[string]string{"refresh_token": refreshToken}
	if err := c.PostPublic(ctx, userRefreshPath, body, &resp); err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("refresh response carried no access token")
	}
	return &resp, nil
}
