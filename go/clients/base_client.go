package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrSessionExpired is returned when a 401 could not be recovered by refreshing the access token.
var ErrSessionExpired = errors.New("session expired")

// APIError is returned for any non-2xx response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API returned status code: %d, response: %s", e.StatusCode, e.Body)
}

// StatusCode extracts the HTTP status of an APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Credentials supplies bearer tokens at request time
type Credentials interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	UpdateAccessToken(ctx context.Context, token string) error
	ClearTokens(ctx context.Context) error
}

// RefreshFunc exchanges a refresh token for a new access token.
type RefreshFunc func(ctx context.Context, refreshToken string) (string, error)

type BaseClient struct {
	baseURL string
	client  *http.Client
	headers map[string]string

	creds   Credentials
	refresh RefreshFunc
}

func NewBaseClient(baseURL string) *BaseClient {
	return &BaseClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	}
}

func (c *BaseClient) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *BaseClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// SetAuth enables bearer authentication. refresh is called at most once per request on a 401.
func (c *BaseClient) SetAuth(creds Credentials, refresh RefreshFunc) {
	c.creds = creds
	c.refresh = refresh
}

// MakeRequest sends a JSON request and decodes a 2xx response body into out (when non-nil).
// Authenticated requests get one refresh-and-retry on 401.
func (c *BaseClient) MakeRequest(ctx context.Context, method, endpoint string, body, out interface{}, authed bool) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	token := ""
	if authed && c.creds != nil {
		var err error
		token, err = c.creds.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to read access token: %w", err)
		}
	}

	status, respBody, err := c.do(ctx, method, endpoint, payload, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && authed && c.creds != nil && c.refresh != nil {
		refreshToken, err := c.creds.RefreshToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to read refresh token: %w", err)
		}
		if refreshToken != "" {
			newToken, err := c.refresh(ctx, refreshToken)
			if err != nil {
				if clearErr := c.creds.ClearTokens(ctx); clearErr != nil {
					log.Warn().Err(clearErr).Msg("failed to clear tokens after refresh failure")
				}
				return fmt.Errorf("%w: %v", ErrSessionExpired, err)
			}
			if err := c.creds.UpdateAccessToken(ctx, newToken); err != nil {
				return fmt.Errorf("failed to store refreshed access token: %w", err)
			}
			log.Debug().Str("endpoint", endpoint).Msg("access token refreshed, retrying request")

			// the retry result is final, a second 401 is not refreshed again
			status, respBody, err = c.do(ctx, method, endpoint, payload, newToken)
			if err != nil {
				return err
			}
		}
	}

	if status < 200 || status >= 300 {
		return &APIError{StatusCode: status, Body: string(respBody)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(respBody))
	}
	return nil
}

func (c *BaseClient) do(ctx context.Context, method, endpoint string, payload []byte, token string) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, responseBody, nil
}

func (c *BaseClient) Get(ctx context.Context, endpoint string, out interface{}) error {
	return c.MakeRequest(ctx, http.MethodGet, endpoint, nil, out, true)
}

func (c *BaseClient) Post(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.MakeRequest(ctx, http.MethodPost, endpoint, body, out, true)
}

// PostPublic posts without a bearer token and without the refresh path.
func (c *BaseClient) PostPublic(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.MakeRequest(ctx, http.MethodPost, endpoint, body, out, false)
}

func (c *BaseClient) Put(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.MakeRequest(ctx, http.MethodPut, endpoint, body, out, true)
}

func (c *BaseClient) Delete(ctx context.Context, endpoint string, out interface{}) error {
	return c.MakeRequest(ctx, http.MethodDelete, endpoint, nil, out, true)
}
