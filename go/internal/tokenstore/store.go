package tokenstore

import (
	"context"
	"fmt"
)

const (
	// AccessTokenKey and RefreshTokenKey are the two persisted session slots
	AccessTokenKey  = "oa_access_token"
	RefreshTokenKey = "oa_refresh_token"
)

// Store is a string key-value slot storage. Missing keys read as "".
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Tokens keeps the access/refresh token pair in a Store
type Tokens struct {
	store Store
}

// NewTokens creates a token pair view over store
func NewTokens(store Store) *Tokens {
	return &Tokens{store: store}
}

func (t *Tokens) AccessToken(ctx context.Context) (string, error) {
	return t.store.Get(ctx, AccessTokenKey)
}

func (t *Tokens) RefreshToken(ctx context.Context) (string, error) {
	return t.store.Get(ctx, RefreshTokenKey)
}

// Save stores a fresh login result. An empty refresh token keeps the stored one.
func (t *Tokens) Save(ctx context.Context, access, refresh string) error {
	if err := t.store.Set(ctx, AccessTokenKey, access); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if refresh == "" {
		return nil
	}
	if err := t.store.Set(ctx, RefreshTokenKey, refresh); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (t *Tokens) UpdateAccessToken(ctx context.Context, token string) error {
	if err := t.store.Set(ctx, AccessTokenKey, token); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	return nil
}

// ClearTokens removes both slots
func (t *Tokens) ClearTokens(ctx context.Context) error {
	if err := t.store.Delete(ctx, AccessTokenKey); err != nil {
		return fmt.Errorf("failed to delete access token: %w", err)
	}
	if err := t.store.Delete(ctx, RefreshTokenKey); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// HasSession reports whether an access token is stored.
func (t *Tokens) HasSession(ctx context.Context) bool {
	token, err := t.AccessToken(ctx)
	return err == nil && token != ""
}
