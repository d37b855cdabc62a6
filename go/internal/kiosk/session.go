package kiosk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mcdev12/orderalone/go/clients"
	oa "github.com/mcdev12/orderalone/go/clients/orderalone_client"
)

// Login authenticates with an existing account. Both fields are required.
func (c *Controller) Login(ctx context.Context, accountID, password string) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" || password == "" {
		c.setStatus(msgMissingCredentials)
		return newError(KindAuth, msgMissingCredentials, nil)
	}

	resp, err := c.api.Login(ctx, oa.LoginRequest{AccountID: accountID, Password: password})
	return c.completeAuth(ctx, accountID, resp, err)
}

// SignUp creates an account and logs into it. The name is optional.
func (c *Controller) SignUp(ctx context.Context, name, accountID, password string) error {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" || password == "" {
		c.setStatus(msgMissingCredentials)
		return newError(KindAuth, msgMissingCredentials, nil)
	}

	resp, err := c.api.SignUp(ctx, oa.SignUpRequest{
		Name:      strings.TrimSpace(name),
		AccountID: accountID,
		Password:  password,
	})
	return c.completeAuth(ctx, accountID, resp, err)
}

func (c *Controller) completeAuth(ctx context.Context, accountID string, resp *oa.TokenResponse, err error) error {
	if err == nil && resp.AccessToken == "" {
		err = fmt.Errorf("auth response carried no access token")
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("account_id", accountID).Msg("authentication failed")
		c.setStatus(msgAuthFailed)
		return newError(KindAuth, msgAuthFailed, err)
	}

	if err := c.tokens.Save(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		c.setStatus(msgAuthFailed)
		return newError(KindAuth, msgAuthFailed, err)
	}

	// a new login replaces whatever the previous account left behind
	c.mu.Lock()
	c.clearLocked()
	c.authenticated = true
	c.mu.Unlock()

	c.logger.Info().Str("account_id", accountID).Msg("authenticated")
	c.changed()
	return nil
}

// Logout clears the tokens and all in-memory state. A running round is abandoned without
// notifying the server. Calling it twice is harmless.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.clearLocked()
	c.mu.Unlock()

	err := c.tokens.ClearTokens(ctx)
	c.changed()
	if err != nil {
		return newError(KindAuth, msgAuthFailed, err)
	}
	return nil
}

// Bootstrap loads what the home screen shows right after authentication.
func (c *Controller) Bootstrap(ctx context.Context) error {
	var errs []error
	for _, load := range []func(context.Context) error{
		c.LoadMenuSummaries,
		c.LoadTopGames,
		c.LoadMyGames,
		c.LoadBestGame,
		c.LoadProfile,
	} {
		if err := load(ctx); err != nil {
			errs = append(errs, err)
			if IsKind(err, KindAuth) && !c.IsAuthenticated() {
				break
			}
		}
	}
	return errors.Join(errs...)
}

// LoadProfile fetches the user profile. A failure leaves the profile empty without
// changing the status line.
func (c *Controller) LoadProfile(ctx context.Context) error {
	epoch := c.currentEpoch()

	profile, err := c.api.Me(ctx)
	if errors.Is(err, clients.ErrSessionExpired) {
		return c.fail(epoch, KindAuth, msgProfileUnavailable, err)
	}
	if err != nil {
		c.mu.Lock()
		if c.epoch == epoch {
			c.profile = nil
		}
		c.mu.Unlock()
		c.logger.Debug().Err(err).Msg(msgProfileUnavailable)
		return newError(KindAuth, msgProfileUnavailable, err)
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.profile = profile
	}
	c.mu.Unlock()
	c.changed()
	return nil
}
