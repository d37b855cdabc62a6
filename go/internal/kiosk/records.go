package kiosk

import (
	"context"
	"errors"

	"github.com/mcdev12/orderalone/go/clients"
)

// Ranking, history and best-score failures are kept in their own error slots and do not
// touch the main status line.

func (c *Controller) LoadTopGames(ctx context.Context) error {
	epoch := c.beginRecordLoad(&c.topError)

	records, err := c.api.TopGames(ctx, c.recordLimit)
	if err != nil {
		return c.recordFailed(epoch, &c.topError, msgTopUnavailable, err)
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.topGames = records
	}
	c.mu.Unlock()
	c.changed()
	return nil
}

func (c *Controller) LoadMyGames(ctx context.Context) error {
	epoch := c.beginRecordLoad(&c.myError)

	records, err := c.api.MyGames(ctx, c.recordLimit)
	if err != nil {
		return c.recordFailed(epoch, &c.myError, msgMineUnavailable, err)
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.myGames = records
	}
	c.mu.Unlock()
	c.changed()
	return nil
}

func (c *Controller) LoadBestGame(ctx context.Context) error {
	epoch := c.beginRecordLoad(&c.bestError)

	record, err := c.api.BestGame(ctx)
	if err != nil {
		return c.recordFailed(epoch, &c.bestError, msgBestUnavailable, err)
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.bestGame = record
	}
	c.mu.Unlock()
	c.changed()
	return nil
}

func (c *Controller) beginRecordLoad(slot *string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	*slot = ""
	return c.epoch
}

func (c *Controller) recordFailed(epoch uint64, slot *string, status string, err error) error {
	if errors.Is(err, clients.ErrSessionExpired) {
		return c.fail(epoch, KindGame, status, err)
	}

	c.logger.Warn().Err(err).Msg(status)
	c.mu.Lock()
	if c.epoch == epoch {
		*slot = status
	}
	c.mu.Unlock()
	c.changed()
	return newError(KindGame, status, err)
}
