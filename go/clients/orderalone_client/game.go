package orderalone_client

import (
	"context"
	"fmt"
	"net/url"
)

// StartGame creates a game on menuID and returns its first order
func (c *OrderAloneClient) StartGame(ctx context.Context, menuID string) (*Order, error) {
	var resp StartGameResponse
	if err := c.Post(ctx, gameStartPath, map[string]string{"menu_id": menuID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	return &resp.Order, nil
}

// EndGame closes the game and returns its final score
func (c *OrderAloneClient) EndGame(ctx context.Context, gameID string) (*GameScore, error) {
	var resp GameScore
	if err := c.Post(ctx, gameEndPath, map[string]string{"game_id": gameID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to end game: %w", err)
	}
	return &resp, nil
}

func (c *OrderAloneClient) TopGames(ctx context.Context, limit int) ([]GameRecord, error) {
	var records []GameRecord
	if err := c.Get(ctx, fmt.Sprintf(gameTopFmt, limit), &records); err != nil {
		return nil, fmt.Errorf("failed to list top games: %w", err)
	}
	return records, nil
}

func (c *OrderAloneClient) MyGames(ctx context.Context, limit int) ([]GameRecord, error) {
	var records []GameRecord
	if err := c.Get(ctx, fmt.Sprintf(gameListFmt, limit), &records); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return records, nil
}

// BestGame returns nil when the user has not finished a game yet.
func (c *OrderAloneClient) BestGame(ctx context.Context) (*GameRecord, error) {
	var record *GameRecord
	if err := c.Get(ctx, gameBestPath, &record); err != nil {
		return nil, fmt.Errorf("failed to get best game: %w", err)
	}
	return record, nil
}

// OrdersByGame lists the correctly answered orders of a game
func (c *OrderAloneClient) OrdersByGame(ctx context.Context, gameID string, limit int) ([]Order, error) {
	var orders []Order
	if err := c.Get(ctx, fmt.Sprintf(orderByGameFmt, url.PathEscape(gameID), limit), &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders of game %s: %w", gameID, err)
	}
	return orders, nil
}
