package orderalone_client

import (
	"context"
	"fmt"
)

// NextOrder creates the next order of a running game
func (c *OrderAloneClient) NextOrder(ctx context.Context, gameID string) (*Order, error) {
	var order Order
	if err := c.Post(ctx, orderPath, map[string]string{"game_id": gameID}, &order); err != nil {
		return nil, fmt.Errorf("failed to create next order: %w", err)
	}
	return &order, nil
}

// ScoreOrder submits an answer for the current order
func (c *OrderAloneClient) ScoreOrder(ctx context.Context, req ScoreRequest) (*ScoreResult, error) {
	if req.ToppingNames == nil {
		req.ToppingNames = []string{}
	}
	var result ScoreResult
	if err := c.Post(ctx, orderScorePath, req, &result); err != nil {
		return nil, fmt.Errorf("failed to score order: %w", err)
	}
	return &result, nil
}
