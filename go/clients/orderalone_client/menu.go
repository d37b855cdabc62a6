package orderalone_client

import (
	"context"
	"fmt"
	"net/url"
)

func (c *OrderAloneClient) MenuSummaries(ctx context.Context) ([]MenuSummary, error) {
	var summaries []MenuSummary
	if err := c.Get(ctx, menuSummaryPath, &summaries); err != nil {
		return nil, fmt.Errorf("failed to list menu summaries: %w", err)
	}
	return summaries, nil
}

func (c *OrderAloneClient) Menu(ctx context.Context, menuID string) (*Menu, error) {
	var menu Menu
	if err := c.Get(ctx, fmt.Sprintf(menuPathFmt, url.PathEscape(menuID)), &menu); err != nil {
		return nil, fmt.Errorf("failed to get menu %s: %w", menuID, err)
	}
	return &menu, nil
}

// CreateMenu stores a new menu; used by admin tooling rather than the kiosk
func (c *OrderAloneClient) CreateMenu(ctx context.Context, menu Menu) (*Menu, error) {
	var created Menu
	if err := c.Post(ctx, menuCreatePath, menu, &created); err != nil {
		return nil, fmt.Errorf("failed to create menu %s: %w", menu.Name, err)
	}
	return &created, nil
}

// UpdateMenu sends a partial update; nil fields are left untouched
func (c *OrderAloneClient) UpdateMenu(ctx context.Context, menuID string, update MenuUpdate) (*Menu, error) {
	var menu Menu
	if err := c.Put(ctx, fmt.Sprintf(menuPathFmt, url.PathEscape(menuID)), update, &menu); err != nil {
		return nil, fmt.Errorf("failed to update menu %s: %w", menuID, err)
	}
	return &menu, nil
}

func (c *OrderAloneClient) DeleteMenu(ctx context.Context, menuID string) error {
	if err := c.Delete(ctx, fmt.Sprintf(menuPathFmt, url.PathEscape(menuID)), nil); err != nil {
		return fmt.Errorf("failed to delete menu %s: %w", menuID, err)
	}
	return nil
}
