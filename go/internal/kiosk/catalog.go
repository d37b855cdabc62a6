package kiosk

import (
	"context"

	"github.com/mcdev12/orderalone/go/internal/models"

	oa "github.com/mcdev12/orderalone/go/clients/orderalone_client"
)

// LoadMenuSummaries fetches the selectable menus and selects the first one when nothing is
// selected yet, loading its detail.
func (c *Controller) LoadMenuSummaries(ctx context.Context) error {
	epoch := c.currentEpoch()

	summaries, err := c.api.MenuSummaries(ctx)
	if err != nil {
		return c.fail(epoch, KindCatalog, msgMenusUnavailable, err)
	}

	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return nil
	}
	c.menus = summaries
	autoSelected := ""
	if c.selectedMenuID == "" && len(summaries) > 0 {
		c.selectedMenuID = summaries[0].ID
		autoSelected = c.selectedMenuID
	}
	c.mu.Unlock()

	c.logger.Debug().Int("menus", len(summaries)).Str("auto_selected", autoSelected).Msg("menu summaries loaded")
	c.changed()

	if autoSelected != "" {
		return c.LoadMenuDetail(ctx, autoSelected)
	}
	return nil
}

// SelectMenu changes the selected menu and reloads its detail
func (c *Controller) SelectMenu(ctx context.Context, menuID string) error {
	c.mu.Lock()
	changed := c.selectedMenuID != menuID
	c.selectedMenuID = menuID
	c.mu.Unlock()

	if !changed {
		return nil
	}
	return c.LoadMenuDetail(ctx, menuID)
}

// LoadMenuDetail fetches the category tree of one menu. An empty id clears the detail.
func (c *Controller) LoadMenuDetail(ctx context.Context, menuID string) error {
	epoch := c.currentEpoch()

	if menuID == "" {
		c.mu.Lock()
		c.menuDetail = nil
		c.mu.Unlock()
		c.changed()
		return nil
	}

	menu, err := c.api.Menu(ctx, menuID)
	if err != nil {
		return c.fail(epoch, KindCatalog, msgMenuUnavailable, err)
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.menuDetail = menu
	}
	c.mu.Unlock()
	c.changed()
	return nil
}

// CategorizedItem is a menu item labelled with its category.
type CategorizedItem struct {
	Category string
	models.MenuItem
}

// MenuItems lists the items of category, or of every category when category is empty
// or unknown.
func MenuItems(menu *oa.Menu, category string) []CategorizedItem {
	if menu == nil {
		return nil
	}

	var items []CategorizedItem
	for _, cat := range menu.Data {
		if cat.Kategorie != category {
			continue
		}
		for _, item := range cat.Menus {
			items = append(items, CategorizedItem{Category: cat.Kategorie, MenuItem: item})
		}
		return items
	}

	for _, cat := range menu.Data {
		for _, item := range cat.Menus {
			items = append(items, CategorizedItem{Category: cat.Kategorie, MenuItem: item})
		}
	}
	return items
}

// ToppingGroups returns the topping groups offered for category
func ToppingGroups(menu *oa.Menu, category string) []models.ToppingGroup {
	if menu == nil {
		return nil
	}
	for _, cat := range menu.Data {
		if cat.Kategorie == category {
			return cat.Toping
		}
	}
	return nil
}
