package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is a single orderable item or topping choice.
type MenuItem struct {
	Name string `json:"name" yaml:"name"`
	Img  string `json:"img" yaml:"img"`
}

// ToppingGroup groups the topping choices offered for a category.
type ToppingGroup struct {
	Name  string     `json:"name" yaml:"name"`
	Items []MenuItem `json:"items" yaml:"items"`
}

// Category is one branch of a menu tree. The JSON names match the kiosk wire format.
type Category struct {
	Kategorie string         `json:"kategorie" yaml:"kategorie"`
	Menus     []MenuItem     `json:"menus" yaml:"menus"`
	Toping    []ToppingGroup `json:"toping" yaml:"toping"`
}

// Menu is a full kiosk menu with its category tree
type Menu struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Level       int        `json:"level"`
	Data        []Category `json:"data"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MenuSummary is the selectable projection of a menu
type MenuSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// FindCategory returns the category with the given name.
func (m *Menu) FindCategory(name string) (*Category, bool) {
	for i := range m.Data {
		if m.Data[i].Kategorie == name {
			return &m.Data[i], true
		}
	}
	return nil, false
}
