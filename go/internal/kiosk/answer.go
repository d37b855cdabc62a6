package kiosk

import "sort"

// AnswerBuilder holds the in-progress guess. Items and toppings are scoped to the chosen
// category, so changing the category drops them.
type AnswerBuilder struct {
	category string
	item     string
	toppings map[string]struct{}
}

func NewAnswerBuilder() *AnswerBuilder {
	return &AnswerBuilder{toppings: make(map[string]struct{})}
}

func (a *AnswerBuilder) Category() string { return a.category }

func (a *AnswerBuilder) Item() string { return a.item }

// SetCategory chooses a category. A different category clears item and toppings.
func (a *AnswerBuilder) SetCategory(category string) {
	if category == a.category {
		return
	}
	a.category = category
	a.item = ""
	a.toppings = make(map[string]struct{})
}

// SetItem chooses an item inside the current category
func (a *AnswerBuilder) SetItem(item string) {
	a.item = item
}

// ChooseItem picks an item from a flattened listing, switching category when needed.
func (a *AnswerBuilder) ChooseItem(category, item string) {
	a.SetCategory(category)
	a.item = item
}

// ToggleTopping adds name when absent and removes it when present. It returns whether
// name is selected afterwards.
func (a *AnswerBuilder) ToggleTopping(name string) bool {
	if _, ok := a.toppings[name]; ok {
		delete(a.toppings, name)
		return false
	}
	a.toppings[name] = struct{}{}
	return true
}

func (a *AnswerBuilder) HasTopping(name string) bool {
	_, ok := a.toppings[name]
	return ok
}

// Toppings returns the selected topping names in stable order
func (a *AnswerBuilder) Toppings() []string {
	names := make([]string, 0, len(a.toppings))
	for name := range a.toppings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Complete reports whether both category and item are chosen
func (a *AnswerBuilder) Complete() bool {
	return a.category != "" && a.item != ""
}

func (a *AnswerBuilder) Reset() {
	a.category = ""
	a.item = ""
	a.toppings = make(map[string]struct{})
}
