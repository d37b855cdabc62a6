package kiosk

import (
	oa "github.com/mcdev12/orderalone/go/clients/orderalone_client"
)

// AnswerView is a copy of the in-progress guess
type AnswerView struct {
	Category string
	Item     string
	Toppings []string
}

// Snapshot is a read-only copy of everything the view layer renders
type Snapshot struct {
	Authenticated bool
	View          View
	Status        string

	Menus          []oa.MenuSummary
	SelectedMenuID string
	MenuDetail     *oa.Menu

	Phase            Phase
	GameID           string
	Remaining        int
	FinalScore       *int
	CurrentOrder     *oa.Order
	SuccessfulOrders []oa.Order
	Answer           AnswerView

	TopGames  []oa.GameRecord
	MyGames   []oa.GameRecord
	BestGame  *oa.GameRecord
	Profile   *oa.Profile
	TopError  string
	MyError   string
	BestError string
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Authenticated:    c.authenticated,
		View:             c.view,
		Status:           c.status,
		Menus:            append([]oa.MenuSummary(nil), c.menus...),
		SelectedMenuID:   c.selectedMenuID,
		MenuDetail:       c.menuDetail,
		Phase:            c.phaseLocked(),
		SuccessfulOrders: append([]oa.Order(nil), c.successfulOrders...),
		Answer: AnswerView{
			Category: c.answer.Category(),
			Item:     c.answer.Item(),
			Toppings: c.answer.Toppings(),
		},
		TopGames:  append([]oa.GameRecord(nil), c.topGames...),
		MyGames:   append([]oa.GameRecord(nil), c.myGames...),
		BestGame:  c.bestGame,
		Profile:   c.profile,
		TopError:  c.topError,
		MyError:   c.myError,
		BestError: c.bestError,
	}

	if c.round != nil {
		s.GameID = c.round.GameID
		s.Remaining = c.round.Remaining()
		if c.round.FinalScore != nil {
			score := *c.round.FinalScore
			s.FinalScore = &score
		}
	}
	if c.order != nil {
		order := *c.order
		s.CurrentOrder = &order
	}

	return s
}
