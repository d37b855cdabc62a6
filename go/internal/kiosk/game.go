package kiosk

import (
	"context"
	"fmt"

	oa "github.com/mcdev12/orderalone/go/clients/orderalone_client"
)

// StartGame starts a round on menuID. An empty menuID falls back to the selected menu and
// then to the first listed menu.
func (c *Controller) StartGame(ctx context.Context, menuID string) error {
	c.mu.Lock()
	if phase := c.phaseLocked(); phase == PhaseRunning || phase == PhaseEnding {
		c.status = msgGameInProgress
		c.mu.Unlock()
		c.changed()
		return newError(KindValidation, msgGameInProgress, nil)
	}

	target := menuID
	if target == "" {
		target = c.selectedMenuID
	}
	if target == "" && len(c.menus) > 0 {
		target = c.menus[0].ID
	}
	if target == "" {
		c.status = msgSelectMenu
		c.mu.Unlock()
		c.changed()
		return newError(KindValidation, msgSelectMenu, nil)
	}
	if menuID == "" {
		c.selectedMenuID = target
	}

	c.stopRoundLocked()
	c.status = ""
	c.round = nil
	c.order = nil
	c.successfulOrders = nil
	c.answer.Reset()
	epoch := c.epoch
	c.mu.Unlock()
	c.changed()

	order, err := c.api.StartGame(ctx, target)
	if err != nil {
		return c.fail(epoch, KindGame, msgStartFailed, err)
	}

	c.mu.Lock()
	if c.epoch != epoch || c.round != nil {
		c.mu.Unlock()
		return nil
	}
	c.round = newRound(order.GameID, order.MenuID, c.clock.Now(), c.gameSeconds)
	c.order = order
	c.view = ViewKiosk
	c.startCountdownLocked()
	c.mu.Unlock()

	c.logger.Info().
		Str("game_id", order.GameID).
		Str("menu_id", order.MenuID).
		Int("seconds", c.gameSeconds).
		Msg("game started")
	c.changed()

	return c.LoadMenuDetail(ctx, order.MenuID)
}

// Tick is the single countdown handler. The tick that reaches zero stops the countdown,
// leaves the running state and fetches the final score. Later ticks do nothing.
func (c *Controller) Tick(ctx context.Context) {
	c.tickRound(ctx, "")
}

// tickRound ignores ticks meant for another game. An empty forGame matches the current round.
func (c *Controller) tickRound(ctx context.Context, forGame string) {
	c.mu.Lock()
	if c.round == nil || (forGame != "" && c.round.GameID != forGame) {
		c.mu.Unlock()
		return
	}
	expired := c.round.tick()
	gameID := c.round.GameID
	epoch := c.epoch
	if expired {
		c.stopCountdownLocked()
	}
	c.mu.Unlock()
	c.changed()

	if expired {
		c.logger.Info().Str("game_id", gameID).Msg("time is up")
		_ = c.finishRound(ctx, epoch, gameID)
	}
}

// EndGame ends the round early. It also retries a failed final score request.
func (c *Controller) EndGame(ctx context.Context) error {
	c.mu.Lock()
	if c.round == nil || !c.round.beginEnd() {
		c.mu.Unlock()
		return nil
	}
	c.stopCountdownLocked()
	gameID := c.round.GameID
	epoch := c.epoch
	c.mu.Unlock()
	c.changed()

	return c.finishRound(ctx, epoch, gameID)
}

func (c *Controller) finishRound(ctx context.Context, epoch uint64, gameID string) error {
	score, err := c.api.EndGame(ctx, gameID)

	c.mu.Lock()
	if !c.sameRoundLocked(epoch, gameID) {
		c.mu.Unlock()
		return nil
	}
	c.round.Phase = PhaseEnded
	if err != nil {
		c.mu.Unlock()
		return c.fail(epoch, KindGame, msgEndFailed, err)
	}
	final := score.Score
	c.round.FinalScore = &final
	c.status = fmt.Sprintf(msgGameOverFmt, final)
	c.mu.Unlock()

	c.logger.Info().Str("game_id", gameID).Int("score", final).Msg("game ended")
	c.changed()

	// failures land in their own error slots
	_ = c.LoadMyGames(ctx)
	_ = c.LoadBestGame(ctx)

	c.mu.Lock()
	if c.sameRoundLocked(epoch, gameID) {
		c.view = ViewScore
	}
	c.mu.Unlock()
	c.changed()
	return nil
}

// SubmitAnswer scores the current answer against the current order. It makes no network
// call unless a round is running and both category and item are chosen. The answer is
// cleared after every submission, and the next order is requested whether or not the
// answer was correct.
func (c *Controller) SubmitAnswer(ctx context.Context) error {
	c.mu.Lock()
	var status string
	switch {
	case c.round == nil || c.order == nil:
		status = msgNoGame
	case !c.answer.Complete():
		status = msgSelectAnswer
	case c.round.Phase != PhaseRunning:
		status = msgGameEnded
	}
	if status != "" {
		c.status = status
		c.mu.Unlock()
		c.changed()
		return newError(KindValidation, status, nil)
	}

	order := *c.order
	gameID := c.round.GameID
	epoch := c.epoch
	req := oa.ScoreRequest{
		OrderID:      order.ID,
		GameID:       gameID,
		Category:     c.answer.Category(),
		MenuName:     c.answer.Item(),
		ToppingNames: c.answer.Toppings(),
	}
	c.status = ""
	c.mu.Unlock()

	result, err := c.api.ScoreOrder(ctx, req)

	c.mu.Lock()
	if !c.sameRoundLocked(epoch, gameID) {
		c.mu.Unlock()
		return nil
	}
	c.answer.Reset()
	if err != nil {
		c.mu.Unlock()
		return c.fail(epoch, KindScoring, msgScoringFailed, err)
	}

	running := c.round.Phase == PhaseRunning
	if result.Correct {
		c.addSuccessfulLocked(order)
	}
	// once the round has ended the game-over status stays
	if running {
		if result.Correct {
			c.status = msgCorrect
		} else {
			expectedCategory, expectedItem := "", ""
			if result.Expected != nil {
				expectedCategory, expectedItem = result.Expected.Category, result.Expected.MenuName
			}
			c.status = fmt.Sprintf(msgWrongFmt, expectedCategory, expectedItem)
		}
	}
	c.mu.Unlock()

	c.logger.Debug().
		Str("game_id", gameID).
		Str("order_id", order.ID).
		Bool("correct", result.Correct).
		Msg("answer scored")
	c.changed()

	if !running {
		return nil
	}
	return c.requestNextOrder(ctx, epoch, gameID)
}

func (c *Controller) requestNextOrder(ctx context.Context, epoch uint64, gameID string) error {
	next, err := c.api.NextOrder(ctx, gameID)
	if err != nil {
		return c.fail(epoch, KindGame, msgNextOrderFailed, err)
	}

	c.mu.Lock()
	if c.sameRoundLocked(epoch, gameID) {
		c.order = next
	}
	c.mu.Unlock()
	c.changed()
	return nil
}

// Reset returns to idle, dropping the round, its order, score and answer.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.stopRoundLocked()
	c.round = nil
	c.order = nil
	c.successfulOrders = nil
	c.answer.Reset()
	c.view = ViewHome
	c.status = ""
	c.mu.Unlock()
	c.changed()
}

func (c *Controller) ChooseCategory(category string) {
	c.mu.Lock()
	c.answer.SetCategory(category)
	c.mu.Unlock()
	c.changed()
}

// ChooseItem picks an item, switching to its category when it differs.
func (c *Controller) ChooseItem(category, item string) {
	c.mu.Lock()
	if category == "" {
		category = c.answer.Category()
	}
	c.answer.ChooseItem(category, item)
	c.mu.Unlock()
	c.changed()
}

func (c *Controller) ToggleTopping(name string) bool {
	c.mu.Lock()
	selected := c.answer.ToggleTopping(name)
	c.mu.Unlock()
	c.changed()
	return selected
}

func (c *Controller) sameRoundLocked(epoch uint64, gameID string) bool {
	return c.epoch == epoch && c.round != nil && c.round.GameID == gameID
}

// addSuccessfulLocked appends order unless an order with the same id is already listed.
func (c *Controller) addSuccessfulLocked(order oa.Order) {
	for _, o := range c.successfulOrders {
		if o.ID == order.ID {
			return
		}
	}
	c.successfulOrders = append(c.successfulOrders, order)
}
