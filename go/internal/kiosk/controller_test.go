package kiosk

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oa "github.com/mcdev12/orderalone/go/clients/orderalone_client"
	"github.com/mcdev12/orderalone/go/internal/tokenstore"
)

func TestLogin_RequiresBothFields(t *testing.T) {
	h := newHarness(t)

	for _, tc := range []struct {
		name      string
		accountID string
		password  string
	}{
		{"missing account", "", "pw"},
		{"blank account", "   ", "pw"},
		{"missing password", "kiosk_user", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := h.ctrl.Login(t.Context(), tc.accountID, tc.password)
			require.Error(t, err)
			assert.True(t, IsKind(err, KindAuth))
			assert.Equal(t, msgMissingCredentials, h.ctrl.Status())
		})
	}

	err := h.ctrl.SignUp(t.Context(), "Kiosk", "", "")
	assert.True(t, IsKind(err, KindAuth))

	assert.Zero(t, h.api.count("POST /user/login"))
	assert.Zero(t, h.api.count("POST /user/signup"))
	assert.False(t, h.ctrl.IsAuthenticated())
}

func TestLogin_StoresTokensAndAutoSelectsFirstMenu(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.Login(t.Context(), "kiosk_user", "pw"))
	assert.True(t, h.ctrl.IsAuthenticated())

	access, _ := h.tokens.AccessToken(t.Context())
	refresh, _ := h.tokens.RefreshToken(t.Context())
	assert.Equal(t, "a1", access)
	assert.Equal(t, "r1", refresh)

	require.NoError(t, h.ctrl.LoadMenuSummaries(t.Context()))
	snap := h.ctrl.Snapshot()
	assert.Equal(t, "m1", snap.SelectedMenuID)
	require.NotNil(t, snap.MenuDetail)
	assert.Len(t, snap.MenuDetail.Data, 2)

	// a second load keeps the existing selection
	require.NoError(t, h.ctrl.SelectMenu(t.Context(), "m2"))
	require.NoError(t, h.ctrl.LoadMenuSummaries(t.Context()))
	assert.Equal(t, "m2", h.ctrl.Snapshot().SelectedMenuID)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	h := newHarness(t)

	err := h.ctrl.Login(t.Context(), "kiosk_user", "wrong")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAuth))
	assert.Equal(t, msgAuthFailed, h.ctrl.Status())
	assert.False(t, h.ctrl.IsAuthenticated())
	assert.False(t, h.tokens.HasSession(t.Context()))
}

func TestSignUp_Authenticates(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.ctrl.SignUp(t.Context(), " Kiosk ", "kiosk_user", "pw"))
	assert.True(t, h.ctrl.IsAuthenticated())
	assert.Equal(t, 1, h.api.count("POST /user/signup"))
}

func TestLogin_ReplacesPreviousAccountState(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)
	require.NoError(t, h.ctrl.LoadTopGames(t.Context()))
	require.Equal(t, PhaseRunning, h.ctrl.Phase())

	require.NoError(t, h.ctrl.SignUp(t.Context(), "Other", "other_user", "pw"))

	snap := h.ctrl.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, ViewHome, snap.View)
	assert.Nil(t, snap.CurrentOrder)
	assert.Nil(t, snap.MenuDetail)
	assert.Empty(t, snap.SelectedMenuID)
	assert.Empty(t, snap.TopGames)

	// the old round's countdown is gone, so nothing ends the other account's game
	h.clock.Advance(2 * time.Minute)
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, h.api.count("POST /game/end"))
}

func TestNewController_RestoresStoredSession(t *testing.T) {
	tokens := tokenstore.NewTokens(tokenstore.NewMemory())
	require.NoError(t, tokens.Save(t.Context(), "a1", "r1"))

	ctrl := NewController(oa.NewOrderAloneClient("http://127.0.0.1:0", tokens), tokens)
	defer ctrl.Close()
	assert.True(t, ctrl.IsAuthenticated())
}

func TestLogout_ClearsEverythingAndIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)
	require.NoError(t, h.ctrl.Bootstrap(t.Context()))

	require.NoError(t, h.ctrl.Logout(t.Context()))
	require.NoError(t, h.ctrl.Logout(t.Context()))

	snap := h.ctrl.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Equal(t, ViewHome, snap.View)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.Menus)
	assert.Empty(t, snap.SelectedMenuID)
	assert.Nil(t, snap.MenuDetail)
	assert.Nil(t, snap.CurrentOrder)
	assert.Empty(t, snap.GameID)
	assert.Empty(t, snap.TopGames)
	assert.Nil(t, snap.Profile)
	assert.False(t, h.tokens.HasSession(t.Context()))
	assert.Zero(t, h.api.count("POST /game/end"), "logout abandons the round silently")
}

func TestLoadMenuDetail_EmptyIDClearsDetail(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	require.NoError(t, h.ctrl.LoadMenuSummaries(t.Context()))
	require.NotNil(t, h.ctrl.Snapshot().MenuDetail)

	require.NoError(t, h.ctrl.LoadMenuDetail(t.Context(), ""))
	assert.Nil(t, h.ctrl.Snapshot().MenuDetail)
}

func TestLoadMenuSummaries_FailureIsCatalogError(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.set(func(f *fakeAPI) { f.failures["GET /menu/summary"] = http.StatusInternalServerError })

	err := h.ctrl.LoadMenuSummaries(t.Context())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindCatalog))
	assert.Equal(t, msgMenusUnavailable, h.ctrl.Status())
	assert.True(t, h.ctrl.IsAuthenticated(), "catalog failures are not fatal")
}

func TestStartGame_EntersRunningWithFullClock(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)

	snap := h.ctrl.Snapshot()
	assert.Equal(t, PhaseRunning, snap.Phase)
	assert.Equal(t, ViewKiosk, snap.View)
	assert.Equal(t, 60, snap.Remaining)
	assert.Equal(t, "g1", snap.GameID)
	require.NotNil(t, snap.CurrentOrder)
	assert.Equal(t, "o1", snap.CurrentOrder.ID)
	assert.NotNil(t, snap.MenuDetail)
}

func TestStartGame_FallsBackToFirstMenu(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	err := h.ctrl.StartGame(t.Context(), "")
	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, msgSelectMenu, h.ctrl.Status())
	assert.Zero(t, h.api.count("POST /game/start"))

	require.NoError(t, h.ctrl.LoadMenuSummaries(t.Context()))
	require.NoError(t, h.ctrl.SelectMenu(t.Context(), ""))
	assert.Empty(t, h.ctrl.Snapshot().SelectedMenuID)

	require.NoError(t, h.ctrl.StartGame(t.Context(), ""))
	snap := h.ctrl.Snapshot()
	assert.Equal(t, PhaseRunning, snap.Phase)
	assert.Equal(t, "m1", snap.SelectedMenuID)
}

func TestStartGame_RejectedWhileRunning(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)

	err := h.ctrl.StartGame(t.Context(), "m1")
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, 1, h.api.count("POST /game/start"))
}

func TestStartGame_FailureIsGameError(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.set(func(f *fakeAPI) { f.failures["POST /game/start"] = http.StatusNotFound })

	err := h.ctrl.StartGame(t.Context(), "m1")
	assert.True(t, IsKind(err, KindGame))
	assert.Equal(t, msgStartFailed, h.ctrl.Status())
	assert.Equal(t, PhaseIdle, h.ctrl.Phase())
}

func TestSubmitAnswer_CorrectAppendsOrderAndAdvances(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)
	h.api.set(func(f *fakeAPI) { f.scoreCorrect = true })

	h.ctrl.ChooseItem("Burger", "Buff Burger")
	h.ctrl.ToggleTopping("Cheese")
	require.NoError(t, h.ctrl.SubmitAnswer(t.Context()))

	h.api.mu.Lock()
	sent := h.api.lastScore
	h.api.mu.Unlock()
	assert.Equal(t, oa.ScoreRequest{
		OrderID:      "o1",
		GameID:       "g1",
		Category:     "Burger",
		MenuName:     "Buff Burger",
		ToppingNames: []string{"Cheese"},
	}, sent)

	snap := h.ctrl.Snapshot()
	require.Len(t, snap.SuccessfulOrders, 1)
	assert.Equal(t, "o1", snap.SuccessfulOrders[0].ID)
	require.NotNil(t, snap.CurrentOrder)
	assert.Equal(t, "o2", snap.CurrentOrder.ID)
	assert.Equal(t, msgCorrect, snap.Status)
	assert.Equal(t, AnswerView{Toppings: []string{}}, snap.Answer)
}

func TestSubmitAnswer_SuccessfulOrdersDeduplicated(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)
	h.api.set(func(f *fakeAPI) {
		f.scoreCorrect = true
		f.nextOrderID = "o1"
	})

	for i := 0; i < 3; i++ {
		h.ctrl.ChooseItem("Burger", "Buff Burger")
		require.NoError(t, h.ctrl.SubmitAnswer(t.Context()))
	}

	assert.Len(t, h.ctrl.Snapshot().SuccessfulOrders, 1)
}

func TestSubmitAnswer_WrongShowsExpectedAndStillAdvances(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)

	h.ctrl.ChooseItem("Drink", "Cola")
	require.NoError(t, h.ctrl.SubmitAnswer(t.Context()))

	snap := h.ctrl.Snapshot()
	assert.Equal(t, "Wrong! Expected: Burger / Buff Burger", snap.Status)
	assert.Empty(t, snap.SuccessfulOrders)
	assert.Equal(t, "o2", snap.CurrentOrder.ID)
	assert.Empty(t, snap.Answer.Category)
	assert.Equal(t, 1, h.api.count("POST /order"))
}

func TestSubmitAnswer_LateResultKeepsGameOverStatus(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)
	h.api.set(func(f *fakeAPI) {
		f.scoreCorrect = true
		f.onScore = func() { _ = h.ctrl.EndGame(t.Context()) }
	})

	h.ctrl.ChooseItem("Burger", "Buff Burger")
	require.NoError(t, h.ctrl.SubmitAnswer(t.Context()))

	snap := h.ctrl.Snapshot()
	assert.Equal(t, PhaseEnded, snap.Phase)
	assert.Equal(t, "Game over! Final score: 7", snap.Status)
	assert.Len(t, snap.SuccessfulOrders, 1)
	assert.Zero(t, h.api.count("POST /order"), "no next order once the round is over")
}

func TestSubmitAnswer_IncompleteAnswerMakesNoCall(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)

	err := h.ctrl.SubmitAnswer(t.Context())
	assert.True(t, IsKind(err, KindValidation))

	h.ctrl.ChooseCategory("Burger")
	err = h.ctrl.SubmitAnswer(t.Context())
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, msgSelectAnswer, h.ctrl.Status())
	assert.Equal(t, "Burger", h.ctrl.Snapshot().Answer.Category, "a rejected submission keeps the answer")

	assert.Zero(t, h.api.count("POST /order/score"))
}

func TestSubmitAnswer_RejectedWhenNotRunning(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	h.ctrl.ChooseItem("Burger", "Buff Burger")
	err := h.ctrl.SubmitAnswer(t.Context())
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, msgNoGame, h.ctrl.Status())

	require.NoError(t, h.ctrl.LoadMenuSummaries(t.Context()))
	require.NoError(t, h.ctrl.StartGame(t.Context(), "m1"))
	require.NoError(t, h.ctrl.EndGame(t.Context()))

	h.ctrl.ChooseItem("Burger", "Buff Burger")
	err = h.ctrl.SubmitAnswer(t.Context())
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, msgGameEnded, h.ctrl.Status())
	assert.Zero(t, h.api.count("POST /order/score"))
}

func TestSubmitAnswer_ScoringFailureClearsAnswer(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)
	h.api.set(func(f *fakeAPI) { f.failures["POST /order/score"] = http.StatusInternalServerError })

	h.ctrl.ChooseItem("Burger", "Buff Burger")
	err := h.ctrl.SubmitAnswer(t.Context())
	assert.True(t, IsKind(err, KindScoring))
	assert.Equal(t, msgScoringFailed, h.ctrl.Status())
	assert.Empty(t, h.ctrl.Snapshot().Answer.Item)
	assert.Equal(t, PhaseRunning, h.ctrl.Phase())
}

func TestTick_ReachingZeroEndsExactlyOnce(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)

	for i := 1; i <= 75; i++ {
		h.ctrl.Tick(t.Context())
		remaining := h.ctrl.Snapshot().Remaining
		want := 60 - i
		if want < 0 {
			want = 0
		}
		require.Equal(t, want, remaining, "tick %d", i)
	}

	snap := h.ctrl.Snapshot()
	assert.Equal(t, PhaseEnded, snap.Phase)
	assert.Equal(t, ViewScore, snap.View)
	require.NotNil(t, snap.FinalScore)
	assert.Equal(t, 7, *snap.FinalScore)
	assert.Equal(t, "Game over! Final score: 7", snap.Status)
	assert.Equal(t, 1, h.api.count("POST /game/end"))
	assert.Len(t, snap.MyGames, 1)
	require.NotNil(t, snap.BestGame)
	assert.Equal(t, 7, snap.BestGame.Score)
}

func TestTick_IgnoresTicksForAnotherGame(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)

	h.ctrl.tickRound(t.Context(), "g-old")
	assert.Equal(t, 60, h.ctrl.Snapshot().Remaining)

	h.ctrl.tickRound(t.Context(), "g1")
	assert.Equal(t, 59, h.ctrl.Snapshot().Remaining)
}

func TestCountdown_AutoEndsWithClock(t *testing.T) {
	h := newHarness(t, WithGameSeconds(3))
	h.startGame(t)

	for want := 2; want >= 0; want-- {
		require.NoError(t, h.clock.BlockUntilContext(t.Context(), 1))
		h.clock.Advance(time.Second)
		require.Eventually(t, func() bool {
			return h.ctrl.Snapshot().Remaining == want
		}, time.Second, 5*time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return h.ctrl.Phase() == PhaseEnded
	}, time.Second, 5*time.Millisecond)

	h.clock.Advance(5 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, h.api.count("POST /game/end"))
}

func TestEndGame_ExplicitEndAndRetry(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)
	h.api.set(func(f *fakeAPI) { f.failures["POST /game/end"] = http.StatusInternalServerError })

	err := h.ctrl.EndGame(t.Context())
	assert.True(t, IsKind(err, KindGame))
	snap := h.ctrl.Snapshot()
	assert.Equal(t, PhaseEnded, snap.Phase)
	assert.Nil(t, snap.FinalScore)

	h.api.set(func(f *fakeAPI) { delete(f.failures, "POST /game/end") })
	require.NoError(t, h.ctrl.EndGame(t.Context()))
	snap = h.ctrl.Snapshot()
	require.NotNil(t, snap.FinalScore)
	assert.Equal(t, 7, *snap.FinalScore)

	require.NoError(t, h.ctrl.EndGame(t.Context()))
	assert.Equal(t, 2, h.api.count("POST /game/end"))
}

func TestReset_ReturnsToIdle(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)
	require.NoError(t, h.ctrl.EndGame(t.Context()))

	h.ctrl.Reset()

	snap := h.ctrl.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, ViewHome, snap.View)
	assert.Nil(t, snap.FinalScore)
	assert.Nil(t, snap.CurrentOrder)
	assert.Empty(t, snap.GameID)
	assert.True(t, snap.Authenticated)
}

func TestExpiredAccessToken_RefreshedOnce(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.set(func(f *fakeAPI) { f.validToken = "a2" })

	require.NoError(t, h.ctrl.LoadMenuSummaries(t.Context()))

	assert.Equal(t, 1, h.api.count("POST /user/refresh"))
	assert.Equal(t, 2, h.api.count("GET /menu/summary"))
	access, _ := h.tokens.AccessToken(t.Context())
	assert.Equal(t, "a2", access)
	assert.True(t, h.ctrl.IsAuthenticated())
}

func TestSecondUnauthorizedAfterRefresh_NotRetriedAgain(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.set(func(f *fakeAPI) {
		f.validToken = "never"
		f.keepToken = true
	})

	err := h.ctrl.LoadMenuSummaries(t.Context())
	assert.True(t, IsKind(err, KindCatalog))
	assert.Equal(t, 1, h.api.count("POST /user/refresh"))
	assert.Equal(t, 2, h.api.count("GET /menu/summary"))
}

func TestRefreshFailure_LeavesSessionUnauthenticated(t *testing.T) {
	h := newHarness(t)
	h.startGame(t)
	h.api.set(func(f *fakeAPI) {
		f.validToken = "a2"
		f.acceptRefresh = false
	})

	h.ctrl.ChooseItem("Burger", "Buff Burger")
	err := h.ctrl.SubmitAnswer(t.Context())
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAuth))

	snap := h.ctrl.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, msgSessionExpired, snap.Status)
	assert.False(t, h.tokens.HasSession(t.Context()))
	assert.Equal(t, 1, h.api.count("POST /user/refresh"))
}

func TestBootstrap_LoadsHomeScreen(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	require.NoError(t, h.ctrl.Bootstrap(t.Context()))

	snap := h.ctrl.Snapshot()
	assert.Len(t, snap.Menus, 2)
	assert.Len(t, snap.TopGames, 1)
	assert.Len(t, snap.MyGames, 1)
	require.NotNil(t, snap.Profile)
	assert.Equal(t, "kiosk_user", snap.Profile.AccountID)
}

func TestRecords_FailuresStayInTheirSlots(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	h.api.set(func(f *fakeAPI) { f.failures["GET /game/top"] = http.StatusInternalServerError })

	err := h.ctrl.LoadTopGames(t.Context())
	require.Error(t, err)

	snap := h.ctrl.Snapshot()
	assert.Equal(t, msgTopUnavailable, snap.TopError)
	assert.Empty(t, snap.Status)

	h.api.set(func(f *fakeAPI) { delete(f.failures, "GET /game/top") })
	require.NoError(t, h.ctrl.LoadTopGames(t.Context()))
	assert.Empty(t, h.ctrl.Snapshot().TopError)
}

func TestOnChange_ReceivesSnapshots(t *testing.T) {
	var views []View
	h := newHarness(t, WithOnChange(func(s Snapshot) {
		views = append(views, s.View)
	}))
	h.startGame(t)

	assert.Contains(t, views, ViewKiosk)
}

func TestMenuItems(t *testing.T) {
	h := newHarness(t)
	h.login(t)
	require.NoError(t, h.ctrl.LoadMenuSummaries(t.Context()))
	menu := h.ctrl.Snapshot().MenuDetail

	assert.Len(t, MenuItems(menu, ""), 3)
	burgers := MenuItems(menu, "Burger")
	require.Len(t, burgers, 2)
	assert.Equal(t, "Burger", burgers[0].Category)
	assert.Len(t, ToppingGroups(menu, "Burger"), 1)
	assert.Nil(t, ToppingGroups(menu, "Nope"))
	assert.Nil(t, MenuItems(nil, "Burger"))
}
