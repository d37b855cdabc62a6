package kiosk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	oa "github.com/mcdev12/orderalone/go/clients/orderalone_client"
	"github.com/mcdev12/orderalone/go/internal/tokenstore"
)

const menuDetailJSON = `{
  "id": "m1", "name": "Set A", "description": "burgers", "level": 1,
  "data": [
    {"kategorie": "Burger",
     "menus": [{"name": "Buff Burger", "img": ""}, {"name": "Chicken Burger", "img": ""}],
     "toping": [{"name": "Extra", "items": [{"name": "Cheese", "img": ""}, {"name": "Bacon", "img": ""}]}]},
    {"kategorie": "Drink", "menus": [{"name": "Cola", "img": ""}], "toping": []}
  ]
}`

// fakeAPI is an in-process Order Alone server with switchable behavior.
type fakeAPI struct {
	*httptest.Server

	mu            sync.Mutex
	calls         map[string]int
	validToken    string
	acceptRefresh bool
	refreshedTo   string
	keepToken     bool
	scoreCorrect  bool
	endScore      int
	nextOrderID   string
	orderSeq      int
	failures      map[string]int
	lastScore     oa.ScoreRequest
	// onScore runs while a score request is in flight, with the fake unlocked
	onScore func()
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{
		calls:         make(map[string]int),
		validToken:    "a1",
		acceptRefresh: true,
		refreshedTo:   "a2",
		endScore:      7,
		failures:      make(map[string]int),
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[route]
}

func (f *fakeAPI) set(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[route]++

	if status, ok := f.failures[route]; ok {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"detail":"forced failure"}`))
		return
	}

	public := route == "POST /user/login" || route == "POST /user/signup" || route == "POST /user/refresh"
	if !public && r.Header.Get("Authorization") != "Bearer "+f.validToken {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
		return
	}

	switch route {
	case "POST /user/login":
		var body oa.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.AccountID != "kiosk_user" || body.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, `{"access_token":"a1","refresh_token":"r1","token_type":"bearer"}`)
	case "POST /user/signup":
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, `{"access_token":"a1","refresh_token":"r1","token_type":"bearer"}`)
	case "POST /user/refresh":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if !f.acceptRefresh || body["refresh_token"] != "r1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !f.keepToken {
			f.validToken = f.refreshedTo
		}
		writeJSON(w, fmt.Sprintf(`{"access_token":%q}`, f.refreshedTo))
	case "GET /user/me":
		writeJSON(w, `{"name":"Kiosk","account_id":"kiosk_user"}`)
	case "GET /menu/summary":
		writeJSON(w, `[{"id":"m1","name":"Set A","description":""},{"id":"m2","name":"Set B","description":""}]`)
	case "GET /menu/m1", "GET /menu/m2":
		writeJSON(w, menuDetailJSON)
	case "POST /game/start":
		writeJSON(w, `{"order":{"game_id":"g1","id":"o1","menu_id":"m1","selection":{"category":"Burger","item":{"name":"Buff Burger"}}}}`)
	case "POST /game/end":
		writeJSON(w, fmt.Sprintf(`{"game_id":"g1","score":%d}`, f.endScore))
	case "POST /order":
		id := f.nextOrderID
		if id == "" {
			f.orderSeq++
			id = fmt.Sprintf("o%d", f.orderSeq+1)
		}
		writeJSON(w, fmt.Sprintf(`{"game_id":"g1","id":%q,"menu_id":"m1","selection":{"category":"Drink","item":{"name":"Cola"}}}`, id))
	case "POST /order/score":
		_ = json.NewDecoder(r.Body).Decode(&f.lastScore)
		if hook := f.onScore; hook != nil {
			f.mu.Unlock()
			hook()
			f.mu.Lock()
		}
		writeJSON(w, fmt.Sprintf(`{"order_id":%q,"correct":%t,"expected":{"category":"Burger","menu_name":"Buff Burger","topping_names":[]}}`,
			f.lastScore.OrderID, f.scoreCorrect))
	case "GET /game/top":
		writeJSON(w, `[{"id":"g0","score":12,"user_name":"Top"}]`)
	case "GET /game":
		writeJSON(w, `[{"id":"g1","score":7,"user_name":"Kiosk"}]`)
	case "GET /game/best":
		writeJSON(w, `{"id":"g1","score":7,"user_name":"Kiosk"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

type harness struct {
	api    *fakeAPI
	tokens *tokenstore.Tokens
	clock  *clockwork.FakeClock
	ctrl   *Controller
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	api := newFakeAPI(t)
	tokens := tokenstore.NewTokens(tokenstore.NewMemory())
	clock := clockwork.NewFakeClock()

	client := oa.NewOrderAloneClient(api.URL, tokens)
	ctrl := NewController(client, tokens, append([]Option{WithClock(clock)}, opts...)...)
	t.Cleanup(ctrl.Close)

	return &harness{api: api, tokens: tokens, clock: clock, ctrl: ctrl}
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	require.NoError(t, h.ctrl.Login(t.Context(), "kiosk_user", "pw"))
}

func (h *harness) startGame(t *testing.T) {
	t.Helper()
	h.login(t)
	require.NoError(t, h.ctrl.LoadMenuSummaries(t.Context()))
	require.NoError(t, h.ctrl.StartGame(t.Context(), "m1"))
}
