package kiosk

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/orderalone/go/clients"
	oa "github.com/mcdev12/orderalone/go/clients/orderalone_client"
	"github.com/mcdev12/orderalone/go/internal/tokenstore"
)

// API defines what the controller needs from the Order Alone server
type API interface {
	Login(ctx context.Context, req oa.LoginRequest) (*oa.TokenResponse, error)
	SignUp(ctx context.Context, req oa.SignUpRequest) (*oa.TokenResponse, error)
	Me(ctx context.Context) (*oa.Profile, error)
	MenuSummaries(ctx context.Context) ([]oa.MenuSummary, error)
	Menu(ctx context.Context, menuID string) (*oa.Menu, error)
	StartGame(ctx context.Context, menuID string) (*oa.Order, error)
	EndGame(ctx context.Context, gameID string) (*oa.GameScore, error)
	NextOrder(ctx context.Context, gameID string) (*oa.Order, error)
	ScoreOrder(ctx context.Context, req oa.ScoreRequest) (*oa.ScoreResult, error)
	TopGames(ctx context.Context, limit int) ([]oa.GameRecord, error)
	MyGames(ctx context.Context, limit int) ([]oa.GameRecord, error)
	BestGame(ctx context.Context) (*oa.GameRecord, error)
}

var _ API = (*oa.OrderAloneClient)(nil)

// View is the screen the view layer should show
type View string

const (
	ViewHome  View = "home"
	ViewKiosk View = "kiosk"
	ViewScore View = "score"
)

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces the real clock, mainly for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

func WithGameSeconds(seconds int) Option {
	return func(c *Controller) { c.gameSeconds = seconds }
}

func WithTickInterval(interval time.Duration) Option {
	return func(c *Controller) { c.tickInterval = interval }
}

func WithRecordLimit(limit int) Option {
	return func(c *Controller) { c.recordLimit = limit }
}

// WithOnChange registers a callback that receives a snapshot after every state change.
// It runs on the goroutine that made the change, without the controller lock held.
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller is the kiosk Session Controller. It owns the session tokens, the menu catalog
// and the game state machine, and mediates every network call and countdown tick.
// Network calls run outside the lock; results that belong to an older session (before a
// logout) or another game are dropped.
type Controller struct {
	api    API
	tokens *tokenstore.Tokens
	clock  clockwork.Clock
	logger zerolog.Logger

	gameSeconds  int
	tickInterval time.Duration
	recordLimit  int
	onChange     func(Snapshot)

	mu            sync.Mutex
	epoch         uint64
	authenticated bool
	view          View
	status        string

	menus          []oa.MenuSummary
	selectedMenuID string
	menuDetail     *oa.Menu

	round            *Round
	order            *oa.Order
	successfulOrders []oa.Order
	answer           *AnswerBuilder
	countdown        *countdown
	roundCancel      context.CancelFunc

	topGames  []oa.GameRecord
	myGames   []oa.GameRecord
	bestGame  *oa.GameRecord
	profile   *oa.Profile
	topError  string
	myError   string
	bestError string
}

// NewController creates a controller and restores the session from stored tokens
func NewController(api API, tokens *tokenstore.Tokens, opts ...Option) *Controller {
	c := &Controller{
		api:          api,
		tokens:       tokens,
		clock:        clockwork.NewRealClock(),
		logger:       log.With().Str("component", "kiosk").Logger(),
		gameSeconds:  DefaultGameSeconds,
		tickInterval: time.Second,
		recordLimit:  oa.DefaultRecordLimit,
		view:         ViewHome,
		answer:       NewAnswerBuilder(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.authenticated = tokens.HasSession(context.Background())
	return c
}

// Close stops the countdown and abandons any running round.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopRoundLocked()
}

// Status returns the current status message
func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Phase returns the game phase, PhaseIdle when no round exists
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phaseLocked()
}

func (c *Controller) phaseLocked() Phase {
	if c.round == nil {
		return PhaseIdle
	}
	return c.round.Phase
}

func (c *Controller) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authenticated
}

func (c *Controller) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

func (c *Controller) changed() {
	if c.onChange == nil {
		return
	}
	c.onChange(c.Snapshot())
}

func (c *Controller) setStatus(status string) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
	c.changed()
}

// fail converts err into a controller error, shows its status and, when the refresh
// token was rejected, drops the session.
func (c *Controller) fail(epoch uint64, kind Kind, status string, err error) error {
	if errors.Is(err, clients.ErrSessionExpired) {
		c.expireSession(epoch)
		return newError(KindAuth, msgSessionExpired, err)
	}

	c.logger.Warn().Err(err).Str("kind", kind.String()).Msg(status)

	c.mu.Lock()
	if c.epoch == epoch {
		c.status = status
	}
	c.mu.Unlock()
	c.changed()

	return newError(kind, status, err)
}

func (c *Controller) expireSession(epoch uint64) {
	c.mu.Lock()
	if c.epoch != epoch {
		c.mu.Unlock()
		return
	}
	c.clearLocked()
	c.status = msgSessionExpired
	c.mu.Unlock()

	c.logger.Info().Msg("refresh token rejected, session cleared")
	c.changed()
}

// clearLocked drops every piece of session state and invalidates in-flight results.
func (c *Controller) clearLocked() {
	c.stopRoundLocked()
	c.epoch++
	c.authenticated = false
	c.view = ViewHome
	c.status = ""

	c.menus = nil
	c.selectedMenuID = ""
	c.menuDetail = nil

	c.round = nil
	c.order = nil
	c.successfulOrders = nil
	c.answer.Reset()

	c.topGames = nil
	c.myGames = nil
	c.bestGame = nil
	c.profile = nil
	c.topError = ""
	c.myError = ""
	c.bestError = ""
}

func (c *Controller) stopCountdownLocked() {
	if c.countdown != nil {
		c.countdown.stop()
		c.countdown = nil
	}
}

func (c *Controller) stopRoundLocked() {
	c.stopCountdownLocked()
	if c.roundCancel != nil {
		c.roundCancel()
		c.roundCancel = nil
	}
}

func (c *Controller) startCountdownLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	c.roundCancel = cancel
	gameID := c.round.GameID
	c.countdown = startCountdown(c.clock, c.tickInterval, func() {
		c.tickRound(ctx, gameID)
	})
}
