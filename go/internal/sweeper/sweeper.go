// Package sweeper closes games nobody ended.
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Closer ends open games older than maxAge.
type Closer interface {
	CloseAbandoned(ctx context.Context, maxAge time.Duration) (int, error)
}

type Config struct {
	Interval time.Duration
	MaxAge   time.Duration
}

// ConfigFor derives the sweep settings from the round length: a game is abandoned once it
// has been open for twice as long as a round lasts.
func ConfigFor(gameLength, interval time.Duration) Config {
	if interval <= 0 {
		interval = time.Minute
	}
	return Config{Interval: interval, MaxAge: 2 * gameLength}
}

type Sweeper struct {
	closer    Closer
	cfg       Config
	scheduler gocron.Scheduler
}

func New(closer Closer, cfg Config, clock clockwork.Clock) (*Sweeper, error) {
	if cfg.Interval <= 0 || cfg.MaxAge <= 0 {
		return nil, fmt.Errorf("sweeper needs a positive interval and max age, got %s and %s", cfg.Interval, cfg.MaxAge)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	scheduler, err := gocron.NewScheduler(gocron.WithClock(clock))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Sweeper{closer: closer, cfg: cfg, scheduler: scheduler}, nil
}

// Start schedules the sweep every Interval. Runs stop once ctx is done or Stop is called.
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(func() {
			if _, err := s.Sweep(ctx); err != nil {
				log.Error().Err(err).Msg("abandoned game sweep failed")
			}
		}),
		gocron.WithName("close-abandoned-games"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}

	s.scheduler.Start()
	log.Info().
		Dur("interval", s.cfg.Interval).
		Dur("max_age", s.cfg.MaxAge).
		Msg("abandoned game sweeper started")
	return nil
}

// Sweep runs one pass.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	closed, err := s.closer.CloseAbandoned(ctx, s.cfg.MaxAge)
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		log.Info().Int("closed", closed).Msg("closed abandoned games")
	}
	return closed, nil
}

func (s *Sweeper) Stop() error {
	return s.scheduler.Shutdown()
}
