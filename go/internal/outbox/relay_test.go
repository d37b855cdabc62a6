package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/orderalone/go/internal/apperr"
)

type fakeStore struct {
	mu     sync.Mutex
	events []Event
	sent   map[uuid.UUID]bool
}

func newFakeStore(events ...Event) *fakeStore {
	return &fakeStore{events: events, sent: make(map[uuid.UUID]bool)}
}

func (f *fakeStore) FetchUnsent(_ context.Context, limit int32) ([]Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Event
	for _, e := range f.events {
		if !f.sent[e.ID] && int32(len(out)) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) FetchByID(_ context.Context, id uuid.UUID) (*Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.ID == id && !f.sent[id] {
			event := e
			return &event, nil
		}
	}
	return nil, fmt.Errorf("%w: outbox event %s", apperr.ErrNotFound, id)
}

func (f *fakeStore) MarkSent(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[id] = true
	return nil
}

func (f *fakeStore) isSent(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[id]
}

type fakePublisher struct {
	mu        sync.Mutex
	failures  int
	published []Event
	attempts  int
}

func (f *fakePublisher) Publish(_ context.Context, event Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.failures > 0 {
		f.failures--
		return errors.New("nats unavailable")
	}
	f.published = append(f.published, event)
	return nil
}

func testEvent(eventType string) Event {
	return Event{
		ID:        uuid.New(),
		GameID:    uuid.New(),
		EventType: eventType,
		Payload:   json.RawMessage(`{"score":3}`),
	}
}

func testConfig() ListenerConfig {
	cfg := DefaultListenerConfig()
	cfg.MaxRetries = 2
	cfg.RetryDelay = time.Second
	return cfg
}

func TestHandleNotification(t *testing.T) {
	event := testEvent(EventGameEnded)
	store := newFakeStore(event)
	pub := &fakePublisher{}
	relay := NewRelay(store, pub, testConfig(), clockwork.NewFakeClock())

	require.NoError(t, relay.HandleNotification(t.Context(), event.ID.String()))
	assert.True(t, store.isSent(event.ID))
	require.Len(t, pub.published, 1)

	// duplicate notification after a drain is a no-op
	require.NoError(t, relay.HandleNotification(t.Context(), event.ID.String()))
	assert.Len(t, pub.published, 1)

	assert.Error(t, relay.HandleNotification(t.Context(), "not-a-uuid"))
}

func TestDrainUnsent(t *testing.T) {
	events := []Event{testEvent(EventGameStarted), testEvent(EventOrderScored), testEvent(EventGameEnded)}
	store := newFakeStore(events...)
	pub := &fakePublisher{}
	cfg := testConfig()
	cfg.BatchSize = 2
	relay := NewRelay(store, pub, cfg, clockwork.NewFakeClock())

	sent, err := relay.DrainUnsent(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	sent, err = relay.DrainUnsent(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	for _, e := range events {
		assert.True(t, store.isSent(e.ID))
	}
	assert.Equal(t, EventGameStarted, pub.published[0].EventType)
}

func TestPublishWithRetry_RecoversAfterBackoff(t *testing.T) {
	event := testEvent(EventOrderScored)
	store := newFakeStore(event)
	pub := &fakePublisher{failures: 2}
	clock := clockwork.NewFakeClock()
	relay := NewRelay(store, pub, testConfig(), clock)

	done := make(chan error, 1)
	go func() { done <- relay.HandleNotification(context.Background(), event.ID.String()) }()

	for _, delay := range []time.Duration{time.Second, 2 * time.Second} {
		require.NoError(t, clock.BlockUntilContext(t.Context(), 1))
		clock.Advance(delay)
	}

	require.NoError(t, <-done)
	assert.Equal(t, 3, pub.attempts)
	assert.True(t, store.isSent(event.ID))
}

func TestPublishWithRetry_GivesUp(t *testing.T) {
	event := testEvent(EventOrderScored)
	store := newFakeStore(event)
	pub := &fakePublisher{failures: 10}
	clock := clockwork.NewFakeClock()
	relay := NewRelay(store, pub, testConfig(), clock)

	done := make(chan error, 1)
	go func() { done <- relay.HandleNotification(context.Background(), event.ID.String()) }()

	for _, delay := range []time.Duration{time.Second, 2 * time.Second} {
		require.NoError(t, clock.BlockUntilContext(t.Context(), 1))
		clock.Advance(delay)
	}

	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.False(t, store.isSent(event.ID))
}

func TestEnvelope(t *testing.T) {
	event := testEvent(EventGameEnded)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("KST", 9*3600))

	env := NewEnvelope(event, now)
	assert.Equal(t, event.ID.String(), env.EventID)
	assert.Equal(t, event.GameID.String(), env.GameID)
	assert.Equal(t, time.UTC, env.Timestamp.Location())
	assert.Equal(t, "orderalone.games.game.ended", Subject(SubjectPrefix, event.EventType))

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, fmt.Sprintf(
		`{"eventId":%q,"eventType":"game.ended","gameId":%q,"timestamp":"2024-05-01T03:00:00Z","payload":{"score":3}}`,
		event.ID, event.GameID), string(raw))
}
