package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/orderalone/go/internal/outbox"
)

// GameEvent is what websocket clients receive
type GameEvent struct {
	ID        string          `json:"id"`
	GameID    string          `json:"game_id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

type EventType string

const (
	EventTypeGameStarted EventType = outbox.EventGameStarted
	EventTypeOrderScored EventType = outbox.EventOrderScored
	EventTypeGameEnded   EventType = outbox.EventGameEnded
)

// RankingChannel receives every game.ended event regardless of game.
const RankingChannel = "ranking"

// GameChannel is the channel name for one game's events.
func GameChannel(gameID uuid.UUID) string {
	return "game:" + gameID.String()
}

// FromEnvelope converts a published outbox envelope.
func FromEnvelope(env outbox.Envelope) (*GameEvent, error) {
	var eventType EventType
	switch env.EventType {
	case outbox.EventGameStarted:
		eventType = EventTypeGameStarted
	case outbox.EventOrderScored:
		eventType = EventTypeOrderScored
	case outbox.EventGameEnded:
		eventType = EventTypeGameEnded
	default:
		return nil, fmt.Errorf("unknown event type: %s", env.EventType)
	}

	if _, err := uuid.Parse(env.GameID); err != nil {
		return nil, fmt.Errorf("parse game ID: %w", err)
	}

	return &GameEvent{
		ID:        env.EventID,
		GameID:    env.GameID,
		Type:      eventType,
		Timestamp: env.Timestamp,
		Data:      env.Payload,
	}, nil
}

// Channels lists where an event is delivered.
func (e *GameEvent) Channels() []string {
	channels := []string{"game:" + e.GameID}
	if e.Type == EventTypeGameEnded {
		channels = append(channels, RankingChannel)
	}
	return channels
}
