package kiosk

import "time"

// DefaultGameSeconds is the length of one round
const DefaultGameSeconds = 60

// Phase is the game state of the controller.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	// PhaseEnding: the countdown is stopped and the final score request is in flight.
	PhaseEnding
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnding:
		return "ending"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Round is one timed play session
type Round struct {
	GameID     string
	MenuID     string
	StartedAt  time.Time
	Seconds    int
	Ticks      int
	Phase      Phase
	FinalScore *int
}

func newRound(gameID, menuID string, startedAt time.Time, seconds int) *Round {
	return &Round{
		GameID:    gameID,
		MenuID:    menuID,
		StartedAt: startedAt,
		Seconds:   seconds,
		Phase:     PhaseRunning,
	}
}

// Remaining is max(0, Seconds-Ticks)
func (r *Round) Remaining() int {
	if rem := r.Seconds - r.Ticks; rem > 0 {
		return rem
	}
	return 0
}

// tick counts one second of a running round. It returns true exactly once: on the tick
// that reaches zero, which also moves the round to PhaseEnding.
func (r *Round) tick() bool {
	if r.Phase != PhaseRunning {
		return false
	}
	r.Ticks++
	if r.Remaining() == 0 {
		r.Phase = PhaseEnding
		return true
	}
	return false
}

// beginEnd moves a running round, or an ended round still missing its score, to PhaseEnding.
func (r *Round) beginEnd() bool {
	switch {
	case r.Phase == PhaseRunning:
	case r.Phase == PhaseEnded && r.FinalScore == nil:
	default:
		return false
	}
	r.Phase = PhaseEnding
	return true
}
