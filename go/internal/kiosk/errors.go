package kiosk

import (
	"errors"
	"fmt"
)

// Kind classifies controller failures. None of them is fatal to the session.
type Kind int

const (
	KindAuth Kind = iota + 1
	KindCatalog
	KindGame
	KindValidation
	KindScoring
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth error"
	case KindCatalog:
		return "catalog error"
	case KindGame:
		return "game error"
	case KindValidation:
		return "validation error"
	case KindScoring:
		return "scoring error"
	default:
		return "unknown error"
	}
}

// Status messages shown in the view
const (
	msgMissingCredentials = "enter your account id and password"
	msgAuthFailed         = "login or sign up failed"
	msgSessionExpired     = "session expired, please log in again"
	msgMenusUnavailable   = "could not load the menu list"
	msgMenuUnavailable    = "could not load the menu details"
	msgSelectMenu         = "select a menu"
	msgGameInProgress     = "a game is already running"
	msgStartFailed        = "could not start the game"
	msgEndFailed          = "failed to end the game"
	msgNextOrderFailed    = "could not create the next order"
	msgNoGame             = "start a game first"
	msgSelectAnswer       = "select a category and a menu item"
	msgGameEnded          = "the game has ended"
	msgScoringFailed      = "scoring failed"
	msgCorrect            = "Correct! Moving on to the next order."
	msgWrongFmt           = "Wrong! Expected: %s / %s"
	msgGameOverFmt        = "Game over! Final score: %d"
	msgTopUnavailable     = "could not load the top games"
	msgMineUnavailable    = "could not load your game history"
	msgBestUnavailable    = "could not load your best score"
	msgProfileUnavailable = "could not load your profile"
)

// Error carries the human-readable status the view shows for a failure
type Error struct {
	Kind   Kind
	Status string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a controller error of the given kind.
func IsKind(err error, kind Kind) bool {
	var kerr *Error
	return errors.As(err, &kerr) && kerr.Kind == kind
}

func newError(kind Kind, status string, err error) *Error {
	return &Error{Kind: kind, Status: status, Err: err}
}
