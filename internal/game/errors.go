package game

import (
	"errors"
	"fmt"
)

var (
	ErrGameEnded      = errors.New("game has ended")
	ErrMissingScore   = errors.New("missing score")
	ErrInvalidScore   = errors.New("invalid score")
	ErrTooManyPlayers = errors.New("too many players")
	ErrTooFewPlayers  = errors.New("too few players")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrEmptyName      = errors.New("empty player name")
	ErrNoRounds       = errors.New("no rounds to undo")
	ErrHistoryEmpty   = errors.New("history is already empty")
	ErrInvalidRound   = errors.New("invalid round")
	ErrSubmitTooSoon  = errors.New("round submitted too soon")
)

// ScoreError reports a player whose score input is not an integer
type ScoreError struct {
	PlayerID   string
	PlayerName string
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("invalid score for player %s", e.PlayerID)
}

func (e *ScoreError) Unwrap() error {
	return ErrInvalidScore
}

// AlertMessage returns the user-facing message for an error returned by a
// transition, or "" when the error should not be shown.
func AlertMessage(err error) string {
	var scoreErr *ScoreError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &scoreErr):
		return fmt.Sprintf("Please enter an integer score for %s.", scoreErr.PlayerName)
	case errors.Is(err, ErrGameEnded):
		return "Game has ended. Start a New Game to play again."
	case errors.Is(err, ErrMissingScore):
		return "Please enter a score for every player (0 is allowed)."
	case errors.Is(err, ErrTooFewPlayers):
		return "Please add at least 2 players."
	case errors.Is(err, ErrTooManyPlayers):
		return "Max 8 players."
	case errors.Is(err, ErrNoRounds):
		return "No rounds to undo."
	case errors.Is(err, ErrHistoryEmpty):
		return "History is already empty."
	case errors.Is(err, ErrInvalidRound):
		return "Could not edit that round."
	default:
		return ""
	}
}
