// Package session owns the single AppState of a scorekeeper process. Every
// action runs one transition from package game, then saves the whole state.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/aaronzipp/flip7-scorekeeper/internal/game"
	"github.com/aaronzipp/flip7-scorekeeper/internal/models"
)

const (
	StatusSaved       = "Saved locally on this device."
	StatusSaveBlocked = "Could not save (storage blocked)."
)

// Confirm prompts shown before destructive actions
const (
	ConfirmUndo        = "Undo the last round? This will remove it from history."
	ConfirmClear       = "Clear all round history? (Players will remain.)"
	ConfirmResetScores = "Reset scores and history, but keep the player list?"
	ConfirmNewGame     = "Start a New Game? This will clear players and history."
)

// Prompter is the UI capability the session asks for yes/no confirmation and
// uses to show simple notifications. Both are called synchronously.
type Prompter interface {
	Confirm(message string) bool
	Alert(message string)
}

// Persister saves and loads the whole state
type Persister interface {
	Save(ctx context.Context, state *models.AppState) error
	Load(ctx context.Context) (*models.AppState, error)
}

// Session holds the state and serializes every mutation
type Session struct {
	mu         sync.Mutex
	state      *models.AppState
	persister  Persister
	saveStatus string
	lastSubmit time.Time

	now      func() time.Time
	cooldown time.Duration
	onChange func()
	debug    bool
}

// Option configures a Session
type Option func(*Session)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithSubmitCooldown sets how long repeated round submissions are refused
func WithSubmitCooldown(d time.Duration) Option {
	return func(s *Session) { s.cooldown = d }
}

// WithOnChange registers a hook called after every applied mutation
func WithOnChange(fn func()) Option {
	return func(s *Session) { s.onChange = fn }
}

// WithDebug enables verbose logging
func WithDebug(debug bool) Option {
	return func(s *Session) { s.debug = debug }
}

// Open loads the persisted state, repairs it and saves it back. A load
// failure or malformed blob starts a fresh game instead.
func Open(ctx context.Context, persister Persister, opts ...Option) *Session {
	s := &Session{
		persister: persister,
		now:       time.Now,
		cooldown:  game.SubmitCooldown,
	}
	for _, opt := range opts {
		opt(s)
	}

	state, err := persister.Load(ctx)
	if err != nil {
		log.Printf("session: load failed, starting fresh: %v", err)
	}
	if state == nil {
		state = models.NewAppState()
	}
	game.Repair(state)
	game.EnsureDefaultPlayers(state)
	s.state = state
	s.save(ctx)
	return s
}

// Snapshot returns a copy of the current state for rendering
func (s *Session) Snapshot() *models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SaveStatus returns the passive persistence indicator
func (s *Session) SaveStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveStatus
}

// save writes the state. Failures only change the status line; the session
// carries on in memory.
func (s *Session) save(ctx context.Context) {
	if err := s.persister.Save(ctx, s.state); err != nil {
		log.Printf("session: save failed: %v", err)
		s.saveStatus = StatusSaveBlocked
		return
	}
	s.saveStatus = StatusSaved
}

// apply runs fn under the lock, saving and notifying when it succeeds. A
// failure is reported through the prompter when it has a user-facing message.
func (s *Session) apply(ctx context.Context, p Prompter, op string, fn func(*models.AppState) error) error {
	return s.run(ctx, p, op, true, fn)
}

// applyQuiet is apply without the change notification. Pending inputs are
// not part of the scoreboard.
func (s *Session) applyQuiet(ctx context.Context, p Prompter, op string, fn func(*models.AppState) error) error {
	return s.run(ctx, p, op, false, fn)
}

func (s *Session) run(ctx context.Context, p Prompter, op string, notify bool, fn func(*models.AppState) error) error {
	s.mu.Lock()
	err := fn(s.state)
	if err == nil {
		s.save(ctx)
	}
	s.mu.Unlock()

	if err != nil {
		if s.debug {
			log.Printf("session: %s: %v", op, err)
		}
		if msg := game.AlertMessage(err); msg != "" && p != nil {
			p.Alert(msg)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if s.debug {
		log.Printf("session: %s applied", op)
	}
	if notify && s.onChange != nil {
		s.onChange()
	}
	return nil
}

// confirmThenApply asks for confirmation before running fn. Declining is not
// an error and leaves the state untouched.
func (s *Session) confirmThenApply(ctx context.Context, p Prompter, op, message string, fn func(*models.AppState) error) (bool, error) {
	if !p.Confirm(message) {
		if s.debug {
			log.Printf("session: %s declined", op)
		}
		return false, nil
	}
	if err := s.apply(ctx, p, op, fn); err != nil {
		return false, err
	}
	return true, nil
}

// AddPlayer adds a default-named player
func (s *Session) AddPlayer(ctx context.Context, p Prompter) error {
	return s.apply(ctx, p, "add player", game.AddPlayer)
}

// RemovePlayer removes a player after confirmation
func (s *Session) RemovePlayer(ctx context.Context, p Prompter, playerID string) (bool, error) {
	var player models.Player
	if err := s.precheck(p, "remove player", func(st *models.AppState) error {
		found, ok := st.Player(playerID)
		if !ok {
			return game.ErrUnknownPlayer
		}
		if len(st.Players)-1 < game.MinPlayers {
			return game.ErrTooFewPlayers
		}
		player = found
		return nil
	}); err != nil {
		return false, err
	}
	return s.confirmThenApply(ctx, p, "remove player", "Remove "+player.Name+"?", func(st *models.AppState) error {
		return game.RemovePlayer(st, playerID)
	})
}

// RenamePlayer sets a player's name; a blank name keeps the old one
func (s *Session) RenamePlayer(ctx context.Context, p Prompter, playerID, name string) error {
	return s.apply(ctx, p, "rename player", func(st *models.AppState) error {
		return game.RenamePlayer(st, playerID, name)
	})
}

// SetInput records a player's pending score text
func (s *Session) SetInput(ctx context.Context, p Prompter, playerID, value string) error {
	return s.applyQuiet(ctx, p, "set input", func(st *models.AppState) error {
		return game.SetInput(st, playerID, value)
	})
}

// SetInputs records several pending score texts with a single save
func (s *Session) SetInputs(ctx context.Context, p Prompter, inputs map[string]string) error {
	return s.applyQuiet(ctx, p, "set inputs", func(st *models.AppState) error {
		return game.SetInputs(st, inputs)
	})
}

// StartGame leaves setup for scoring
func (s *Session) StartGame(ctx context.Context, p Prompter) error {
	return s.apply(ctx, p, "start game", game.StartGame)
}

// SubmitRound appends the pending inputs as a new round. A second call
// within the cooldown is refused with game.ErrSubmitTooSoon.
func (s *Session) SubmitRound(ctx context.Context, p Prompter) error {
	return s.apply(ctx, p, "submit round", func(st *models.AppState) error {
		now := s.now()
		if !s.lastSubmit.IsZero() && now.Sub(s.lastSubmit) < s.cooldown {
			return game.ErrSubmitTooSoon
		}
		if err := game.SubmitRound(st, now); err != nil {
			return err
		}
		s.lastSubmit = now
		return nil
	})
}

// UndoLastRound removes the latest round after confirmation
func (s *Session) UndoLastRound(ctx context.Context, p Prompter) (bool, error) {
	if err := s.precheck(p, "undo last round", func(st *models.AppState) error {
		if len(st.Rounds) == 0 {
			return game.ErrNoRounds
		}
		return nil
	}); err != nil {
		return false, err
	}
	return s.confirmThenApply(ctx, p, "undo last round", ConfirmUndo, game.UndoLastRound)
}

// ClearHistory removes every round after confirmation, keeping players
func (s *Session) ClearHistory(ctx context.Context, p Prompter) (bool, error) {
	if err := s.precheck(p, "clear history", func(st *models.AppState) error {
		if len(st.Rounds) == 0 {
			return game.ErrHistoryEmpty
		}
		return nil
	}); err != nil {
		return false, err
	}
	return s.confirmThenApply(ctx, p, "clear history", ConfirmClear, game.ClearHistory)
}

// ResetScores drops all rounds after confirmation and returns to scoring
func (s *Session) ResetScores(ctx context.Context, p Prompter) (bool, error) {
	return s.confirmThenApply(ctx, p, "reset scores", ConfirmResetScores, func(st *models.AppState) error {
		game.ResetScores(st)
		return nil
	})
}

// NewGame clears players and rounds after confirmation and returns to setup
func (s *Session) NewGame(ctx context.Context, p Prompter) (bool, error) {
	return s.confirmThenApply(ctx, p, "new game", ConfirmNewGame, func(st *models.AppState) error {
		game.ResetToNewGame(st)
		s.lastSubmit = time.Time{}
		return nil
	})
}

// OpenHistory shows the round list
func (s *Session) OpenHistory(ctx context.Context) error {
	return s.apply(ctx, nil, "open history", func(st *models.AppState) error {
		game.OpenHistory(st)
		return nil
	})
}

// BackToScore returns to score entry
func (s *Session) BackToScore(ctx context.Context) error {
	return s.apply(ctx, nil, "back to score", func(st *models.AppState) error {
		game.BackToScore(st)
		return nil
	})
}

// OpenEdit selects a round for editing
func (s *Session) OpenEdit(ctx context.Context, p Prompter, index int) error {
	err := s.apply(ctx, p, "open edit", func(st *models.AppState) error {
		return game.OpenEdit(st, index)
	})
	if errors.Is(err, game.ErrInvalidRound) {
		s.fallBackToHistory(ctx)
	}
	return err
}

// CancelEdit returns to history without saving
func (s *Session) CancelEdit(ctx context.Context) error {
	return s.apply(ctx, nil, "cancel edit", func(st *models.AppState) error {
		game.CancelEdit(st)
		return nil
	})
}

// SaveEdit replaces the selected round's scores. An invalid target falls
// back to the history view.
func (s *Session) SaveEdit(ctx context.Context, p Prompter, inputs map[string]string) error {
	err := s.apply(ctx, p, "save edit", func(st *models.AppState) error {
		return game.SaveEdit(st, inputs)
	})
	if errors.Is(err, game.ErrInvalidRound) {
		s.fallBackToHistory(ctx)
	}
	return err
}

func (s *Session) precheck(p Prompter, op string, check func(*models.AppState) error) error {
	s.mu.Lock()
	err := check(s.state)
	s.mu.Unlock()
	if err == nil {
		return nil
	}
	if msg := game.AlertMessage(err); msg != "" && p != nil {
		p.Alert(msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Session) fallBackToHistory(ctx context.Context) {
	_ = s.apply(ctx, nil, "fall back to history", func(st *models.AppState) error {
		game.CancelEdit(st)
		return nil
	})
}
