package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"
)

// Game modes. Anything other than daily plays random.
const (
	modeDaily  = "daily"
	modeRandom = "random"
)

// Error messages double as API response text, so they read like prose.
var (
	errNoActiveGame    = errors.New("No active game. Start a new game first.")
	errMissingPlayerID = errors.New("Missing player_id.")
	errPlayerNotFound  = errors.New("Player not found.")
	errDuplicateGuess  = errors.New("You already guessed this player.")
	errTargetMissing   = errors.New("Internal error: target player missing.")
)

// gameOverError rejects a guess against a finished game while still
// carrying what the client needs to render the reveal.
type gameOverError struct {
	won    bool
	target *PlayerRecord
}

func (e *gameOverError) Error() string {
	return "Game is already over."
}

// GameState tracks one game from target selection to reveal.
type GameState struct {
	TargetID int
	Mode     string
	Guesses  []int
	GameOver bool
	Won      bool
}

// GuessResult is the outcome of one accepted guess. Target is only set
// once the game is over.
type GuessResult struct {
	Feedback    GuessFeedback `json:"feedback"`
	GuessNumber int           `json:"guess_number"`
	MaxGuesses  int           `json:"max_guesses"`
	GameOver    bool          `json:"game_over"`
	Won         bool          `json:"won"`
	Target      *PlayerRecord `json:"target,omitempty"`
}

// newGameState picks a target for the given mode and returns fresh state.
func newGameState(roster *Roster, mode string) (*GameState, error) {
	var (
		targetID int
		err      error
	)

	if mode == modeDaily {
		targetID, err = roster.DailyTargetID(time.Now())
	} else {
		targetID, err = roster.RandomTargetID()
	}
	if err != nil {
		return nil, err
	}

	return &GameState{
		TargetID: targetID,
		Mode:     mode,
		Guesses:  []int{},
	}, nil
}

// submitGuess runs one guess through the state machine. State mutates only
// when the guess is accepted; every rejection leaves it untouched.
func (g *GameState) submitGuess(roster *Roster, playerID int) (*GuessResult, error) {
	if g.GameOver {
		rejection := &gameOverError{won: g.Won}
		if target, ok := roster.GetByID(g.TargetID); ok {
			rejection.target = &target
		}

		return nil, rejection
	}

	guess, ok := roster.GetByID(playerID)
	if !ok {
		return nil, errPlayerNotFound
	}

	target, ok := roster.GetByID(g.TargetID)
	if !ok {
		return nil, errTargetMissing
	}

	for _, id := range g.Guesses {
		if id == playerID {
			return nil, errDuplicateGuess
		}
	}

	feedback := Compare(guess, target)

	g.Guesses = append(g.Guesses, playerID)

	switch {
	case feedback.IsCorrect:
		g.GameOver = true
		g.Won = true
	case len(g.Guesses) >= maxGuesses:
		g.GameOver = true
	}

	result := &GuessResult{
		Feedback:    feedback,
		GuessNumber: len(g.Guesses),
		MaxGuesses:  maxGuesses,
		GameOver:    g.GameOver,
		Won:         g.Won,
	}

	if g.GameOver {
		result.Target = &target
	}

	return result, nil
}

const sessionCookieName = "footle_id"

func getOrSetSessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// sessionManager holds one game per browser cookie, dropping sessions
// that go quiet for longer than the timeout.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	timeout  time.Duration
}

type session struct {
	state      *GameState
	lastActive time.Time
}

func newSessionManager(timeout time.Duration) *sessionManager {
	sm := &sessionManager{
		sessions: make(map[string]*session),
		timeout:  timeout,
	}
	if timeout > 0 {
		go sm.reaperLoop()
	}
	return sm
}

// newGame replaces whatever game the session had, finished or not.
func (sm *sessionManager) newGame(roster *Roster, id, mode string) (*GameState, error) {
	state, err := newGameState(roster, mode)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	sm.sessions[id] = &session{
		state:      state,
		lastActive: time.Now(),
	}
	sm.mu.Unlock()

	return state, nil
}

// guess applies one guess to the session's game. The lock is held across
// the whole transition, so concurrent guesses on one session serialize.
func (sm *sessionManager) guess(roster *Roster, id string, playerID int) (*GuessResult, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s, ok := sm.sessions[id]
	if !ok {
		return nil, errNoActiveGame
	}
	s.lastActive = time.Now()

	return s.state.submitGuess(roster, playerID)
}

func (sm *sessionManager) count() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return len(sm.sessions)
}

// reaperLoop periodically removes sessions idle longer than the timeout.
func (sm *sessionManager) reaperLoop() {
	ticker := time.NewTicker(sm.timeout / 2)
	for range ticker.C {
		sm.reap(time.Now().Add(-sm.timeout))
	}
}

// reap drops every session idle since before cutoff, returning how many went.
func (sm *sessionManager) reap(cutoff time.Time) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	reaped := 0
	for id, s := range sm.sessions {
		if s.lastActive.Before(cutoff) {
			delete(sm.sessions, id)
			reaped++
		}
	}

	return reaped
}
