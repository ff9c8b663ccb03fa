package main

import (
	_ "embed"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

//go:embed footle/index.html
var indexHTML []byte

//go:embed footle/app.css
var footleCSS []byte

//go:embed footle/app.js
var footleJS []byte

type newGameRequest struct {
	Mode string `json:"mode"`
}

type newGameResponse struct {
	Status     string `json:"status"`
	Mode       string `json:"mode"`
	MaxGuesses int    `json:"max_guesses"`
}

type guessRequest struct {
	PlayerID *int `json:"player_id"`
}

// gameOverResponse rejects a guess against a finished game. Target is
// null only if the roster lookup failed.
type gameOverResponse struct {
	Error    string        `json:"error"`
	GameOver bool          `json:"game_over"`
	Won      bool          `json:"won"`
	Target   *PlayerRecord `json:"target"`
}

func getIndexHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_ = getOrSetSessionID(w, r)

		_, _ = w.Write(indexHTML)
	}
}

func getCssHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(footleCSS)
	}
}

func getJsHandler(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(footleJS)
	}
}

// qrHandler serves a PNG QR code pointing back at the game page, so a
// phone can join by pointing a camera at the screen.
func qrHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	path := strings.TrimSuffix(r.URL.Path, "/qr")
	if path == "" {
		path = "/"
	}

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

func serveAutocomplete(cfg *Config, roster *Roster, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		query := r.URL.Query().Get("q")

		results := roster.Search(query, cfg.searchLimit)

		written, err := writeJSON(cfg, w, http.StatusOK, results)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: %d suggestions (%s) for %q to %s in %s",
			len(results),
			humanReadableSize(int64(written)),
			query,
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveNewGame(cfg *Config, roster *Roster, sessions *sessionManager, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		id := getOrSetSessionID(w, r)
		if id == "" {
			http.Error(w, "Internal error.", http.StatusInternalServerError)

			return
		}

		// Tolerate missing or malformed bodies, same as an empty one.
		var req newGameRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		mode := req.Mode
		if mode == "" {
			mode = modeDaily
		}

		if _, err := sessions.newGame(roster, id, mode); err != nil {
			errs <- err

			_, _ = writeJSON(cfg, w, http.StatusInternalServerError, apiError{Error: err.Error()})

			return
		}

		if _, err := writeJSON(cfg, w, http.StatusOK, newGameResponse{
			Status:     "ok",
			Mode:       mode,
			MaxGuesses: maxGuesses,
		}); err != nil {
			errs <- err

			return
		}

		logf(cfg, "GAMES: New %s game for %s in %s",
			mode,
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveGuess(cfg *Config, roster *Roster, sessions *sessionManager, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		id := getOrSetSessionID(w, r)
		if id == "" {
			http.Error(w, "Internal error.", http.StatusInternalServerError)

			return
		}

		var req guessRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		if req.PlayerID == nil {
			_, _ = writeJSON(cfg, w, http.StatusBadRequest, apiError{Error: errMissingPlayerID.Error()})

			return
		}

		result, err := sessions.guess(roster, id, *req.PlayerID)
		if err != nil {
			writeGuessRejection(cfg, w, err)

			return
		}

		written, err := writeJSON(cfg, w, http.StatusOK, result)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "GAMES: Guess %d/%d (%s) from %s in %s",
			result.GuessNumber,
			result.MaxGuesses,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// writeGuessRejection maps a state machine error onto its response shape.
// Rejections against a finished game still reveal the target.
func writeGuessRejection(cfg *Config, w http.ResponseWriter, err error) {
	var over *gameOverError

	switch {
	case errors.As(err, &over):
		_, _ = writeJSON(cfg, w, http.StatusBadRequest, gameOverResponse{
			Error:    over.Error(),
			GameOver: true,
			Won:      over.won,
			Target:   over.target,
		})
	case errors.Is(err, errPlayerNotFound):
		_, _ = writeJSON(cfg, w, http.StatusNotFound, apiError{Error: err.Error()})
	case errors.Is(err, errTargetMissing):
		_, _ = writeJSON(cfg, w, http.StatusInternalServerError, apiError{Error: err.Error()})
	default:
		_, _ = writeJSON(cfg, w, http.StatusBadRequest, apiError{Error: err.Error()})
	}
}

// registerFootleGame sets up routes so that:
//   - $prefix/                  → HTML client
//   - $prefix/app.css, /app.js  → shared assets
//   - $prefix/qr                → PNG QR code for the game URL
//   - $prefix/api/*             → the JSON game API
func registerFootleGame(cfg *Config, roster *Roster, mux *httprouter.Router, errs chan<- error) *sessionManager {
	sessions := newSessionManager(cfg.sessionTimeout)

	mux.GET(cfg.prefix+"/", getIndexHandler(cfg))
	mux.GET(cfg.prefix+"/app.css", getCssHandler(cfg))
	mux.GET(cfg.prefix+"/app.js", getJsHandler(cfg))
	mux.GET(cfg.prefix+"/qr", qrHandler)

	mux.GET(cfg.prefix+"/api/autocomplete", serveAutocomplete(cfg, roster, errs))
	mux.POST(cfg.prefix+"/api/new_game", serveNewGame(cfg, roster, sessions, errs))
	mux.POST(cfg.prefix+"/api/guess", serveGuess(cfg, roster, sessions, errs))

	return sessions
}
