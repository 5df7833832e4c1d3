// internal/httpserver/server.go
//
// HTTP server wiring for the devfolio widgets backend.
// Responsibilities:
//   - Router + middleware (access log, CORS, timeouts, panic recovery, request IDs, gzip).
//   - Public endpoints: "/", "/health".
//   - Contact form endpoints: mounted under /contact.
//   - Memory game endpoints: /game/* (session token required except /game/new).
//   - Best scores: GET /scores/best.
//   - Live game events: GET /game/events (WebSocket).
//
// Notes:
//   - Game sessions are identified by a signed token carried in a cookie,
//     a bearer header, or the ?token= query parameter.
//   - The WebSocket route sits outside the timeout and gzip middleware.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/devfolio/internal/game"
	"github.com/robalobadob/devfolio/internal/scores"
	"github.com/robalobadob/devfolio/internal/store"
	"github.com/robalobadob/devfolio/internal/symbols"
)

// Config bundles the server's collaborators.
type Config struct {
	Sessions     store.Store  // live game sessions
	Scores       scores.Store // persisted best scores
	Tokens       *Tokens      // session token signer
	Difficulties []string     // presets reported by /scores/best
}

// Server bundles router and collaborators.
type Server struct {
	r   *chi.Mux
	cfg Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)   // one log line per request
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(corsFromEnv)     // credentials-friendly CORS

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses
		r.Use(compress)                        // gzip when accepted

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"devfolio-go","endpoints":["/health","/contact/*","/game/*","/scores/best"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/symbols", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{"symbols": symbols.Stats()})
		})

		s.mountContact(r)
		s.mountGame(r)
		r.Get("/scores/best", s.handleBestScores)
	})

	// Long-lived; no timeout, no gzip.
	s.r.With(s.withGame).Get("/game/events", s.handleEvents)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr and shuts down gracefully when ctx ends.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ GAME ---------------------------------------

// mountGame registers the memory game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Group(func(r chi.Router) {
		r.Use(s.withGame)
		r.Get("/game", s.handleView)
		r.Post("/game/start", s.handleStart)
		r.Post("/game/restart", s.handleRestart)
		r.Post("/game/difficulty", s.handleDifficulty)
		r.Post("/game/click", s.handleClick)
		r.Delete("/game", s.handleEndGame)
	})
}

type ctxEntryKey struct{}

// withGame resolves the session token to a live entry.
func (s *Server) withGame(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, err := sessionToken(r)
		if err != nil {
			http.Error(w, `{"error":"no_session"}`, http.StatusUnauthorized)
			return
		}
		id, exp, err := s.cfg.Tokens.Parse(tok)
		if err != nil {
			http.Error(w, `{"error":"invalid_session"}`, http.StatusUnauthorized)
			return
		}
		e, err := s.cfg.Sessions.Get(r.Context(), id)
		if err != nil {
			http.Error(w, `{"error":"session_expired"}`, http.StatusNotFound)
			return
		}
		if s.cfg.Tokens.Stale(exp) {
			s.refreshToken(w, e.ID)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxEntryKey{}, e)))
	})
}

// refreshToken re-signs the session token on the response, as a cookie and
// as a header for bearer clients. WebSocket upgrades ignore both.
func (s *Server) refreshToken(w http.ResponseWriter, id string) {
	tok, exp, err := s.cfg.Tokens.Sign(id)
	if err != nil {
		log.Warn().Err(err).Str("game", id).Msg("refresh session token")
		return
	}
	setSessionCookie(w, tok, exp)
	w.Header().Set(refreshHeader, tok)
}

func entryFrom(r *http.Request) *store.Entry {
	e, _ := r.Context().Value(ctxEntryKey{}).(*store.Entry)
	return e
}

// gameRes is the common response for game routes.
type gameRes struct {
	GameID  string         `json:"gameId,omitempty"`
	Token   string         `json:"token,omitempty"`
	Started *bool          `json:"started,omitempty"`
	Outcome game.Outcome   `json:"outcome,omitempty"`
	Elapsed string         `json:"elapsed"`
	Result  *scores.Result `json:"result,omitempty"`
	View    game.View      `json:"view"`
}

func viewOf(e *store.Entry) gameRes {
	v := e.Game.View()
	res := gameRes{View: v, Elapsed: e.Scores.Stopwatch().Display()}
	if v.Won {
		res.Result = e.Scores.Last()
	}
	return res
}

// handleNewGame registers an idle session and hands back its token.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	e, err := s.cfg.Sessions.Create(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("create session")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}
	tok, exp, err := s.cfg.Tokens.Sign(e.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, tok, exp)
	res := viewOf(e)
	res.GameID, res.Token = e.ID, tok
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(viewOf(entryFrom(r)))
}

// difficultyReq is the payload for /game/start and /game/difficulty.
type difficultyReq struct {
	Difficulty string `json:"difficulty"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	// An empty body starts the default difficulty.
	var req difficultyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	e := entryFrom(r)
	started, err := e.Game.Start(game.Difficulty(req.Difficulty))
	if err != nil {
		gameError(w, err)
		return
	}
	res := viewOf(e)
	res.Started = &started
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	e := entryFrom(r)
	if err := e.Game.Restart(); err != nil {
		gameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(e))
}

func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Difficulty) == "" {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	e := entryFrom(r)
	if err := e.Game.ChangeDifficulty(game.Difficulty(req.Difficulty)); err != nil {
		gameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(viewOf(e))
}

// clickReq is the payload for /game/click.
type clickReq struct {
	Index *int `json:"index"`
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	e := entryFrom(r)
	out, err := e.Game.Click(*req.Index)
	if err != nil {
		gameError(w, err)
		return
	}
	res := viewOf(e)
	res.Outcome = out
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	e := entryFrom(r)
	if err := s.cfg.Sessions.Delete(r.Context(), e.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"delete_failed"}`, http.StatusInternalServerError)
		return
	}
	clearSessionCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// gameError maps game errors to responses.
func gameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNoSuchCard):
		http.Error(w, `{"error":"no_such_card"}`, http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg("game transition")
		http.Error(w, `{"error":"game_failed"}`, http.StatusInternalServerError)
	}
}

// ------------------------------ SCORES -------------------------------------

// handleBestScores returns the best move count per difficulty (null when unset).
func (s *Server) handleBestScores(w http.ResponseWriter, r *http.Request) {
	best, err := scores.Bests(r.Context(), s.cfg.Scores, s.cfg.Difficulties)
	if err != nil {
		log.Error().Err(err).Msg("read best scores")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(best)
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
