package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	service "github.com/okian/iplboard/internal/app"
	"github.com/okian/iplboard/internal/domain/types"
)

// handleTopScorers handles GET /api/batters/top?limit=N.
func (s *Server) handleTopScorers(w http.ResponseWriter, r *http.Request) {
	s.handleTop(w, r, "api.get_top_scorers", s.deps.TopScorers)
}

// handleTopWicketTakers handles GET /api/bowlers/top?limit=N.
func (s *Server) handleTopWicketTakers(w http.ResponseWriter, r *http.Request) {
	s.handleTop(w, r, "api.get_top_wicket_takers", s.deps.TopWicketTakers)
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request, op string, top func(context.Context, int) ([]types.Entry, error)) {
	limit, err := s.parseLimit(op, r.URL.Query().Get("limit"))
	if err != nil {
		code := "bad_request"
		if errors.Is(err, ErrLimitExceeded) {
			code = "limit_exceeded"
		}
		writeError(w, http.StatusBadRequest, code, err)
		return
	}

	entries, err := top(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, Wrap(op, err))
		return
	}
	if entries == nil {
		entries = []types.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// parseLimit reads the limit query value; empty means the configured top N.
func (s *Server) parseLimit(op, raw string) (int, error) {
	if raw == "" {
		return s.defaultLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, WrapKind(op, ErrBadRequest, errors.New("limit must be a positive integer"))
	}
	if n > s.maxTopLimit {
		return 0, WrapKind(op, ErrLimitExceeded, errors.New("limit must be <= "+strconv.Itoa(s.maxTopLimit)))
	}
	return n, nil
}

// handlePlayerSeasons handles GET /api/batters/{name}/seasons. A batter
// with no deliveries yields an empty list.
func (s *Server) handlePlayerSeasons(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_player_seasons"
	name := strings.TrimSpace(mux.Vars(r)["name"])
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	v, err := s.deps.PlayerSeason(r.Context(), name)
	if err != nil {
		s.writeServiceError(w, Wrap(op, err))
		return
	}
	if v.Seasons == nil {
		v.Seasons = []types.SeasonRuns{}
	}
	writeJSON(w, http.StatusOK, v)
}

// handleBowlerSummary handles GET /api/bowlers/{name}/summary.
func (s *Server) handleBowlerSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_bowler_summary"
	name := strings.TrimSpace(mux.Vars(r)["name"])
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	sum, err := s.deps.Bowler(r.Context(), name)
	if err != nil {
		s.writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotStarted) {
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}
