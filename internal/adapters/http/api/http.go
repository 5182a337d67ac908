// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	service "github.com/okian/iplboard/internal/app"
	"github.com/okian/iplboard/internal/domain/report"
	"github.com/okian/iplboard/internal/domain/types"
	"github.com/okian/iplboard/pkg/logger"
)

// DefaultMaxTopLimit caps the limit query parameter of the top endpoints.
const DefaultMaxTopLimit = 100

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Views returns the selection-independent views.
	Views() report.Views

	TopScorers(ctx context.Context, n int) ([]types.Entry, error)
	TopWicketTakers(ctx context.Context, n int) ([]types.Entry, error)

	// PlayerSeason and Bowler recompute the selection-dependent views.
	PlayerSeason(ctx context.Context, batter string) (service.PlayerSeasonView, error)
	Bowler(ctx context.Context, bowler string) (types.BowlerSummary, error)

	// Export writes the XLSX workbook.
	Export(ctx context.Context, w io.Writer) error
}

// Selector applies one viewer's selections.
type Selector interface {
	Select(ctx context.Context, kind, name string, notify func(service.State)) (service.SelectionResult, error)
}

// FragmentRenderer renders a selection result as HTML for live updates.
type FragmentRenderer interface {
	Fragment(res service.SelectionResult) (string, error)
}

// Option configures a Server.
type Option func(*Server)

// WithMaxTopLimit overrides the largest accepted limit.
func WithMaxTopLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxTopLimit = n
		}
	}
}

// WithDefaultTopLimit sets the row count used when limit is omitted.
func WithDefaultTopLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.defaultLimit = n
		}
	}
}

// WithSelectors enables /ws/selection; newSelector is called once per connection.
func WithSelectors(newSelector func() Selector) Option {
	return func(s *Server) {
		s.newSelector = newSelector
	}
}

// WithFragments adds rendered HTML to websocket selection replies.
func WithFragments(r FragmentRenderer) Option {
	return func(s *Server) {
		s.fragments = r
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	deps         Dependencies
	maxTopLimit  int
	defaultLimit int
	newSelector  func() Selector
	fragments    FragmentRenderer
	logger       logger.Logger

	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		deps:          deps,
		maxTopLimit:   DefaultMaxTopLimit,
		defaultLimit:  report.DefaultTopN,
		logger:        logger.Get(),
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to router.
func (s *Server) Register(_ context.Context, router *mux.Router) {
	router.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz")).Methods(http.MethodGet)
	router.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats")).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/views", MetricsMiddleware(s.handleViews, "views")).Methods(http.MethodGet)
	api.HandleFunc("/summary", MetricsMiddleware(s.handleSummary, "summary")).Methods(http.MethodGet)
	api.HandleFunc("/seasons", MetricsMiddleware(s.handleSeasons, "seasons")).Methods(http.MethodGet)
	api.HandleFunc("/teams/wins", MetricsMiddleware(s.handleTeamWins, "team_wins")).Methods(http.MethodGet)
	api.HandleFunc("/toss/split", MetricsMiddleware(s.handleTossSplit, "toss_split")).Methods(http.MethodGet)
	api.HandleFunc("/toss/impact", MetricsMiddleware(s.handleTossImpact, "toss_impact")).Methods(http.MethodGet)
	api.HandleFunc("/batters", MetricsMiddleware(s.handleBatters, "batters")).Methods(http.MethodGet)
	api.HandleFunc("/batters/top", MetricsMiddleware(s.handleTopScorers, "top_scorers")).Methods(http.MethodGet)
	api.HandleFunc("/batters/{name}/seasons", MetricsMiddleware(s.handlePlayerSeasons, "player_seasons")).Methods(http.MethodGet)
	api.HandleFunc("/bowlers", MetricsMiddleware(s.handleBowlers, "bowlers")).Methods(http.MethodGet)
	api.HandleFunc("/bowlers/top", MetricsMiddleware(s.handleTopWicketTakers, "top_wicket_takers")).Methods(http.MethodGet)
	api.HandleFunc("/bowlers/{name}/summary", MetricsMiddleware(s.handleBowlerSummary, "bowler_summary")).Methods(http.MethodGet)
	api.HandleFunc("/venues/counts", MetricsMiddleware(s.handleVenueCounts, "venue_counts")).Methods(http.MethodGet)
	api.HandleFunc("/venues/strongest", MetricsMiddleware(s.handleStrongestVenues, "strongest_venues")).Methods(http.MethodGet)
	api.HandleFunc("/venues/strategy", MetricsMiddleware(s.handleVenueStrategy, "venue_strategy")).Methods(http.MethodGet)
	api.HandleFunc("/export.xlsx", MetricsMiddleware(s.handleExport, "export")).Methods(http.MethodGet)

	if s.newSelector != nil {
		router.HandleFunc("/ws/selection", MetricsMiddleware(s.handleSelection, "ws_selection"))
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
