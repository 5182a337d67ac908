// Package site renders the dashboard page and its selection fragments.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/okian/iplboard/internal/adapters/http/api"
	service "github.com/okian/iplboard/internal/app"
	"github.com/okian/iplboard/internal/domain/report"
	"github.com/okian/iplboard/internal/domain/types"
	"github.com/okian/iplboard/pkg/logger"
)

// Source supplies the data behind the page.
type Source interface {
	Views() report.Views
	Panel(view string) service.Panel
	LoadedAt() time.Time
	PlayerSeason(ctx context.Context, batter string) (service.PlayerSeasonView, error)
	Bowler(ctx context.Context, bowler string) (types.BowlerSummary, error)
}

// Option configures a Site.
type Option func(*Site)

// WithLogoPath serves a file from disk instead of the embedded logo.
func WithLogoPath(path string) Option {
	return func(s *Site) {
		s.logoPath = path
	}
}

// WithSeasonRange sets the seasons named in the page title.
func WithSeasonRange(from, to int) Option {
	return func(s *Site) {
		s.title = fmt.Sprintf("IPL Analytics Dashboard (%d-%d)", from, to)
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.logger = l
		}
	}
}

// Site serves the dashboard.
type Site struct {
	src      Source
	tmpl     *template.Template
	title    string
	logoPath string
	logger   logger.Logger
}

// New parses the embedded templates.
func New(src Source, opts ...Option) (*Site, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	s := &Site{
		src:    src,
		tmpl:   tmpl,
		title:  fmt.Sprintf("IPL Analytics Dashboard (%d-%d)", report.DefaultSeasonFrom, report.DefaultSeasonTo),
		logger: logger.Get(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register attaches the page and its assets to router.
func (s *Site) Register(_ context.Context, router *mux.Router) {
	if router == nil {
		panic("router is nil")
	}
	router.HandleFunc("/", api.MetricsMiddleware(s.HandleRoot, "page")).Methods(http.MethodGet)
	router.HandleFunc("/static/logo.svg", api.MetricsMiddleware(s.HandleLogo, "logo")).Methods(http.MethodGet)
	router.HandleFunc("/static/app.js", s.handleScript).Methods(http.MethodGet)
}

type tab struct {
	ID    string
	Label string
	Panel service.Panel
}

type pageData struct {
	Title       string
	LastUpdated string
	Summary     types.Summary

	Seasons         service.Panel
	TeamWins        service.Panel
	TossSplit       service.Panel
	TossImpactChart service.Panel
	TossImpact      []types.TossOutcome
	TopScorers      service.Panel
	TopWicketTakers service.Panel

	Batters []string
	Bowlers []string
	Batter  service.PlayerSeasonView
	Bowler  types.BowlerSummary

	Tabs []tab
}

// HandleRoot handles GET /?batter=..&bowler=.. and renders the full page.
// Without a selection the first name of each selector is shown.
func (s *Site) HandleRoot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	views := s.src.Views()

	batter := pick(r.URL.Query().Get("batter"), views.Batters)
	bowler := pick(r.URL.Query().Get("bowler"), views.Bowlers)

	data := pageData{
		Title:           s.title,
		LastUpdated:     lastUpdated(s.src.LoadedAt()),
		Summary:         views.Summary,
		Seasons:         s.src.Panel(report.ViewSeasons),
		TeamWins:        s.src.Panel(report.ViewTeamWins),
		TossSplit:       s.src.Panel(report.ViewTossSplit),
		TossImpactChart: s.src.Panel(report.ViewTossImpact),
		TossImpact:      views.TossImpact,
		TopScorers:      s.src.Panel(report.ViewTopScorers),
		TopWicketTakers: s.src.Panel(report.ViewTopWicketTakers),
		Batters:         views.Batters,
		Bowlers:         views.Bowlers,
		Tabs: []tab{
			{ID: "tab-venue-counts", Label: "Number of matches at each venue", Panel: s.src.Panel(report.ViewVenueCounts)},
			{ID: "tab-strongest", Label: "Strongest team at each venue", Panel: s.src.Panel(report.ViewStrongestVenues)},
			{ID: "tab-strategy", Label: "Advantage to bat or field first at a given venue", Panel: s.src.Panel(report.ViewVenueStrategy)},
		},
	}

	var err error
	if data.Batter, err = s.src.PlayerSeason(ctx, batter); err != nil {
		s.fail(w, r, err)
		return
	}
	if data.Bowler, err = s.src.Bowler(ctx, bowler); err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "page", data); err != nil {
		s.fail(w, r, fmt.Errorf("%w: %w", ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Fragment renders the selection-dependent block for a websocket reply.
func (s *Site) Fragment(res service.SelectionResult) (string, error) {
	var (
		buf bytes.Buffer
		err error
	)
	switch {
	case res.Batter != nil:
		err = s.tmpl.ExecuteTemplate(&buf, "batter-view", *res.Batter)
	case res.Bowler != nil:
		err = s.tmpl.ExecuteTemplate(&buf, "bowler-view", *res.Bowler)
	default:
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRender, err)
	}
	return buf.String(), nil
}

// HandleLogo serves the configured logo file or the embedded one.
func (s *Site) HandleLogo(w http.ResponseWriter, r *http.Request) {
	if s.logoPath != "" {
		http.ServeFile(w, r, s.logoPath)
		return
	}
	http.ServeFileFS(w, r, assets, "static/logo.svg")
}

func (s *Site) handleScript(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, assets, "static/app.js")
}

func (s *Site) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "page render failed",
		logger.String("request_id", api.RequestID(r.Context())),
		logger.Error(err),
	)
	http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
}

// pick returns the requested name, or the first option when none was requested.
func pick(requested string, options []string) string {
	if name := strings.TrimSpace(requested); name != "" {
		return name
	}
	if len(options) > 0 {
		return options[0]
	}
	return ""
}

func lastUpdated(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format("02 January 2006")
}
