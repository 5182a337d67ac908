// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the rendered page.
package service

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/okian/iplboard/internal/adapters/chart"
	"github.com/okian/iplboard/internal/adapters/export"
	"github.com/okian/iplboard/internal/adapters/repository"
	"github.com/okian/iplboard/internal/domain/report"
	"github.com/okian/iplboard/internal/domain/types"
	"github.com/okian/iplboard/internal/domain/venue"
	"github.com/okian/iplboard/pkg/logger"
	"github.com/okian/iplboard/pkg/metrics"
)

// Service owns the loaded dataset and every view derived from it.
type Service struct {
	mu sync.RWMutex

	// Configuration
	matchesPath    string
	deliveriesPath string
	params         report.Params
	mapping        *venue.Mapping
	chartWidth     int
	chartHeight    int

	// Loaded once by Start and read-only afterwards
	dataset  *repository.Dataset
	views    report.Views
	panels   map[string]Panel
	unmapped []string
	renderer *chart.Renderer

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDataPaths sets the matches and deliveries file locations.
func WithDataPaths(matches, deliveries string) Option {
	return func(s *Service) {
		if matches != "" {
			s.matchesPath = matches
		}
		if deliveries != "" {
			s.deliveriesPath = deliveries
		}
	}
}

// WithDataset uses an already built dataset instead of reading files.
func WithDataset(ds *repository.Dataset) Option {
	return func(s *Service) {
		s.dataset = ds
	}
}

// WithSeasonRange sets the inclusive season range of the trend view.
func WithSeasonRange(from, to int) Option {
	return func(s *Service) {
		if from > 0 && to >= from {
			s.params.SeasonFrom = from
			s.params.SeasonTo = to
		}
	}
}

// WithTopN sets the size of the ranked player views.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.params.TopN = n
		}
	}
}

// WithVenueTopN sets the size of the venue count view.
func WithVenueTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.params.VenueTopN = n
		}
	}
}

// WithVenueMapping replaces the built-in venue table.
func WithVenueMapping(m *venue.Mapping) Option {
	return func(s *Service) {
		if m != nil {
			s.mapping = m
		}
	}
}

// WithChartSize sets the pixel size of rendered charts.
func WithChartSize(width, height int) Option {
	return func(s *Service) {
		if width > 0 && height > 0 {
			s.chartWidth = width
			s.chartHeight = height
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		matchesPath:    repository.DefaultMatchesPath,
		deliveriesPath: repository.DefaultDeliveriesPath,
		params:         report.DefaultParams(),
		mapping:        venue.Default(),
		chartWidth:     chart.DefaultWidth,
		chartHeight:    chart.DefaultHeight,
		stopCh:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset, computes every selection-independent view and
// renders its chart. A load failure is fatal and leaves the service stopped.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting dashboard service...",
		logger.String("matches", s.matchesPath),
		logger.String("deliveries", s.deliveriesPath),
		logger.String("venueMapping", s.mapping.Version()),
	)

	if s.dataset == nil {
		ds, err := repository.NewLoader(
			repository.WithMatchesPath(s.matchesPath),
			repository.WithDeliveriesPath(s.deliveriesPath),
		).Load(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStart, err)
		}
		s.dataset = ds
	}
	metrics.SetDatasetRecords("matches", len(s.dataset.Matches()))
	metrics.SetDatasetRecords("deliveries", len(s.dataset.Deliveries()))
	metrics.ObserveDatasetLoad(float64(s.dataset.LoadDuration().Microseconds()) / 1000)

	s.unmapped = s.mapping.Unmapped(s.dataset.Venues())
	metrics.SetVenueUnmapped(len(s.unmapped))
	if len(s.unmapped) > 0 {
		s.logger.Warn(ctx, "venue names not in mapping; counted as separate venues",
			logger.Int("count", len(s.unmapped)),
			logger.Strings("venues", s.unmapped),
		)
	}

	s.views = report.Compute(s.dataset, s.mapping, s.params, metrics.ObserveViewCompute)
	s.renderer = chart.NewRenderer(chart.WithSize(s.chartWidth, s.chartHeight))
	s.panels = s.renderStatic(ctx)

	go s.refreshSystemStats()

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.String("dataset", s.dataset.ID()),
		logger.Int("matches", s.views.Summary.Matches),
		logger.Int("deliveries", len(s.dataset.Deliveries())),
		logger.Duration("load", s.dataset.LoadDuration()),
	)

	return nil
}

// Stop releases background work. Loaded data stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

func (s *Service) refreshSystemStats() {
	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()
	for {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		metrics.SetSystemStats(ms.HeapAlloc, runtime.NumGoroutine())
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
		}
	}
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil || s.panels == nil {
		return ErrNotStarted
	}
	return nil
}

// Views returns the cached selection-independent views.
func (s *Service) Views() report.Views {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.views
}

// Panel returns the cached chart of a view.
func (s *Service) Panel(view string) Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.panels[view]; ok {
		return p
	}
	return Panel{View: view, Unavailable: true}
}

// MappingVersion identifies the venue table in use.
func (s *Service) MappingVersion() string {
	return s.mapping.Version()
}

// LoadedAt reports when the dataset was built; zero before Start.
func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return time.Time{}
	}
	return s.dataset.LoadedAt()
}

// UnmappedVenues lists raw venue names the mapping does not know.
func (s *Service) UnmappedVenues() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.unmapped...)
}

// TopScorers ranks batters with an arbitrary row limit.
func (s *Service) TopScorers(_ context.Context, n int) ([]types.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if n == s.params.TopN {
		return s.Views().TopScorers, nil
	}
	return report.TopScorers(s.dataset, n), nil
}

// TopWicketTakers ranks bowlers with an arbitrary row limit.
func (s *Service) TopWicketTakers(_ context.Context, n int) ([]types.Entry, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if n == s.params.TopN {
		return s.Views().TopWicketTakers, nil
	}
	return report.TopWicketTakers(s.dataset, n), nil
}

// PlayerSeason recomputes a batter's season trend and its chart.
func (s *Service) PlayerSeason(ctx context.Context, batter string) (PlayerSeasonView, error) {
	if err := s.ready(); err != nil {
		return PlayerSeasonView{}, err
	}
	start := time.Now()
	v := PlayerSeasonView{
		Batter:  batter,
		Seasons: report.PlayerSeasonPerformance(s.dataset, batter),
	}
	v.Panel = s.render(ctx, report.ViewPlayerSeasons, func(w io.Writer) error {
		points := make([]chart.Point, len(v.Seasons))
		for i, r := range v.Seasons {
			points[i] = chart.Point{X: float64(r.Season), Y: float64(r.Runs)}
		}
		return s.renderer.Line(w, batter+" - Runs per Season", "Season", "Runs", points)
	})
	metrics.IncSelectionRecompute(KindBatter)
	metrics.ObserveViewCompute(report.ViewPlayerSeasons, metrics.Since(start))
	return v, nil
}

// Bowler recomputes one bowler's summary.
func (s *Service) Bowler(_ context.Context, bowler string) (types.BowlerSummary, error) {
	if err := s.ready(); err != nil {
		return types.BowlerSummary{}, err
	}
	start := time.Now()
	sum := report.BowlerSummary(s.dataset, bowler)
	metrics.IncSelectionRecompute(KindBowler)
	metrics.ObserveViewCompute(report.ViewBowlerSummary, metrics.Since(start))
	return sum, nil
}

// Export writes every cached view as an XLSX workbook.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	if err := s.ready(); err != nil {
		return err
	}
	err := export.Write(ctx, w, s.Views(), export.Meta{
		DatasetID:      s.dataset.ID(),
		MappingVersion: s.mapping.Version(),
		GeneratedAt:    time.Now(),
	})
	if err != nil {
		return err
	}
	metrics.IncExport()
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"matchesPath":    s.matchesPath,
		"deliveriesPath": s.deliveriesPath,
		"mappingVersion": s.mapping.Version(),
		"seasonFrom":     s.params.SeasonFrom,
		"seasonTo":       s.params.SeasonTo,
		"topN":           s.params.TopN,
	}

	if s.dataset != nil {
		stats["datasetId"] = s.dataset.ID()
		stats["matches"] = len(s.dataset.Matches())
		stats["deliveries"] = len(s.dataset.Deliveries())
		stats["loadedAt"] = s.dataset.LoadedAt().UTC().Format(time.RFC3339)
		stats["loadMs"] = s.dataset.LoadDuration().Milliseconds()
		stats["unmappedVenues"] = len(s.unmapped)
	}

	return stats
}
