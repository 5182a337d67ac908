package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/iplboard/internal/domain/model"
)

// Default file locations, relative to the working directory.
const (
	DefaultMatchesPath    = "data/matches.csv"
	DefaultDeliveriesPath = "data/deliveries.csv"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithMatchesPath sets the matches.csv location.
func WithMatchesPath(path string) Option {
	return func(l *Loader) {
		if path != "" {
			l.matchesPath = path
		}
	}
}

// WithDeliveriesPath sets the deliveries.csv location.
func WithDeliveriesPath(path string) Option {
	return func(l *Loader) {
		if path != "" {
			l.deliveriesPath = path
		}
	}
}

// Loader reads both record sets from disk.
type Loader struct {
	matchesPath    string
	deliveriesPath string
}

// NewLoader creates a Loader with default paths.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		matchesPath:    DefaultMatchesPath,
		deliveriesPath: DefaultDeliveriesPath,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads both files concurrently. Any failure aborts the whole load.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	var (
		matches    []model.Match
		deliveries []model.Delivery
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = readFile(ctx, l.matchesPath, ReadMatches)
		return err
	})
	g.Go(func() error {
		var err error
		deliveries, err = readFile(ctx, l.deliveriesPath, ReadDeliveries)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := NewDataset(matches, deliveries)
	ds.loadDuration = time.Since(start)
	return ds, nil
}

func readFile[T any](ctx context.Context, path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer func() { _ = f.Close() }()

	out, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoad, path, err)
	}
	return out, nil
}
