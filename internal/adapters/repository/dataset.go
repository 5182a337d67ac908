// Package repository loads the match and delivery record sets into a
// read-only Dataset.
package repository

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/okian/iplboard/internal/domain/model"
)

// Dataset is the immutable data context every aggregation reads from.
// It is built once and never modified; the slices returned by Matches and
// Deliveries must be treated as read-only.
type Dataset struct {
	id           string
	loadedAt     time.Time
	loadDuration time.Duration

	matches       []model.Match
	deliveries    []model.Delivery
	seasonByMatch map[int]int
}

// NewDataset copies the record sets and indexes match seasons.
func NewDataset(matches []model.Match, deliveries []model.Delivery) *Dataset {
	ds := &Dataset{
		id:            uuid.NewString(),
		loadedAt:      time.Now(),
		matches:       slices.Clone(matches),
		deliveries:    slices.Clone(deliveries),
		seasonByMatch: make(map[int]int, len(matches)),
	}
	for _, m := range ds.matches {
		ds.seasonByMatch[m.ID] = m.Season
	}
	return ds
}

// ID uniquely identifies this load.
func (d *Dataset) ID() string { return d.id }

// LoadedAt is when the dataset was built.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// LoadDuration is how long reading both files took.
func (d *Dataset) LoadDuration() time.Duration { return d.loadDuration }

// Matches returns every match in file order.
func (d *Dataset) Matches() []model.Match { return d.matches }

// Deliveries returns every delivery in file order.
func (d *Dataset) Deliveries() []model.Delivery { return d.deliveries }

// SeasonOf returns the season of a match id.
func (d *Dataset) SeasonOf(matchID int) (int, bool) {
	s, ok := d.seasonByMatch[matchID]
	return s, ok
}

// Venues returns the raw venue of every match in file order.
func (d *Dataset) Venues() []string {
	out := make([]string, len(d.matches))
	for i, m := range d.matches {
		out[i] = m.Venue
	}
	return out
}
