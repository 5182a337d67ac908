package report

import (
	"time"

	"github.com/okian/iplboard/internal/adapters/repository"
	"github.com/okian/iplboard/internal/domain/types"
	"github.com/okian/iplboard/internal/domain/venue"
)

// Params sizes the ranked views.
type Params struct {
	SeasonFrom int
	SeasonTo   int
	TopN       int
	VenueTopN  int
}

// DefaultParams returns the dashboard's standard sizes.
func DefaultParams() Params {
	return Params{
		SeasonFrom: DefaultSeasonFrom,
		SeasonTo:   DefaultSeasonTo,
		TopN:       DefaultTopN,
		VenueTopN:  DefaultVenueTopN,
	}
}

// Views holds every selection-independent view.
type Views struct {
	Summary         types.Summary         `json:"summary"`
	Seasons         []types.SeasonCount   `json:"seasons"`
	TeamWins        []types.TeamCount     `json:"team_wins"`
	TossSplit       []types.DecisionShare `json:"toss_split"`
	TossImpact      []types.TossOutcome   `json:"toss_impact"`
	TopScorers      []types.Entry         `json:"top_scorers"`
	TopWicketTakers []types.Entry         `json:"top_wicket_takers"`
	VenueCounts     []types.VenueCount    `json:"venue_counts"`
	StrongestVenues []types.TeamVenue     `json:"strongest_venues"`
	VenueStrategy   []types.VenueDecision `json:"venue_strategy"`
	Batters         []string              `json:"batters"`
	Bowlers         []string              `json:"bowlers"`
}

// View names, used for metrics and export sheets.
const (
	ViewSummary         = "summary"
	ViewSeasons         = "seasons"
	ViewTeamWins        = "team_wins"
	ViewTossSplit       = "toss_split"
	ViewTossImpact      = "toss_impact"
	ViewTopScorers      = "top_scorers"
	ViewTopWicketTakers = "top_wicket_takers"
	ViewPlayerSeasons   = "player_seasons"
	ViewBowlerSummary   = "bowler_summary"
	ViewVenueCounts     = "venue_counts"
	ViewStrongestVenues = "strongest_venues"
	ViewVenueStrategy   = "venue_strategy"
	ViewSelectors       = "selectors"
)

// Compute builds every selection-independent view. observe, when non-nil,
// is called with each view name and its compute time in milliseconds.
func Compute(ds *repository.Dataset, m *venue.Mapping, p Params, observe func(view string, ms float64)) Views {
	var v Views
	step := func(name string, fn func()) {
		if observe == nil {
			fn()
			return
		}
		start := time.Now()
		fn()
		observe(name, float64(time.Since(start).Microseconds())/1000)
	}

	step(ViewSummary, func() { v.Summary = Summary(ds) })
	step(ViewSeasons, func() { v.Seasons = SeasonTrend(ds, p.SeasonFrom, p.SeasonTo) })
	step(ViewTeamWins, func() { v.TeamWins = TeamWins(ds) })
	step(ViewTossSplit, func() { v.TossSplit = TossDecisionSplit(ds) })
	step(ViewTossImpact, func() { v.TossImpact = TossImpact(ds) })
	step(ViewTopScorers, func() { v.TopScorers = TopScorers(ds, p.TopN) })
	step(ViewTopWicketTakers, func() { v.TopWicketTakers = TopWicketTakers(ds, p.TopN) })
	step(ViewVenueCounts, func() { v.VenueCounts = VenueCounts(ds, m, p.VenueTopN) })
	step(ViewStrongestVenues, func() { v.StrongestVenues = StrongestVenuePerTeam(ds, m) })
	step(ViewVenueStrategy, func() { v.VenueStrategy = VenueStrategy(ds, m) })
	step(ViewSelectors, func() {
		v.Batters = Batters(ds)
		v.Bowlers = Bowlers(ds)
	})
	return v
}
