// Package report computes the dashboard's aggregate views.
//
// Every function is a pure read of a *repository.Dataset: nothing here mutates
// the records, and venue normalization is applied to copies at group time.
// Grouping keeps first-seen order and all rankings use stable sorts, so equal
// aggregates keep the order the records were loaded in.
package report

import (
	"slices"
	"strings"

	"github.com/okian/iplboard/internal/adapters/repository"
	"github.com/okian/iplboard/internal/domain/model"
	"github.com/okian/iplboard/internal/domain/types"
	"github.com/okian/iplboard/internal/domain/venue"
)

// Defaults for ranked views.
const (
	DefaultSeasonFrom = 2008
	DefaultSeasonTo   = 2024
	DefaultTopN       = 20
	DefaultVenueTopN  = 10
)

// Summary returns matches played, total runs and total wickets.
func Summary(ds *repository.Dataset) types.Summary {
	s := types.Summary{Matches: len(ds.Matches())}
	for _, d := range ds.Deliveries() {
		s.Runs += d.TotalRuns
		if d.IsWicket() {
			s.Wickets++
		}
	}
	return s
}

// SeasonTrend counts matches for each season in [from, to], ascending.
// Seasons without a match are omitted.
func SeasonTrend(ds *repository.Dataset, from, to int) []types.SeasonCount {
	if from > to {
		return nil
	}
	counts := make([]int, to-from+1)
	for _, m := range ds.Matches() {
		if m.Season >= from && m.Season <= to {
			counts[m.Season-from]++
		}
	}
	var out []types.SeasonCount
	for i, c := range counts {
		if c == 0 {
			continue
		}
		out = append(out, types.SeasonCount{Season: from + i, Matches: c})
	}
	return out
}

// TeamWins counts matches won per team, descending. No-result matches are skipped.
func TeamWins(ds *repository.Dataset) []types.TeamCount {
	t := newTally[string]()
	for _, m := range ds.Matches() {
		if m.HasResult() {
			t.add(m.Winner, 1)
		}
	}
	rows := t.desc()
	out := make([]types.TeamCount, len(rows))
	for i, r := range rows {
		out[i] = types.TeamCount{Team: r.key, Wins: r.sum}
	}
	return out
}

// TossDecisionSplit counts matches per toss decision with each share of the
// matches that recorded a decision, descending.
func TossDecisionSplit(ds *repository.Dataset) []types.DecisionShare {
	t := newTally[string]()
	total := 0
	for _, m := range ds.Matches() {
		if m.TossDecision == "" {
			continue
		}
		t.add(m.TossDecision, 1)
		total++
	}
	rows := t.desc()
	out := make([]types.DecisionShare, len(rows))
	for i, r := range rows {
		out[i] = types.DecisionShare{
			Decision:   r.key,
			Matches:    r.sum,
			Proportion: float64(r.sum) / float64(total),
		}
	}
	return out
}

// TossImpact cross-tabulates each toss decision against whether the toss
// winner went on to win. Both standard decisions are always reported, so a
// decision nobody chose shows a not-applicable percentage. A match without a
// result counts as lost. Rows are ordered by decision name.
func TossImpact(ds *repository.Dataset) []types.TossOutcome {
	byDecision := map[string]*types.TossOutcome{
		model.DecisionBat:   {Decision: model.DecisionBat},
		model.DecisionField: {Decision: model.DecisionField},
	}
	for _, m := range ds.Matches() {
		if m.TossDecision == "" {
			continue
		}
		row, ok := byDecision[m.TossDecision]
		if !ok {
			row = &types.TossOutcome{Decision: m.TossDecision}
			byDecision[m.TossDecision] = row
		}
		if m.TossWinnerWon() {
			row.Won++
		} else {
			row.Lost++
		}
	}

	out := make([]types.TossOutcome, 0, len(byDecision))
	for _, row := range byDecision {
		row.Total = row.Won + row.Lost
		row.Percentage = types.Ratio(float64(row.Won)*100, float64(row.Total))
		out = append(out, *row)
	}
	slices.SortFunc(out, func(a, b types.TossOutcome) int {
		return strings.Compare(a.Decision, b.Decision)
	})
	return out
}

// TopScorers ranks batters by runs off the bat and keeps the first n.
func TopScorers(ds *repository.Dataset, n int) []types.Entry {
	t := newTally[string]()
	for _, d := range ds.Deliveries() {
		t.add(d.Batter, d.BatsmanRuns)
	}
	return ranked(t, n)
}

// TopWicketTakers ranks bowlers by deliveries with a recorded dismissal
// (run outs included) and keeps the first n.
func TopWicketTakers(ds *repository.Dataset, n int) []types.Entry {
	t := newTally[string]()
	for _, d := range ds.Deliveries() {
		if d.IsWicket() {
			t.add(d.Bowler, 1)
		}
	}
	return ranked(t, n)
}

func ranked(t *tally[string], n int) []types.Entry {
	rows := head(t.desc(), n)
	out := make([]types.Entry, len(rows))
	for i, r := range rows {
		out[i] = types.Entry{Rank: i + 1, Player: r.key, Value: r.sum}
	}
	return out
}

// PlayerSeasonPerformance sums a batter's runs per season, ascending.
// Deliveries whose match is unknown carry no season and are skipped.
// An unknown batter yields an empty view.
func PlayerSeasonPerformance(ds *repository.Dataset, batter string) []types.SeasonRuns {
	bySeason := make(map[int]int)
	for _, d := range ds.Deliveries() {
		if d.Batter != batter {
			continue
		}
		season, ok := ds.SeasonOf(d.MatchID)
		if !ok {
			continue
		}
		bySeason[season] += d.BatsmanRuns
	}
	out := make([]types.SeasonRuns, 0, len(bySeason))
	for s, r := range bySeason {
		out = append(out, types.SeasonRuns{Season: s, Runs: r})
	}
	slices.SortFunc(out, func(a, b types.SeasonRuns) int { return a.Season - b.Season })
	return out
}

// BowlerSummary aggregates a bowler's balls, runs conceded and wickets.
// Rates are not applicable when their denominator is zero, which is also
// how an unknown bowler is reported.
func BowlerSummary(ds *repository.Dataset, bowler string) types.BowlerSummary {
	s := types.BowlerSummary{Bowler: bowler}
	for _, d := range ds.Deliveries() {
		if d.Bowler != bowler {
			continue
		}
		s.Balls++
		s.Runs += d.TotalRuns
		if d.IsWicket() {
			s.Wickets++
		}
	}
	s.Economy = types.Ratio(float64(s.Runs)*6, float64(s.Balls))
	s.StrikeRate = types.Ratio(float64(s.Balls), float64(s.Wickets))
	s.Average = types.Ratio(float64(s.Runs), float64(s.Wickets))
	return s
}

// VenueCounts counts matches per canonical venue, descending, first n.
func VenueCounts(ds *repository.Dataset, m *venue.Mapping, n int) []types.VenueCount {
	t := newTally[string]()
	for _, match := range ds.Matches() {
		t.add(m.Normalize(match.Venue), 1)
	}
	rows := head(t.desc(), n)
	out := make([]types.VenueCount, len(rows))
	for i, r := range rows {
		out[i] = types.VenueCount{Venue: r.key, Matches: r.sum}
	}
	return out
}

type teamVenue struct {
	team, venue string
}

// StrongestVenuePerTeam returns, for every team that won at least once, the
// canonical venue where it won most. Rows are ordered by wins descending;
// a team's tie is resolved by the venue it first won at.
func StrongestVenuePerTeam(ds *repository.Dataset, m *venue.Mapping) []types.TeamVenue {
	t := newTally[teamVenue]()
	for _, match := range ds.Matches() {
		if !match.HasResult() {
			continue
		}
		t.add(teamVenue{team: match.Winner, venue: m.Normalize(match.Venue)}, 1)
	}
	seen := make(map[string]struct{})
	var out []types.TeamVenue
	for _, r := range t.desc() {
		if _, dup := seen[r.key.team]; dup {
			continue
		}
		seen[r.key.team] = struct{}{}
		out = append(out, types.TeamVenue{Team: r.key.team, Venue: r.key.venue, Wins: r.sum})
	}
	return out
}

type venueDecision struct {
	venue, decision string
}

// VenueStrategy counts, among matches the toss winner also won, wins per
// canonical venue and toss decision. Rows are ordered by venue then decision.
func VenueStrategy(ds *repository.Dataset, m *venue.Mapping) []types.VenueDecision {
	t := newTally[venueDecision]()
	for _, match := range ds.Matches() {
		if !match.TossWinnerWon() {
			continue
		}
		t.add(venueDecision{venue: m.Normalize(match.Venue), decision: match.TossDecision}, 1)
	}
	out := make([]types.VenueDecision, len(t.keys))
	for i, k := range t.keys {
		out[i] = types.VenueDecision{Venue: k.venue, Decision: k.decision, Wins: t.sums[i]}
	}
	slices.SortFunc(out, func(a, b types.VenueDecision) int {
		if c := strings.Compare(a.Venue, b.Venue); c != 0 {
			return c
		}
		return strings.Compare(a.Decision, b.Decision)
	})
	return out
}

// Batters lists distinct batter names, sorted.
func Batters(ds *repository.Dataset) []string {
	return distinct(ds.Deliveries(), func(d model.Delivery) string { return d.Batter })
}

// Bowlers lists distinct bowler names, sorted.
func Bowlers(ds *repository.Dataset) []string {
	return distinct(ds.Deliveries(), func(d model.Delivery) string { return d.Bowler })
}

func distinct(ds []model.Delivery, name func(model.Delivery) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range ds {
		n := name(d)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
