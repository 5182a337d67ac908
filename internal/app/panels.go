package service

import (
	"context"
	"errors"
	"io"

	"github.com/okian/iplboard/internal/adapters/chart"
	"github.com/okian/iplboard/internal/domain/report"
	"github.com/okian/iplboard/internal/domain/types"
	"github.com/okian/iplboard/pkg/logger"
	"github.com/okian/iplboard/pkg/metrics"
)

// Panel is one rendered chart. A panel that failed to render is marked
// Unavailable and carries no markup; other panels are unaffected.
type Panel struct {
	View        string `json:"view"`
	SVG         string `json:"svg,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
	Empty       bool   `json:"empty,omitempty"`
}

// PlayerSeasonView is the batter selection result.
type PlayerSeasonView struct {
	Batter  string             `json:"batter"`
	Seasons []types.SeasonRuns `json:"seasons"`
	Panel   Panel              `json:"-"`
}

// render draws one panel. ErrNoData yields an empty panel; any other
// failure is logged and counted.
func (s *Service) render(ctx context.Context, view string, draw func(io.Writer) error) Panel {
	svg, err := chart.String(draw)
	switch {
	case err == nil:
		return Panel{View: view, SVG: svg}
	case errors.Is(err, chart.ErrNoData):
		return Panel{View: view, Empty: true}
	default:
		s.logger.Warn(ctx, "chart render failed",
			logger.String("view", view),
			logger.Error(err),
		)
		metrics.IncViewRenderError(view)
		return Panel{View: view, Unavailable: true}
	}
}

func (s *Service) renderStatic(ctx context.Context) map[string]Panel {
	v := s.views
	r := s.renderer
	panels := make(map[string]Panel)

	panels[report.ViewSeasons] = s.render(ctx, report.ViewSeasons, func(w io.Writer) error {
		points := make([]chart.Point, len(v.Seasons))
		for i, row := range v.Seasons {
			points[i] = chart.Point{X: float64(row.Season), Y: float64(row.Matches)}
		}
		return r.Line(w, "Matches Played per Season", "Season", "Matches", points)
	})

	panels[report.ViewTeamWins] = s.render(ctx, report.ViewTeamWins, func(w io.Writer) error {
		bars := make([]chart.Bar, len(v.TeamWins))
		for i, row := range v.TeamWins {
			bars[i] = chart.Bar{Label: row.Team, Value: float64(row.Wins)}
		}
		return r.HorizontalBar(w, "Total Wins by Team", bars)
	})

	panels[report.ViewTossSplit] = s.render(ctx, report.ViewTossSplit, func(w io.Writer) error {
		slices := make([]chart.Bar, len(v.TossSplit))
		for i, row := range v.TossSplit {
			slices[i] = chart.Bar{Label: row.Decision, Value: float64(row.Matches)}
		}
		return r.Pie(w, "Toss Decision Distribution", slices)
	})

	panels[report.ViewTossImpact] = s.render(ctx, report.ViewTossImpact, func(w io.Writer) error {
		stacks := make([]chart.Stack, len(v.TossImpact))
		for i, row := range v.TossImpact {
			stacks[i] = chart.Stack{Label: row.Decision, Segments: []chart.Bar{
				{Label: "Won", Value: float64(row.Won)},
				{Label: "Lost", Value: float64(row.Lost)},
			}}
		}
		return r.StackedBar(w, "Toss Decision vs Match Result", stacks)
	})

	panels[report.ViewTopScorers] = s.render(ctx, report.ViewTopScorers, func(w io.Writer) error {
		return r.Bar(w, "Top Run Scorers", entryBars(v.TopScorers))
	})

	panels[report.ViewTopWicketTakers] = s.render(ctx, report.ViewTopWicketTakers, func(w io.Writer) error {
		return r.Bar(w, "Top Wicket Takers", entryBars(v.TopWicketTakers))
	})

	panels[report.ViewVenueCounts] = s.render(ctx, report.ViewVenueCounts, func(w io.Writer) error {
		bars := make([]chart.Bar, len(v.VenueCounts))
		for i, row := range v.VenueCounts {
			bars[i] = chart.Bar{Label: row.Venue, Value: float64(row.Matches)}
		}
		return r.HorizontalBar(w, "Top Venues by Matches", bars)
	})

	panels[report.ViewStrongestVenues] = s.render(ctx, report.ViewStrongestVenues, func(w io.Writer) error {
		bars := make([]chart.Bar, len(v.StrongestVenues))
		for i, row := range v.StrongestVenues {
			bars[i] = chart.Bar{Label: row.Team + " @ " + row.Venue, Value: float64(row.Wins)}
		}
		return r.HorizontalBar(w, "Strongest Venue for Each Team", bars)
	})

	panels[report.ViewVenueStrategy] = s.render(ctx, report.ViewVenueStrategy, func(w io.Writer) error {
		return r.StackedBar(w, "Toss Decision Wins by Venue", strategyStacks(v.VenueStrategy))
	})

	return panels
}

func entryBars(entries []types.Entry) []chart.Bar {
	bars := make([]chart.Bar, len(entries))
	for i, e := range entries {
		bars[i] = chart.Bar{Label: e.Player, Value: float64(e.Value)}
	}
	return bars
}

// strategyStacks groups venue rows (sorted by venue) into one bat/field stack per venue.
func strategyStacks(rows []types.VenueDecision) []chart.Stack {
	var stacks []chart.Stack
	for _, row := range rows {
		if len(stacks) == 0 || stacks[len(stacks)-1].Label != row.Venue {
			stacks = append(stacks, chart.Stack{Label: row.Venue})
		}
		last := &stacks[len(stacks)-1]
		last.Segments = append(last.Segments, chart.Bar{Label: row.Decision, Value: float64(row.Wins)})
	}
	return stacks
}
