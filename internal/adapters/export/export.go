// Package export writes every dashboard view into an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okian/iplboard/internal/domain/report"
	"github.com/okian/iplboard/internal/domain/types"
)

// Sheet names, in workbook order.
const (
	SheetSummary         = "Summary"
	SheetSeasons         = "Seasons"
	SheetTeamWins        = "TeamWins"
	SheetTossSplit       = "TossSplit"
	SheetTossImpact      = "TossImpact"
	SheetTopScorers      = "TopScorers"
	SheetTopWicketTakers = "TopWicketTakers"
	SheetVenueCounts     = "VenueCounts"
	SheetStrongestVenues = "StrongestVenues"
	SheetVenueStrategy   = "VenueStrategy"
)

// Meta describes where the views came from.
type Meta struct {
	DatasetID      string
	MappingVersion string
	GeneratedAt    time.Time
}

type sheet struct {
	name   string
	header []any
	rows   [][]any
}

// Write builds the workbook and streams it to w.
func Write(ctx context.Context, w io.Writer, v report.Views, meta Meta) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("%w: style: %w", ErrExport, err)
	}

	for i, s := range sheets(v, meta) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrExport, s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrExport, s.name, err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrExport, s.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(s.header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last+"1", headerStyle); err != nil {
		return err
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	return f.SetColWidth(s.name, "A", last, 18)
}

// rate writes a not-applicable value as text so the cell never reads as zero.
func rate(r types.Rate) any {
	if !r.Valid {
		return types.NotApplicable
	}
	return r.Value
}

func sheets(v report.Views, meta Meta) []sheet {
	out := []sheet{{
		name:   SheetSummary,
		header: []any{"Metric", "Value"},
		rows: [][]any{
			{"Matches Played", v.Summary.Matches},
			{"Total Runs", v.Summary.Runs},
			{"Total Wickets", v.Summary.Wickets},
			{"Dataset", meta.DatasetID},
			{"Venue Mapping", meta.MappingVersion},
			{"Generated At", meta.GeneratedAt.UTC().Format(time.RFC3339)},
		},
	}}

	seasons := sheet{name: SheetSeasons, header: []any{"Season", "Matches"}}
	for _, r := range v.Seasons {
		seasons.rows = append(seasons.rows, []any{r.Season, r.Matches})
	}

	wins := sheet{name: SheetTeamWins, header: []any{"Team", "Wins"}}
	for _, r := range v.TeamWins {
		wins.rows = append(wins.rows, []any{r.Team, r.Wins})
	}

	split := sheet{name: SheetTossSplit, header: []any{"Decision", "Matches", "Proportion"}}
	for _, r := range v.TossSplit {
		split.rows = append(split.rows, []any{r.Decision, r.Matches, types.Round2(r.Proportion)})
	}

	impact := sheet{
		name:   SheetTossImpact,
		header: []any{"Decision", "Won Match After Toss", "Lost Match After Toss", "Total", "Win %"},
	}
	for _, r := range v.TossImpact {
		impact.rows = append(impact.rows, []any{r.Decision, r.Won, r.Lost, r.Total, rate(r.Percentage)})
	}

	scorers := sheet{name: SheetTopScorers, header: []any{"Rank", "Batter", "Runs"}}
	for _, r := range v.TopScorers {
		scorers.rows = append(scorers.rows, []any{r.Rank, r.Player, r.Value})
	}

	wickets := sheet{name: SheetTopWicketTakers, header: []any{"Rank", "Bowler", "Wickets"}}
	for _, r := range v.TopWicketTakers {
		wickets.rows = append(wickets.rows, []any{r.Rank, r.Player, r.Value})
	}

	venues := sheet{name: SheetVenueCounts, header: []any{"Venue", "Matches"}}
	for _, r := range v.VenueCounts {
		venues.rows = append(venues.rows, []any{r.Venue, r.Matches})
	}

	strongest := sheet{name: SheetStrongestVenues, header: []any{"Team", "Venue", "Wins"}}
	for _, r := range v.StrongestVenues {
		strongest.rows = append(strongest.rows, []any{r.Team, r.Venue, r.Wins})
	}

	strategy := sheet{name: SheetVenueStrategy, header: []any{"Venue", "Toss Decision", "Wins"}}
	for _, r := range v.VenueStrategy {
		strategy.rows = append(strategy.rows, []any{r.Venue, r.Decision, r.Wins})
	}

	return append(out, seasons, wins, split, impact, scorers, wickets, venues, strongest, strategy)
}
