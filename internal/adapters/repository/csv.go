package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/iplboard/internal/domain/model"
)

var (
	matchColumns    = []string{"id", "venue", "toss_winner", "toss_decision", "winner"}
	deliveryColumns = []string{"match_id", "batter", "bowler", "batsman_runs", "total_runs", "dismissal_kind"}
)

// header maps lower-cased column names to their index.
type header map[string]int

func readHeader(r *csv.Reader, required []string) (header, error) {
	cols, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMalformedRow)
		}
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedRow, err)
	}
	h := make(header, len(cols))
	for i, c := range cols {
		c = strings.TrimPrefix(c, "\ufeff")
		h[strings.ToLower(strings.TrimSpace(c))] = i
	}
	// older exports name the striker column "batsman"
	if _, ok := h["batter"]; !ok {
		if i, ok := h["batsman"]; ok {
			h["batter"] = i
		}
	}
	for _, c := range required {
		if _, ok := h[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	return h, nil
}

func (h header) has(col string) bool {
	_, ok := h[col]
	return ok
}

func (h header) str(rec []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// opt returns a field with pandas-style missing markers mapped to "".
func (h header) opt(rec []string, col string) string {
	v := h.str(rec, col)
	switch strings.ToLower(v) {
	case "na", "nan", "null", "none":
		return ""
	}
	return v
}

// num parses a required integer field.
func (h header) num(rec []string, col string) (int, error) {
	v := h.str(rec, col)
	n, err := strconv.Atoi(v)
	if err != nil {
		// float-typed exports write counts as "4.0"
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("%s=%q", col, v)
		}
		n = int(f)
	}
	return n, nil
}

// optNum parses an optional integer field; absent or empty is zero.
func (h header) optNum(rec []string, col string) (int, error) {
	if h.opt(rec, col) == "" {
		return 0, nil
	}
	return h.num(rec, col)
}

// ReadMatches parses matches.csv.
func ReadMatches(r io.Reader) ([]model.Match, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	h, err := readHeader(cr, matchColumns)
	if err != nil {
		return nil, err
	}
	if !h.has("season") && !h.has("date") {
		return nil, fmt.Errorf("%w: season or date", ErrMissingColumn)
	}

	var out []model.Match
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformedRow, row, err)
		}
		m, err := parseMatch(h, rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformedRow, row, err)
		}
		out = append(out, m)
	}
}

func parseMatch(h header, rec []string) (model.Match, error) {
	id, err := h.num(rec, "id")
	if err != nil {
		return model.Match{}, err
	}
	date := h.str(rec, "date")
	season, err := resolveSeason(date, h.str(rec, "season"))
	if err != nil {
		return model.Match{}, err
	}
	return model.Match{
		ID:            id,
		Season:        season,
		Date:          date,
		City:          h.opt(rec, "city"),
		Venue:         h.str(rec, "venue"),
		Team1:         h.str(rec, "team1"),
		Team2:         h.str(rec, "team2"),
		TossWinner:    h.str(rec, "toss_winner"),
		TossDecision:  strings.ToLower(h.str(rec, "toss_decision")),
		Winner:        h.opt(rec, "winner"),
		Result:        h.opt(rec, "result"),
		PlayerOfMatch: h.opt(rec, "player_of_match"),
	}, nil
}

// resolveSeason prefers the year of the match date; split labels such as
// "2020/21" name the tournament by its start year only by convention.
func resolveSeason(date, season string) (int, error) {
	for _, v := range []string{date, season} {
		if len(v) < 4 {
			continue
		}
		if y, err := strconv.Atoi(v[:4]); err == nil {
			return y, nil
		}
	}
	return 0, fmt.Errorf("season: date=%q season=%q", date, season)
}

// ReadDeliveries parses deliveries.csv.
func ReadDeliveries(r io.Reader) ([]model.Delivery, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	h, err := readHeader(cr, deliveryColumns)
	if err != nil {
		return nil, err
	}

	var out []model.Delivery
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformedRow, row, err)
		}
		d, err := parseDelivery(h, rec)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformedRow, row, err)
		}
		out = append(out, d)
	}
}

func parseDelivery(h header, rec []string) (model.Delivery, error) {
	var (
		d   model.Delivery
		err error
	)
	if d.MatchID, err = h.num(rec, "match_id"); err != nil {
		return d, err
	}
	if d.BatsmanRuns, err = h.num(rec, "batsman_runs"); err != nil {
		return d, err
	}
	if d.TotalRuns, err = h.num(rec, "total_runs"); err != nil {
		return d, err
	}
	if d.ExtraRuns, err = h.optNum(rec, "extra_runs"); err != nil {
		return d, err
	}
	if d.Inning, err = h.optNum(rec, "inning"); err != nil {
		return d, err
	}
	if d.Over, err = h.optNum(rec, "over"); err != nil {
		return d, err
	}
	if d.Ball, err = h.optNum(rec, "ball"); err != nil {
		return d, err
	}
	d.BattingTeam = h.str(rec, "batting_team")
	d.BowlingTeam = h.str(rec, "bowling_team")
	d.Batter = h.str(rec, "batter")
	d.Bowler = h.str(rec, "bowler")
	d.DismissalKind = h.opt(rec, "dismissal_kind")
	d.PlayerDismissed = h.opt(rec, "player_dismissed")
	return d, nil
}
