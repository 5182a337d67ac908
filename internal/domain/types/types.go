// Package types contains common types used across the application
package types

import (
	"encoding/json"
	"math"
	"strconv"
)

// NotApplicable is how an undefined Rate is displayed.
const NotApplicable = "N/A"

// Rate is a derived ratio that may be undefined (e.g. a strike rate with no
// wickets). The zero value is not applicable.
type Rate struct {
	Value float64
	Valid bool
}

// NA returns an undefined rate.
func NA() Rate { return Rate{} }

// RateOf returns a defined rate rounded to two decimals.
func RateOf(v float64) Rate {
	return Rate{Value: Round2(v), Valid: true}
}

// Ratio returns num/den rounded to two decimals, or NA when den is zero.
func Ratio(num, den float64) Rate {
	if den == 0 {
		return NA()
	}
	return RateOf(num / den)
}

// String renders the value with two decimals or NotApplicable.
func (r Rate) String() string {
	if !r.Valid {
		return NotApplicable
	}
	return strconv.FormatFloat(r.Value, 'f', 2, 64)
}

// MarshalJSON encodes an undefined rate as null.
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts a number or null.
func (r *Rate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = NA()
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Rate{Value: v, Valid: true}
	return nil
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary holds the three headline counters.
type Summary struct {
	Matches int `json:"matches"`
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
}

// SeasonCount is the number of matches played in a season.
type SeasonCount struct {
	Season  int `json:"season"`
	Matches int `json:"matches"`
}

// TeamCount is a per-team tally.
type TeamCount struct {
	Team string `json:"team"`
	Wins int    `json:"wins"`
}

// DecisionShare is the count and share of matches for one toss decision.
type DecisionShare struct {
	Decision   string  `json:"decision"`
	Matches    int     `json:"matches"`
	Proportion float64 `json:"proportion"`
}

// TossOutcome cross-tabulates a toss decision against the match result.
type TossOutcome struct {
	Decision   string `json:"decision"`
	Won        int    `json:"won"`
	Lost       int    `json:"lost"`
	Total      int    `json:"total"`
	Percentage Rate   `json:"percentage"`
}

// Entry represents a ranked player entry
type Entry struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Value  int    `json:"value"`
}

// SeasonRuns is a batter's run total in one season.
type SeasonRuns struct {
	Season int `json:"season"`
	Runs   int `json:"runs"`
}

// BowlerSummary aggregates one bowler's deliveries.
type BowlerSummary struct {
	Bowler     string `json:"bowler"`
	Balls      int    `json:"balls"`
	Runs       int    `json:"runs"`
	Wickets    int    `json:"wickets"`
	Economy    Rate   `json:"economy"`
	StrikeRate Rate   `json:"strike_rate"`
	Average    Rate   `json:"average"`
}

// VenueCount is the number of matches at a canonical venue.
type VenueCount struct {
	Venue   string `json:"venue"`
	Matches int    `json:"matches"`
}

// TeamVenue is a team's win count at one venue.
type TeamVenue struct {
	Team  string `json:"team"`
	Venue string `json:"venue"`
	Wins  int    `json:"wins"`
}

// VenueDecision counts toss-winner wins at a venue for one toss decision.
type VenueDecision struct {
	Venue    string `json:"venue"`
	Decision string `json:"decision"`
	Wins     int    `json:"wins"`
}
