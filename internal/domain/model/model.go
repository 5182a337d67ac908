// Package model contains domain models passed between layers.
package model

// Toss decisions as they appear in the match records.
const (
	DecisionBat   = "bat"
	DecisionField = "field"
)

// Match is one row of the match record set.
type Match struct {
	ID            int    // match id, referenced by Delivery.MatchID
	Season        int    // tournament year
	Date          string // YYYY-MM-DD as recorded
	City          string
	Venue         string // raw venue text, not normalized
	Team1         string
	Team2         string
	TossWinner    string
	TossDecision  string // bat | field
	Winner        string // empty when the match had no result
	Result        string
	PlayerOfMatch string
}

// HasResult reports whether the match produced a winner.
func (m Match) HasResult() bool {
	return m.Winner != ""
}

// TossWinnerWon reports whether the side that won the toss also won the match.
// A match without a result never counts as a toss-winner win.
func (m Match) TossWinnerWon() bool {
	return m.HasResult() && m.TossWinner == m.Winner
}

// Delivery is one ball bowled.
type Delivery struct {
	MatchID         int
	Inning          int
	Over            int
	Ball            int
	BattingTeam     string
	BowlingTeam     string
	Batter          string
	Bowler          string
	BatsmanRuns     int
	ExtraRuns       int
	TotalRuns       int    // batsman runs plus extras
	DismissalKind   string // empty when no wicket fell
	PlayerDismissed string
}

// IsWicket reports whether a dismissal was recorded on this ball.
func (d Delivery) IsWicket() bool {
	return d.DismissalKind != ""
}
