package api

import (
	"net/http"
)

func (s *Server) handleViews(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views())
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views().Summary)
}

func (s *Server) handleSeasons(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views().Seasons)
}

func (s *Server) handleTeamWins(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views().TeamWins)
}

func (s *Server) handleTossSplit(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views().TossSplit)
}

func (s *Server) handleTossImpact(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views().TossImpact)
}

func (s *Server) handleBatters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views().Batters)
}

func (s *Server) handleBowlers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views().Bowlers)
}

func (s *Server) handleVenueCounts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views().VenueCounts)
}

func (s *Server) handleStrongestVenues(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views().StrongestVenues)
}

func (s *Server) handleVenueStrategy(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Views().VenueStrategy)
}
