package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/iplboard/internal/domain/types"
)

// State of a selection session.
type State string

// Session states. A session is idle-rendered until a selection arrives,
// recomputing while the narrow views are rebuilt, then idle-rendered again.
const (
	StateIdle        State = "idle-rendered"
	StateRecomputing State = "recomputing"
)

// Selection kinds.
const (
	KindBatter = "batter"
	KindBowler = "bowler"
)

// SelectionResult carries the recomputed view of one selection.
type SelectionResult struct {
	Kind   string               `json:"kind"`
	Name   string               `json:"name"`
	Batter *PlayerSeasonView    `json:"batter,omitempty"`
	Bowler *types.BowlerSummary `json:"bowler,omitempty"`
}

// Session tracks one viewer's selections. Selections are applied one at a
// time; a second Select waits for the first to finish.
type Session struct {
	svc *Service

	mu     sync.Mutex
	state  State
	batter string
	bowler string
}

// NewSession starts a session in the idle-rendered state.
func NewSession(svc *Service) *Session {
	return &Session{svc: svc, state: StateIdle}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the last applied batter and bowler selection.
func (s *Session) Current() (batter, bowler string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batter, s.bowler
}

// Select applies a selection. notify, when non-nil, observes every state
// transition. An unknown kind is rejected without leaving idle-rendered.
func (s *Session) Select(ctx context.Context, kind, name string, notify func(State)) (SelectionResult, error) {
	if kind != KindBatter && kind != KindBowler {
		return SelectionResult{}, fmt.Errorf("%w: %q", ErrUnknownSelection, kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transition(StateRecomputing, notify)
	defer s.transition(StateIdle, notify)

	res := SelectionResult{Kind: kind, Name: name}
	switch kind {
	case KindBatter:
		v, err := s.svc.PlayerSeason(ctx, name)
		if err != nil {
			return SelectionResult{}, err
		}
		res.Batter = &v
		s.batter = name
	case KindBowler:
		sum, err := s.svc.Bowler(ctx, name)
		if err != nil {
			return SelectionResult{}, err
		}
		res.Bowler = &sum
		s.bowler = name
	}
	return res, nil
}

func (s *Session) transition(to State, notify func(State)) {
	s.state = to
	if notify != nil {
		notify(to)
	}
}
