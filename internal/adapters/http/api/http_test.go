package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/iplboard/internal/adapters/http/api"
	service "github.com/okian/iplboard/internal/app"
	"github.com/okian/iplboard/internal/domain/report"
	"github.com/okian/iplboard/internal/domain/types"
	"github.com/okian/iplboard/pkg/logger"
)

func init() {
	_ = logger.Init()
}

type mockDependencies struct {
	views     report.Views
	entries   []types.Entry
	topErr    error
	seasons   map[string][]types.SeasonRuns
	exportErr error
	lastLimit int
}

func (m *mockDependencies) Views() report.Views { return m.views }

func (m *mockDependencies) top(n int) ([]types.Entry, error) {
	m.lastLimit = n
	if m.topErr != nil {
		return nil, m.topErr
	}
	if n > len(m.entries) {
		return m.entries, nil
	}
	return m.entries[:n], nil
}

func (m *mockDependencies) TopScorers(_ context.Context, n int) ([]types.Entry, error) {
	return m.top(n)
}

func (m *mockDependencies) TopWicketTakers(_ context.Context, n int) ([]types.Entry, error) {
	return m.top(n)
}

func (m *mockDependencies) PlayerSeason(_ context.Context, batter string) (service.PlayerSeasonView, error) {
	return service.PlayerSeasonView{Batter: batter, Seasons: m.seasons[batter]}, nil
}

func (m *mockDependencies) Bowler(_ context.Context, bowler string) (types.BowlerSummary, error) {
	if bowler == "B1" {
		return types.BowlerSummary{Bowler: bowler, Balls: 12, Runs: 18, Wickets: 2,
			Economy: types.RateOf(9), StrikeRate: types.RateOf(6), Average: types.RateOf(9)}, nil
	}
	return types.BowlerSummary{Bowler: bowler, Economy: types.NA(), StrikeRate: types.NA(), Average: types.NA()}, nil
}

func (m *mockDependencies) Export(_ context.Context, w io.Writer) error {
	if m.exportErr != nil {
		return m.exportErr
	}
	_, err := w.Write([]byte("PK\x03\x04"))
	return err
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

type mockSelector struct{}

func (mockSelector) Select(_ context.Context, kind, name string, notify func(service.State)) (service.SelectionResult, error) {
	if kind != service.KindBatter && kind != service.KindBowler {
		return service.SelectionResult{}, service.ErrUnknownSelection
	}
	notify(service.StateRecomputing)
	defer notify(service.StateIdle)
	return service.SelectionResult{Kind: kind, Name: name,
		Batter: &service.PlayerSeasonView{Batter: name, Seasons: []types.SeasonRuns{{Season: 2008, Runs: 10}}}}, nil
}

type mockFragments struct{}

func (mockFragments) Fragment(res service.SelectionResult) (string, error) {
	return "<div>" + res.Name + "</div>", nil
}

func newRouter(deps *mockDependencies, opts ...api.Option) *mux.Router {
	router := mux.NewRouter()
	router.Use(api.RequestIDMiddleware)
	api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, opts...).
		Register(context.Background(), router)
	return router
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleDeps() *mockDependencies {
	return &mockDependencies{
		views: report.Views{
			Summary: types.Summary{Matches: 3, Runs: 10, Wickets: 1},
			Seasons: []types.SeasonCount{{Season: 2008, Matches: 2}, {Season: 2009, Matches: 1}},
			TeamWins: []types.TeamCount{{Team: "A", Wins: 2}},
			TossImpact: []types.TossOutcome{
				{Decision: "bat", Total: 0, Percentage: types.NA()},
				{Decision: "field", Won: 1, Lost: 1, Total: 2, Percentage: types.RateOf(50)},
			},
			Batters: []string{"P1", "P2"},
			Bowlers: []string{"B1"},
		},
		entries: []types.Entry{
			{Rank: 1, Player: "P1", Value: 9},
			{Rank: 2, Player: "P2", Value: 1},
		},
		seasons: map[string][]types.SeasonRuns{"P1": {{Season: 2008, Runs: 9}}},
	}
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		router := newRouter(sampleDeps())

		Convey("Health serves the metrics exposition", func() {
			w := get(router, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Stats returns the provider map", func() {
			w := get(router, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"started":true`)
		})

		Convey("Every response carries a request id", func() {
			w := get(router, "/api/summary")
			So(w.Header().Get(api.HeaderRequestID), ShouldNotBeEmpty)

			req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
			req.Header.Set(api.HeaderRequestID, "abc")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			So(rec.Header().Get(api.HeaderRequestID), ShouldEqual, "abc")
		})

		Convey("Unknown paths are not found", func() {
			So(get(router, "/api/unknown").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("The websocket route is absent without selectors", func() {
			So(get(router, "/ws/selection").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestViewHandlers(t *testing.T) {
	Convey("Given cached views", t, func() {
		router := newRouter(sampleDeps())

		Convey("Summary returns the three counters", func() {
			w := get(router, "/api/summary")
			So(w.Code, ShouldEqual, http.StatusOK)
			var got types.Summary
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldResemble, types.Summary{Matches: 3, Runs: 10, Wickets: 1})
		})

		Convey("Seasons are returned in order", func() {
			var got []types.SeasonCount
			So(json.Unmarshal(get(router, "/api/seasons").Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 2)
			So(got[0].Season, ShouldEqual, 2008)
		})

		Convey("Toss impact encodes an undefined percentage as null", func() {
			body := get(router, "/api/toss/impact").Body.String()
			So(body, ShouldContainSubstring, `"percentage":null`)
			So(body, ShouldContainSubstring, `"percentage":50`)
		})

		Convey("Selector lists are exposed", func() {
			So(get(router, "/api/batters").Body.String(), ShouldContainSubstring, `["P1","P2"]`)
			So(get(router, "/api/bowlers").Body.String(), ShouldContainSubstring, `["B1"]`)
		})

		Convey("All views are available at once", func() {
			var got report.Views
			So(json.Unmarshal(get(router, "/api/views").Body.Bytes(), &got), ShouldBeNil)
			So(got.TeamWins, ShouldHaveLength, 1)
		})
	})
}

func TestTopHandlers(t *testing.T) {
	Convey("Given ranked entries", t, func() {
		deps := sampleDeps()
		router := newRouter(deps, api.WithMaxTopLimit(50), api.WithDefaultTopLimit(20))

		Convey("A valid limit trims the ranking", func() {
			w := get(router, "/api/batters/top?limit=1")
			So(w.Code, ShouldEqual, http.StatusOK)
			var got []types.Entry
			So(json.Unmarshal(w.Body.Bytes(), &got), ShouldBeNil)
			So(got, ShouldHaveLength, 1)
			So(got[0].Player, ShouldEqual, "P1")
		})

		Convey("An omitted limit uses the default", func() {
			So(get(router, "/api/bowlers/top").Code, ShouldEqual, http.StatusOK)
			So(deps.lastLimit, ShouldEqual, 20)
		})

		Convey("A non-numeric limit is rejected", func() {
			w := get(router, "/api/batters/top?limit=abc")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
		})

		Convey("A zero limit is rejected", func() {
			So(get(router, "/api/batters/top?limit=0").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("A limit over the cap is rejected", func() {
			w := get(router, "/api/bowlers/top?limit=51")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(w.Body.String(), ShouldContainSubstring, `"code":"limit_exceeded"`)
		})

		Convey("A service that has not started reports unavailable", func() {
			deps.topErr = service.ErrNotStarted
			w := get(router, "/api/batters/top?limit=5")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(w.Body.String(), ShouldContainSubstring, `"code":"not_ready"`)
		})

		Convey("Other failures are internal errors", func() {
			deps.topErr = errors.New("boom")
			So(get(router, "/api/batters/top?limit=5").Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestPlayerHandlers(t *testing.T) {
	Convey("Given a selection-capable server", t, func() {
		router := newRouter(sampleDeps())

		Convey("A known batter returns the season series", func() {
			w := get(router, "/api/batters/P1/seasons")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"runs":9`)
		})

		Convey("An unknown batter returns an empty series", func() {
			w := get(router, "/api/batters/Nobody%20Here/seasons")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"batter":"Nobody Here"`)
			So(w.Body.String(), ShouldContainSubstring, `"seasons":[]`)
		})

		Convey("A bowler summary carries every rate", func() {
			var got types.BowlerSummary
			So(json.Unmarshal(get(router, "/api/bowlers/B1/summary").Body.Bytes(), &got), ShouldBeNil)
			So(got.Wickets, ShouldEqual, 2)
			So(got.Economy.Value, ShouldEqual, 9.0)
		})

		Convey("A bowler without deliveries has null rates", func() {
			body := get(router, "/api/bowlers/X/summary").Body.String()
			So(body, ShouldContainSubstring, `"economy":null`)
		})
	})
}

func TestExportHandler(t *testing.T) {
	Convey("Given an export endpoint", t, func() {
		deps := sampleDeps()
		router := newRouter(deps)

		Convey("It streams the workbook as an attachment", func() {
			w := get(router, "/api/export.xlsx")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldStartWith, "application/vnd.openxmlformats")
			So(w.Header().Get("Content-Disposition"), ShouldContainSubstring, api.ExportFilename)
			So(w.Body.String(), ShouldStartWith, "PK")
		})

		Convey("A failed export reports JSON", func() {
			deps.exportErr = errors.New("disk full")
			w := get(router, "/api/export.xlsx")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "disk full")
		})
	})
}

func TestSelectionWebsocket(t *testing.T) {
	Convey("Given a websocket selection endpoint", t, func() {
		router := newRouter(sampleDeps(),
			api.WithSelectors(func() api.Selector { return mockSelector{} }),
			api.WithFragments(mockFragments{}),
		)
		srv := httptest.NewServer(router)
		defer srv.Close()

		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/selection"
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		So(err, ShouldBeNil)
		defer conn.Close()

		read := func() map[string]any {
			var msg map[string]any
			So(conn.ReadJSON(&msg), ShouldBeNil)
			return msg
		}

		Convey("A batter selection reports recomputing then the rendered result", func() {
			So(conn.WriteJSON(map[string]string{"kind": "batter", "name": "P1"}), ShouldBeNil)

			first := read()
			So(first["state"], ShouldEqual, string(service.StateRecomputing))
			So(first["kind"], ShouldEqual, "batter")

			second := read()
			So(second["state"], ShouldEqual, string(service.StateIdle))
			So(second["kind"], ShouldEqual, "batter")
			So(second["html"], ShouldEqual, "<div>P1</div>")
			So(second["data"], ShouldNotBeNil)
		})

		Convey("An unknown kind is rejected without recomputing", func() {
			So(conn.WriteJSON(map[string]string{"kind": "umpire", "name": "X"}), ShouldBeNil)

			msg := read()
			So(msg["state"], ShouldEqual, string(service.StateIdle))
			So(msg["error"], ShouldNotBeEmpty)
			So(msg["data"], ShouldBeNil)
		})
	})
}

func TestErrorKinds(t *testing.T) {
	Convey("Given API errors", t, func() {
		Convey("NewKind exposes the kind", func() {
			err := api.NewKind("api.op", api.ErrBadRequest)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request")
		})

		Convey("WrapKind exposes both kind and cause", func() {
			cause := errors.New("cause")
			err := api.WrapKind("api.op", api.ErrLimitExceeded, cause)
			So(errors.Is(err, api.ErrLimitExceeded), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
		})

		Convey("Wrap of nil is nil", func() {
			So(api.Wrap("api.op", nil), ShouldBeNil)
		})
	})
}
