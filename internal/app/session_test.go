package service_test

import (
	"context"
	"errors"
	"testing"

	service "github.com/okian/iplboard/internal/app"
	"github.com/okian/iplboard/internal/adapters/repository"
	"github.com/okian/iplboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSession(t *testing.T) {
	Convey("Given a session over a started service", t, func() {
		ctx := context.Background()
		ds := repository.NewDataset(
			[]model.Match{{ID: 1, Season: 2019}},
			[]model.Delivery{
				{MatchID: 1, Batter: "A", Bowler: "B", BatsmanRuns: 4, TotalRuns: 4},
				{MatchID: 1, Batter: "A", Bowler: "B", TotalRuns: 0, DismissalKind: "lbw"},
			})
		svc := service.New(service.WithDataset(ds))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()
		sess := service.NewSession(svc)

		So(sess.State(), ShouldEqual, service.StateIdle)

		Convey("When a batter is selected", func() {
			var seen []service.State
			res, err := sess.Select(ctx, service.KindBatter, "A", func(s service.State) { seen = append(seen, s) })

			Convey("Then it should pass through recomputing back to idle", func() {
				So(err, ShouldBeNil)
				So(seen, ShouldResemble, []service.State{service.StateRecomputing, service.StateIdle})
				So(sess.State(), ShouldEqual, service.StateIdle)
				So(res.Batter.Seasons[0].Runs, ShouldEqual, 4)
				So(res.Bowler, ShouldBeNil)
			})

			Convey("Then the selection should be remembered", func() {
				batter, bowler := sess.Current()
				So(batter, ShouldEqual, "A")
				So(bowler, ShouldEqual, "")
			})
		})

		Convey("When a bowler is selected", func() {
			res, err := sess.Select(ctx, service.KindBowler, "B", nil)

			Convey("Then the summary should be computed", func() {
				So(err, ShouldBeNil)
				So(res.Bowler.Wickets, ShouldEqual, 1)
				So(res.Bowler.Economy.Value, ShouldEqual, 12.0)
			})
		})

		Convey("When an unknown kind is selected", func() {
			var seen []service.State
			_, err := sess.Select(ctx, "umpire", "X", func(s service.State) { seen = append(seen, s) })

			Convey("Then it should be rejected without a transition", func() {
				So(errors.Is(err, service.ErrUnknownSelection), ShouldBeTrue)
				So(seen, ShouldBeEmpty)
				So(sess.State(), ShouldEqual, service.StateIdle)
			})
		})
	})
}
