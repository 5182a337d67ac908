package types_test

import (
	"encoding/json"
	"testing"

	types "github.com/okian/iplboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRate(t *testing.T) {
	Convey("Given rates", t, func() {
		Convey("When the denominator is zero", func() {
			r := types.Ratio(120, 0)

			Convey("Then the rate should be not applicable", func() {
				So(r.Valid, ShouldBeFalse)
				So(r.String(), ShouldEqual, types.NotApplicable)
			})
		})

		Convey("When the denominator is positive", func() {
			r := types.Ratio(2, 3)

			Convey("Then the value should be rounded to two decimals", func() {
				So(r.Valid, ShouldBeTrue)
				So(r.Value, ShouldEqual, 0.67)
				So(r.String(), ShouldEqual, "0.67")
			})
		})

		Convey("When the zero value is used", func() {
			var r types.Rate

			Convey("Then it should be not applicable", func() {
				So(r, ShouldResemble, types.NA())
			})
		})
	})
}

func TestRateJSON(t *testing.T) {
	Convey("Given a bowler summary with an undefined strike rate", t, func() {
		s := types.BowlerSummary{
			Bowler:     "X",
			Balls:      6,
			Runs:       10,
			Economy:    types.RateOf(10),
			StrikeRate: types.NA(),
			Average:    types.NA(),
		}

		Convey("When encoding", func() {
			b, err := json.Marshal(s)

			Convey("Then undefined rates should be null", func() {
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `"economy":10`)
				So(string(b), ShouldContainSubstring, `"strike_rate":null`)
				So(string(b), ShouldContainSubstring, `"average":null`)
			})

			Convey("Then decoding should restore validity", func() {
				var back types.BowlerSummary
				So(json.Unmarshal(b, &back), ShouldBeNil)
				So(back.Economy.Valid, ShouldBeTrue)
				So(back.Economy.Value, ShouldEqual, 10.0)
				So(back.StrikeRate.Valid, ShouldBeFalse)
			})
		})
	})
}

func TestRound2(t *testing.T) {
	Convey("Given values to round", t, func() {
		So(types.Round2(33.333), ShouldEqual, 33.33)
		So(types.Round2(66.666), ShouldEqual, 66.67)
		So(types.Round2(100), ShouldEqual, 100.0)
	})
}
