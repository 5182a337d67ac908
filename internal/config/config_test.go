package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/iplboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.MatchesPath, convey.ShouldEqual, "data/matches.csv")
			convey.So(cfg.DeliveriesPath, convey.ShouldEqual, "data/deliveries.csv")
			convey.So(cfg.SeasonFrom, convey.ShouldEqual, 2008)
			convey.So(cfg.SeasonTo, convey.ShouldEqual, 2024)
			convey.So(cfg.TopN, convey.ShouldEqual, 20)
			convey.So(cfg.VenueTopN, convey.ShouldEqual, 10)
			convey.So(cfg.MetricsRefreshInterval, convey.ShouldEqual, 10*time.Second)
		})

		convey.Convey("Then the defaults should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a config with invalid values", t, func() {
		cfg := config.New()

		convey.Convey("When the season range is inverted", func() {
			cfg.SeasonFrom, cfg.SeasonTo = 2020, 2010
			err := cfg.Validate()

			convey.Convey("Then validation should name the field", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "season_to must be >= season_from")
			})
		})

		convey.Convey("When the metrics refresh interval is below a second", func() {
			cfg.MetricsRefreshInterval = 100 * time.Millisecond
			err := cfg.Validate()

			convey.Convey("Then validation should name the key", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "metrics_refresh_interval")
			})
		})

		convey.Convey("When top_n exceeds max_top_limit", func() {
			cfg.TopN = 500
			err := cfg.Validate()

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "top_n must be <= max_top_limit")
			})
		})

		convey.Convey("When several fields are wrong", func() {
			cfg.LogFormat = "xml"
			cfg.MatchesPath = ""
			err := cfg.Validate()

			convey.Convey("Then every violation should be reported", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "log_format must be one of")
				convey.So(err.Error(), convey.ShouldContainSubstring, "matches_path must not be empty")
			})
		})
	})
}
