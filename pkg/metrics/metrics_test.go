package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created with defaults", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "iplboard")
				So(manager.subsystem, ShouldEqual, "dashboard")
				So(manager.RefreshInterval(), ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 10}),
				WithRefreshInterval(3*time.Second),
				WithConstLabels(map[string]string{"dataset": "abc"}),
				WithPrometheusRegistry(registry),
			)
			manager.SetDatasetRecords("matches", 3)

			Convey("Then metric names and labels should follow the options", func() {
				So(manager.RefreshInterval(), ShouldEqual, 3*time.Second)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(strings.Join(names, ","), ShouldContainSubstring, "test_unit_dataset_records")
			})
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given the global manager reconfigured at startup", t, func() {
		before := GetRegistry()
		Configure(
			WithRefreshInterval(2*time.Second),
			WithConstLabels(map[string]string{"venue_mapping": "builtin-v1"}),
		)
		SetVenueUnmapped(2)

		Convey("Then a fresh registry carries the const labels", func() {
			So(GetRegistry(), ShouldNotPointTo, before)
			So(RefreshInterval(), ShouldEqual, 2*time.Second)

			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			var found bool
			for _, f := range families {
				if f.GetName() != "iplboard_dashboard_venue_unmapped" {
					continue
				}
				found = true
				labels := f.GetMetric()[0].GetLabel()
				So(labels, ShouldHaveLength, 1)
				So(labels[0].GetName(), ShouldEqual, "venue_mapping")
				So(labels[0].GetValue(), ShouldEqual, "builtin-v1")
			}
			So(found, ShouldBeTrue)
		})

		Convey("Then configuring again should not collide with earlier registrations", func() {
			So(func() { Configure() }, ShouldNotPanic)
			So(RefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording dataset metrics", func() {
			m.SetDatasetRecords("matches", 1095)
			m.SetDatasetRecords("deliveries", 260920)
			m.SetVenueUnmapped(4)
			m.ObserveDatasetLoad(120)

			Convey("Then gauges should hold the values", func() {
				So(testutil.ToFloat64(m.datasetRecords.WithLabelValues("matches")), ShouldAlmostEqual, 1095)
				So(testutil.ToFloat64(m.datasetRecords.WithLabelValues("deliveries")), ShouldAlmostEqual, 260920)
				So(testutil.ToFloat64(m.venueUnmapped), ShouldAlmostEqual, 4)
			})
		})

		Convey("When recording selection and view metrics", func() {
			m.IncSelectionRecompute("batter")
			m.IncSelectionRecompute("batter")
			m.IncSelectionRecompute("bowler")
			m.IncViewRenderError("toss_split")
			m.ObserveViewCompute("seasons", 2.5)
			m.IncExport()

			Convey("Then counters should accumulate per label", func() {
				So(testutil.ToFloat64(m.selectionRecomputes.WithLabelValues("batter")), ShouldAlmostEqual, 2)
				So(testutil.ToFloat64(m.selectionRecomputes.WithLabelValues("bowler")), ShouldAlmostEqual, 1)
				So(testutil.ToFloat64(m.viewRenderErrors.WithLabelValues("toss_split")), ShouldAlmostEqual, 1)
				So(testutil.ToFloat64(m.exportsTotal), ShouldAlmostEqual, 1)
			})
		})

		Convey("When recording HTTP metrics", func() {
			m.RecordHTTPRequest("summary", "GET", "200", 1.5)
			m.RecordHTTPError("batter_seasons", "GET", "not_found", "medium")
			m.AddWSConnections(2)
			m.AddWSConnections(-1)

			Convey("Then they should be observable", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("summary", "GET", "200")), ShouldAlmostEqual, 1)
				So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("batter_seasons", "GET", "not_found")), ShouldAlmostEqual, 1)
				So(testutil.ToFloat64(m.wsConnections), ShouldAlmostEqual, 1)
			})
		})
	})
}

func TestMetricsDisabled(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))

		Convey("When recording", func() {
			m.IncSelectionRecompute("batter")
			m.SetSystemStats(1024, 10)

			Convey("Then nothing should change", func() {
				So(testutil.ToFloat64(m.selectionRecomputes.WithLabelValues("batter")), ShouldAlmostEqual, 0)
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldAlmostEqual, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global registry", t, func() {
		So(func() {
			SetDatasetRecords("matches", 10)
			ObserveViewCompute("team_wins", 0.3)
			RecordHTTPRequest("healthz", "GET", "200", 0.1)
			SetSystemStats(2048, 5)
		}, ShouldNotPanic)
		So(GetRegistry(), ShouldNotBeNil)
		So(Since(time.Now().Add(-time.Millisecond)), ShouldBeGreaterThanOrEqualTo, 1)
	})
}
