package venue_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/iplboard/internal/domain/venue"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewMapping(t *testing.T) {
	Convey("Given raw venue tables", t, func() {
		Convey("When the table chains one spelling through another", func() {
			m, err := venue.NewMapping("t1", map[string]string{
				"X Stadium, City, State": "X Stadium, City",
				"X Stadium, City":        "X Stadium",
			})

			Convey("Then every spelling should resolve to the final name", func() {
				So(err, ShouldBeNil)
				So(m.Normalize("X Stadium, City, State"), ShouldEqual, "X Stadium")
				So(m.Normalize("X Stadium, City"), ShouldEqual, "X Stadium")
				So(m.Normalize("X Stadium"), ShouldEqual, "X Stadium")
			})
		})

		Convey("When the table contains a cycle", func() {
			_, err := venue.NewMapping("t1", map[string]string{
				"A": "B",
				"B": "A",
			})

			Convey("Then construction should fail", func() {
				So(errors.Is(err, venue.ErrMappingCycle), ShouldBeTrue)
			})
		})

		Convey("When an entry maps to itself", func() {
			m, err := venue.NewMapping("t1", map[string]string{"A": "A"})

			Convey("Then it is not a cycle", func() {
				So(err, ShouldBeNil)
				So(m.Normalize("A"), ShouldEqual, "A")
			})
		})

		Convey("When a chained value carries surrounding spaces", func() {
			m, err := venue.NewMapping("t1", map[string]string{"A": " B", " B ": "C", "D": "  "})

			Convey("Then the chain should still resolve and normalizing stays stable", func() {
				So(err, ShouldBeNil)
				So(m.Normalize("A"), ShouldEqual, "C")
				So(m.Normalize(m.Normalize("A")), ShouldEqual, m.Normalize("A"))
				So(m.Normalize("B"), ShouldEqual, "C")
				So(m.Len(), ShouldEqual, 2)
			})
		})

		Convey("When the version is empty", func() {
			_, err := venue.NewMapping("", nil)

			Convey("Then construction should fail", func() {
				So(errors.Is(err, venue.ErrEmptyVersion), ShouldBeTrue)
			})
		})
	})
}

func TestNormalizeIdempotent(t *testing.T) {
	Convey("Given the built-in mapping", t, func() {
		m := venue.Default()
		So(m.Version(), ShouldEqual, venue.DefaultVersion)

		Convey("Then normalizing twice equals normalizing once for every entry", func() {
			for raw := range m.Entries() {
				once := m.Normalize(raw)
				So(m.Normalize(once), ShouldEqual, once)
			}
		})

		Convey("Then known variants collapse to one ground", func() {
			So(m.Normalize("IS Bindra Stadium, Mohali"), ShouldEqual, "Punjab Cricket Association Stadium")
			So(m.Normalize("M.Chinnaswamy Stadium"), ShouldEqual, "M Chinnaswamy Stadium")
			So(m.Normalize(" Eden Gardens, Kolkata "), ShouldEqual, "Eden Gardens")
		})

		Convey("Then unknown names pass through", func() {
			So(m.Normalize("Narendra Modi Stadium, Ahmedabad"), ShouldEqual, "Narendra Modi Stadium, Ahmedabad")
		})
	})
}

func TestUnmapped(t *testing.T) {
	Convey("Given raw venues from the match records", t, func() {
		m := venue.Default()
		raws := []string{
			"Eden Gardens",
			"Eden Gardens, Kolkata",
			"Narendra Modi Stadium, Ahmedabad",
			"Barabati Stadium",
			"Narendra Modi Stadium, Ahmedabad",
			"",
		}

		Convey("When listing unmapped names", func() {
			out := m.Unmapped(raws)

			Convey("Then only unknown distinct names should be reported, sorted", func() {
				So(out, ShouldResemble, []string{"Barabati Stadium", "Narendra Modi Stadium, Ahmedabad"})
			})
		})
	})
}

func TestLoadFile(t *testing.T) {
	Convey("Given a YAML venue table", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "venues.yaml")

		Convey("When it extends the built-in table", func() {
			So(os.WriteFile(path, []byte(`
version: "2024.2"
venues:
  "Narendra Modi Stadium, Ahmedabad": "Narendra Modi Stadium"
  "Dr. DY Patil Sports Academy": "Dr DY Patil Sports Academy"
`), 0o600), ShouldBeNil)

			m, err := venue.LoadFile(ctx, path)

			Convey("Then both tables should apply", func() {
				So(err, ShouldBeNil)
				So(m.Version(), ShouldEqual, "2024.2")
				So(m.Normalize("Narendra Modi Stadium, Ahmedabad"), ShouldEqual, "Narendra Modi Stadium")
				So(m.Normalize("Dr. DY Patil Sports Academy"), ShouldEqual, "Dr DY Patil Sports Academy")
				So(m.Normalize("Wankhede Stadium, Mumbai"), ShouldEqual, "Wankhede Stadium")
			})
		})

		Convey("When the file introduces a cycle", func() {
			So(os.WriteFile(path, []byte(`
venues:
  "Eden Gardens": "Eden Gardens, Kolkata"
`), 0o600), ShouldBeNil)

			_, err := venue.LoadFile(ctx, path)

			Convey("Then loading should fail", func() {
				So(errors.Is(err, venue.ErrLoadMapping), ShouldBeTrue)
				So(errors.Is(err, venue.ErrMappingCycle), ShouldBeTrue)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := venue.LoadFile(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			Convey("Then loading should fail", func() {
				So(errors.Is(err, venue.ErrLoadMapping), ShouldBeTrue)
			})
		})
	})
}
