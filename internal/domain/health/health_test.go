package health_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/arith/internal/domain/health"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChecker(t *testing.T) {
	Convey("Given a checker with a fake clock", t, func() {
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		c := health.NewChecker(
			health.WithService("Parent Module API", "1.0.0"),
			health.WithClock(func() time.Time { return now }),
		)

		Convey("When time passes", func() {
			now = now.Add(90 * time.Second)
			st := c.Check(context.Background())

			Convey("Then it reports healthy with uptime", func() {
				So(st.Status, ShouldEqual, health.StatusHealthy)
				So(st.Service, ShouldEqual, "Parent Module API")
				So(st.Version, ShouldEqual, "1.0.0")
				So(st.UptimeSeconds, ShouldEqual, 90)
			})
		})
	})

	Convey("Given a checker with defaults", t, func() {
		st := health.NewChecker().Check(context.Background())

		Convey("Then it is healthy", func() {
			So(st.Status, ShouldEqual, "healthy")
			So(st.UptimeSeconds, ShouldBeGreaterThanOrEqualTo, 0)
		})
	})
}
