package handlers_test

import (
	"math"
	"testing"

	"github.com/okian/arith/pkg/childlib/handlers"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSubtract(t *testing.T) {
	Convey("Given the subtract operation", t, func() {
		Convey("Then it subtracts finite numbers", func() {
			So(handlers.Subtract(10, 4), ShouldEqual, 6)
			So(handlers.Subtract(-1.5, 0.25), ShouldEqual, -1.75)
		})

		Convey("Then zero is a right identity", func() {
			for _, a := range []float64{0, 1, -3.25, 1e300, -1e-300} {
				So(handlers.Subtract(a, 0), ShouldEqual, a)
			}
		})

		Convey("Then subtracting what was added round-trips", func() {
			pairs := [][2]float64{{2, 3}, {0.1, 0.2}, {-1e10, 3.3}, {123.456, -789.012}}
			for _, p := range pairs {
				So(handlers.Subtract(p[0]+p[1], p[1]), ShouldAlmostEqual, p[0], 1e-9)
			}
		})

		Convey("Then infinities and NaN propagate", func() {
			So(math.IsNaN(handlers.Subtract(math.Inf(1), math.Inf(1))), ShouldBeTrue)
			So(math.IsInf(handlers.Subtract(math.Inf(-1), 1), -1), ShouldBeTrue)
			So(math.IsNaN(handlers.Subtract(1, math.NaN())), ShouldBeTrue)
		})
	})
}
