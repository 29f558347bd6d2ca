package probe

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/arith/internal/app"
	"github.com/okian/arith/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func f(v float64) *float64 { return &v }

func TestVerify(t *testing.T) {
	Convey("Given a case", t, func() {
		c := Case{Operation: "add", A: 2, B: 3, Expected: 5}

		Convey("Then a matching response passes", func() {
			out, _ := verify(c, Response{A: f(2), B: f(3), Result: f(5)})
			So(out, ShouldEqual, outcomePassed)
		})

		Convey("Then a wrong result is a mismatch", func() {
			out, detail := verify(c, Response{A: f(2), B: f(3), Result: f(6)})
			So(out, ShouldEqual, outcomeMismatch)
			So(detail, ShouldContainSubstring, "expected 5")
		})

		Convey("Then operands must be echoed", func() {
			out, _ := verify(c, Response{A: f(3), B: f(3), Result: f(5)})
			So(out, ShouldEqual, outcomeMismatch)
		})

		Convey("Then null stands in for a non-finite result", func() {
			inf := Case{Operation: "add", A: math.MaxFloat64, B: math.MaxFloat64, Expected: math.Inf(1)}
			out, _ := verify(inf, Response{A: f(math.MaxFloat64), B: f(math.MaxFloat64)})
			So(out, ShouldEqual, outcomePassed)
		})
	})
}

func TestGenerateCases(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		cfg := &Config{NumCases: 10, Magnitude: 100, Seed: 42}
		stats := &Stats{}
		cases := generateCases(context.Background(), cfg, stats)

		Convey("Then both operations get NumCases cases within bounds", func() {
			So(cases, ShouldHaveLength, 20)
			So(stats.CasesGenerated, ShouldEqual, 20)
			ids := map[string]bool{}
			for _, c := range cases {
				So(math.Abs(c.A), ShouldBeLessThanOrEqualTo, 100)
				So(math.Abs(c.B), ShouldBeLessThanOrEqualTo, 100)
				So(ids[c.ID], ShouldBeFalse)
				ids[c.ID] = true
			}
			So(cases[0].Operation, ShouldEqual, "add")
			So(cases[19].Operation, ShouldEqual, "subtract")
			So(cases[19].Expected, ShouldEqual, cases[19].A-cases[19].B)
		})

		Convey("Then the same seed yields the same operands", func() {
			again := generateCases(context.Background(), cfg, &Stats{})
			So(again[3].A, ShouldEqual, cases[3].A)
			So(again[3].B, ShouldEqual, cases[3].B)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running API", t, func() {
		a, err := app.New(context.Background())
		So(err, ShouldBeNil)
		srv := httptest.NewServer(a.Handler())
		defer srv.Close()

		cfg := &Config{
			BaseURL:   srv.URL,
			NumCases:  50,
			Workers:   4,
			Timeout:   5 * time.Second,
			Magnitude: 1e9,
			Seed:      7,
		}

		Convey("When the probe runs", func() {
			stats, err := Run(context.Background(), cfg)

			Convey("Then every case passes", func() {
				So(err, ShouldBeNil)
				So(stats.Passed, ShouldEqual, 100)
				So(stats.Mismatched, ShouldEqual, 0)
				So(stats.Failed, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a service that answers wrongly", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
		})
		mux.HandleFunc("GET /add", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"a":0,"b":0,"result":0}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		stats, err := Run(context.Background(), &Config{
			BaseURL: srv.URL, NumCases: 5, Workers: 2, Timeout: time.Second, Magnitude: 10, Seed: 1,
		})

		Convey("Then the probe reports mismatches and failures", func() {
			So(errors.Is(err, ErrMismatch), ShouldBeTrue)
			So(stats.Mismatched, ShouldEqual, 5)
			So(stats.Failed, ShouldEqual, 5)
		})
	})

	Convey("Given an unhealthy service", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := Run(context.Background(), &Config{BaseURL: srv.URL, NumCases: 1, Workers: 1, Timeout: time.Second})

		Convey("Then Run stops at the health check", func() {
			So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
		})
	})
}
