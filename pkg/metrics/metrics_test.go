package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "arith")
				So(manager.subsystem, ShouldEqual, "api")
			})
		})

		Convey("When creating with custom options", func() {
			manager := NewManager(
				WithNamespace("calc"),
				WithSubsystem("http"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "calc")
				So(manager.subsystem, ShouldEqual, "http")
				So(manager.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
				So(manager.constLabels["env"], ShouldEqual, "test")
			})
		})

		Convey("When empty values are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "arith")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()))

		Convey("When recording requests and operations", func() {
			manager.RecordHTTPRequest("add", "GET", "200", 1.5)
			manager.RecordHTTPRequest("add", "GET", "200", 2.5)
			manager.RecordOperation("add")
			manager.RecordValidationFailure("add", "b", "missing")
			manager.RecordError("add", "GET", "client_error", "medium")

			Convey("Then the counters reflect them", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("add", "GET", "200")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.operations.WithLabelValues("add")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.validationFailures.WithLabelValues("add", "b", "missing")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.errorsByType.WithLabelValues("client_error", "medium")), ShouldEqual, 1)
			})
		})

		Convey("When updating system gauges", func() {
			manager.UpdateSystem(1024, 12, 0)

			Convey("Then the gauges hold the latest values", func() {
				So(testutil.ToFloat64(manager.systemMemoryUsage), ShouldEqual, 1024)
				So(testutil.ToFloat64(manager.systemGoroutineCount), ShouldEqual, 12)
			})
		})

		Convey("When recording is disabled", func() {
			disabled := NewManager(WithMetricsEnabled(false), WithPrometheusRegistry(prometheus.NewRegistry()))
			disabled.RecordOperation("subtract")

			Convey("Then nothing is counted", func() {
				So(testutil.ToFloat64(disabled.operations.WithLabelValues("subtract")), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the package-level recorders should not panic", func() {
			So(func() {
				RecordHTTPRequest("health", "GET", "200", 0.3)
				RecordError("add", "GET", "client_error", "medium")
				RecordOperation("add")
				RecordValidationFailure("subtract", "a", "float_parsing")
				UpdateSystem(2048, 4, 0.2)
			}, ShouldNotPanic)
		})

		Convey("And the registry should expose them", func() {
			RecordOperation("add")
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "arith_api_operations_total")
		})
	})
}
