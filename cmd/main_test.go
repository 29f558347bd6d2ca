package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/arith/internal/config"
	"github.com/okian/arith/internal/environment"
	"github.com/okian/arith/pkg/logger"
	"github.com/okian/arith/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main wiring", t, func() {
		convey.So(logger.Init(), convey.ShouldBeNil)
		ctx := context.Background()

		convey.Convey("When configuration comes from the environment", func() {
			t.Setenv("ARITH_ADDR", "127.0.0.1:0")
			t.Setenv("ARITH_TITLE", "Calculator")

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldBeNil)

			dir := t.TempDir()
			envFile := filepath.Join(dir, ".env")
			convey.So(os.WriteFile(envFile, []byte("TEST_KEY=hello\n"), 0o600), convey.ShouldBeNil)
			env, err := environment.Load(ctx, envFile, environment.WithProcessEnv(false))
			convey.So(err, convey.ShouldBeNil)

			a, err := buildApp(ctx, cfg, env, logger.Get())

			convey.Convey("Then the app is assembled from it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(a.Addr(), convey.ShouldEqual, "127.0.0.1:0")

				w := httptest.NewRecorder()
				a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Body.String(), convey.ShouldContainSubstring, `"service":"Calculator"`)
			})
		})

		convey.Convey("When sampling system metrics", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)

			families, err := metrics.GetRegistry().Gather()
			convey.So(err, convey.ShouldBeNil)
			names := make([]string, 0, len(families))
			for _, f := range families {
				names = append(names, f.GetName())
			}
			convey.So(names, convey.ShouldContain, "arith_api_system_goroutine_count")
		})
	})
}
