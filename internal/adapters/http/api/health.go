package api

import (
	"context"
	"net/http"

	"github.com/okian/arith/internal/domain/health"
	"github.com/okian/arith/pkg/router"
)

// HealthController serves GET /health.
type HealthController struct {
	checker *health.Checker
	diag    Diagnostics
}

// NewHealthController creates a HealthController.
func NewHealthController(checker *health.Checker, diag Diagnostics) *HealthController {
	if checker == nil {
		checker = health.NewChecker()
	}
	return &HealthController{checker: checker, diag: diag}
}

// Collection implements router.Provider.
func (c *HealthController) Collection() router.Collection {
	return router.Collection{
		Name: "health",
		Routes: []router.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Name:    "health",
				Summary: "Report process health",
				Handle:  c.health,
			},
		},
	}
}

func (c *HealthController) health(ctx context.Context, _ router.Values) (any, error) {
	c.diag.trace(ctx)
	return c.checker.Check(ctx), nil
}
