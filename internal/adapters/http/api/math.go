package api

import (
	"context"
	"net/http"

	"github.com/okian/arith/internal/domain/arith"
	"github.com/okian/arith/internal/domain/types"
	"github.com/okian/arith/pkg/metrics"
	"github.com/okian/arith/pkg/router"
)

// MathController serves the parent application's arithmetic routes.
type MathController struct {
	diag Diagnostics
}

// NewMathController creates a MathController.
func NewMathController(diag Diagnostics) *MathController {
	return &MathController{diag: diag}
}

// Collection implements router.Provider.
func (c *MathController) Collection() router.Collection {
	return router.Collection{
		Name: "math",
		Routes: []router.Route{
			{
				Method:  http.MethodGet,
				Path:    "/add",
				Name:    "add",
				Summary: "Add two numbers",
				Params: []router.Param{
					{Name: "a", Description: "First number", Required: true},
					{Name: "b", Description: "Second number", Required: true},
				},
				Handle: c.add,
			},
		},
	}
}

// add handles GET /add?a=&b=.
func (c *MathController) add(ctx context.Context, in router.Values) (any, error) {
	c.diag.trace(ctx)

	a, b := in.Float("a"), in.Float("b")
	metrics.RecordOperation("add")
	return types.NewResult(a, b, arith.Add(a, b)), nil
}
