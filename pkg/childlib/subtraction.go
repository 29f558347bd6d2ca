// Package childlib is a standalone route library that contributes the
// subtraction route. It depends only on the public router contract, so any
// application can mount it.
package childlib

import (
	"context"
	"net/http"

	"github.com/okian/arith/pkg/childlib/handlers"
	"github.com/okian/arith/pkg/logger"
	"github.com/okian/arith/pkg/metrics"
	"github.com/okian/arith/pkg/router"
)

// DefaultDiagnosticKey is the settings key traced on every request.
const DefaultDiagnosticKey = "TEST_KEY"

// Result is the response body of GET /subtract.
type Result struct {
	A      router.Number `json:"a"`
	B      router.Number `json:"b"`
	Result router.Number `json:"result"`
}

// Controller serves the subtraction route.
type Controller struct {
	settings      router.Settings
	log           logger.Logger
	diagnosticKey string
}

// Option configures a Controller.
type Option func(*Controller)

// WithSettings injects the settings read for diagnostics.
func WithSettings(s router.Settings) Option {
	return func(c *Controller) {
		c.settings = s
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithDiagnosticKey overrides the traced settings key.
func WithDiagnosticKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.diagnosticKey = key
		}
	}
}

// NewController builds a Controller. Without WithLogger it stays silent.
func NewController(opts ...Option) *Controller {
	c := &Controller{diagnosticKey: DefaultDiagnosticKey}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collection implements router.Provider.
func (c *Controller) Collection() router.Collection {
	return router.Collection{
		Name: "subtraction",
		Routes: []router.Route{
			{
				Method:  http.MethodGet,
				Path:    "/subtract",
				Name:    "subtract",
				Summary: "Subtract b from a",
				Params: []router.Param{
					{Name: "a", Description: "First number", Required: true},
					{Name: "b", Description: "Second number", Required: true},
				},
				Handle: c.subtract,
			},
		},
	}
}

func (c *Controller) subtract(ctx context.Context, in router.Values) (any, error) {
	router.TraceSetting(ctx, c.log, c.settings, c.diagnosticKey)

	a, b := in.Float("a"), in.Float("b")
	metrics.RecordOperation("subtract")
	return Result{A: router.Number(a), B: router.Number(b), Result: router.Number(handlers.Subtract(a, b))}, nil
}
