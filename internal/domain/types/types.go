// Package types contains common types used across the application.
package types

import "github.com/okian/arith/pkg/router"

// Result is the per-request record returned by arithmetic routes.
type Result struct {
	A      router.Number `json:"a"`
	B      router.Number `json:"b"`
	Result router.Number `json:"result"`
}

// NewResult builds a Result from raw operands and the computed value.
func NewResult(a, b, result float64) Result {
	return Result{A: router.Number(a), B: router.Number(b), Result: router.Number(result)}
}
