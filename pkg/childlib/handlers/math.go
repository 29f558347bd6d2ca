// Package handlers holds the child library's arithmetic operations.
package handlers

// Subtract returns a - b with IEEE-754 semantics; infinities and NaN propagate.
func Subtract(a, b float64) float64 {
	return a - b
}
