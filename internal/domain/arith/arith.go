// Package arith holds the parent application's arithmetic operations.
package arith

// Add returns a + b with IEEE-754 semantics; infinities and NaN propagate.
func Add(a, b float64) float64 {
	return a + b
}
