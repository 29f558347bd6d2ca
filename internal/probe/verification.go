package probe

import (
	"fmt"
	"math"
)

// verify compares a response with the case. Operands must echo exactly;
// results must match the local computation bit for bit, with null standing
// in for a non-finite expectation.
func verify(c Case, r Response) (string, string) {
	if r.A == nil || r.B == nil || *r.A != c.A || *r.B != c.B {
		return outcomeMismatch, "operands were not echoed"
	}
	finite := !math.IsNaN(c.Expected) && !math.IsInf(c.Expected, 0)
	switch {
	case !finite && r.Result == nil:
		return outcomePassed, ""
	case r.Result == nil:
		return outcomeMismatch, fmt.Sprintf("expected %v, got null", c.Expected)
	case *r.Result != c.Expected:
		return outcomeMismatch, fmt.Sprintf("expected %v, got %v", c.Expected, *r.Result)
	}
	return outcomePassed, ""
}
