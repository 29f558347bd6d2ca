package router

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// Validation error types, named after the reasons clients see in the body.
const (
	ReasonMissing      = "missing"
	ReasonFloatParsing = "float_parsing"
)

// Values holds decoded numeric query parameters.
type Values map[string]float64

// Float returns the value for name, or 0 when it was not supplied.
func (v Values) Float(name string) float64 {
	return v[name]
}

// Has reports whether name was supplied.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// FieldError describes one rejected parameter.
type FieldError struct {
	Loc   []string `json:"loc"`
	Msg   string   `json:"msg"`
	Type  string   `json:"type"`
	Input *string  `json:"input,omitempty"`
}

// ValidationError lists every rejected parameter of a request.
type ValidationError struct {
	Detail []FieldError `json:"detail"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Detail))
	for i, d := range e.Detail {
		parts[i] = strings.Join(d.Loc, ".") + ": " + d.Msg
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

// Unwrap lets callers match ErrValidation with errors.Is.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// Decode parses the declared query parameters of r as float64 values. All
// failures are collected before returning so a client sees every bad field.
func Decode(r *http.Request, params []Param) (Values, error) {
	q := r.URL.Query()
	out := make(Values, len(params))
	var verr ValidationError

	for _, p := range params {
		raw, present := q[p.Name]
		if !present || len(raw) == 0 {
			if p.Required {
				verr.Detail = append(verr.Detail, FieldError{
					Loc:  []string{"query", p.Name},
					Msg:  "Field required",
					Type: ReasonMissing,
				})
			}
			continue
		}
		// Repeated parameters: the last one wins.
		s := raw[len(raw)-1]
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil && !isRangeError(err) {
			input := s
			verr.Detail = append(verr.Detail, FieldError{
				Loc:   []string{"query", p.Name},
				Msg:   "Input should be a valid number, unable to parse string as a number",
				Type:  ReasonFloatParsing,
				Input: &input,
			})
			continue
		}
		out[p.Name] = f
	}

	if len(verr.Detail) > 0 {
		return nil, &verr
	}
	return out, nil
}

// Out-of-range literals parse to ±Inf or 0, which are valid floats.
func isRangeError(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}

// Number is a float64 that encodes non-finite values as JSON null, since
// JSON has no spelling for NaN or infinity.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}
