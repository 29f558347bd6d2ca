package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/arith/pkg/router"
	. "github.com/smartystreets/goconvey/convey"
)

var operands = []router.Param{
	{Name: "a", Description: "First number", Required: true},
	{Name: "b", Description: "Second number", Required: true},
}

func noop(context.Context, router.Values) (any, error) { return nil, nil }

func TestDecode(t *testing.T) {
	Convey("Given the numeric query decoder", t, func() {
		decode := func(target string) (router.Values, error) {
			return router.Decode(httptest.NewRequest(http.MethodGet, target, http.NoBody), operands)
		}

		Convey("When both operands are numbers", func() {
			v, err := decode("/add?a=2&b=-3.5")

			Convey("Then they are decoded", func() {
				So(err, ShouldBeNil)
				So(v.Float("a"), ShouldEqual, 2)
				So(v.Float("b"), ShouldEqual, -3.5)
				So(v.Has("a"), ShouldBeTrue)
			})
		})

		Convey("When an operand is missing", func() {
			_, err := decode("/add?a=5")

			Convey("Then a validation error names the field", func() {
				var verr *router.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(errors.Is(err, router.ErrValidation), ShouldBeTrue)
				So(verr.Detail, ShouldHaveLength, 1)
				So(verr.Detail[0].Loc, ShouldResemble, []string{"query", "b"})
				So(verr.Detail[0].Type, ShouldEqual, router.ReasonMissing)
				So(verr.Detail[0].Input, ShouldBeNil)
			})
		})

		Convey("When an operand is not a number", func() {
			_, err := decode("/add?a=foo&b=2")

			Convey("Then the reason and input are reported", func() {
				var verr *router.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Detail, ShouldHaveLength, 1)
				So(verr.Detail[0].Type, ShouldEqual, router.ReasonFloatParsing)
				So(*verr.Detail[0].Input, ShouldEqual, "foo")
				So(err.Error(), ShouldContainSubstring, "query.a")
			})
		})

		Convey("When both operands are bad", func() {
			_, err := decode("/add?a=")

			Convey("Then every failure is listed", func() {
				var verr *router.ValidationError
				So(errors.As(err, &verr), ShouldBeTrue)
				So(verr.Detail, ShouldHaveLength, 2)
				So(verr.Detail[0].Type, ShouldEqual, router.ReasonFloatParsing)
				So(verr.Detail[1].Type, ShouldEqual, router.ReasonMissing)
			})
		})

		Convey("When literals overflow or spell infinity", func() {
			v, err := decode("/add?a=1e400&b=-inf")

			Convey("Then they decode to infinities", func() {
				So(err, ShouldBeNil)
				So(math.IsInf(v.Float("a"), 1), ShouldBeTrue)
				So(math.IsInf(v.Float("b"), -1), ShouldBeTrue)
			})
		})

		Convey("When an optional parameter is absent", func() {
			v, err := router.Decode(httptest.NewRequest(http.MethodGet, "/x", http.NoBody),
				[]router.Param{{Name: "scale"}})

			Convey("Then it is simply not set", func() {
				So(err, ShouldBeNil)
				So(v.Has("scale"), ShouldBeFalse)
			})
		})
	})
}

func TestCollection(t *testing.T) {
	Convey("Given a collection", t, func() {
		c := router.Collection{
			Name: "math",
			Tags: []string{"Math"},
			Routes: []router.Route{
				{Method: http.MethodGet, Path: "/add", Params: operands, Handle: noop},
			},
		}

		Convey("When tags are attached at include time", func() {
			out := router.Include(c, "Math", "Arithmetic", "")

			Convey("Then new tags are appended once and the original is untouched", func() {
				So(out.Tags, ShouldResemble, []string{"Math", "Arithmetic"})
				So(c.Tags, ShouldResemble, []string{"Math"})
				So(out.Routes, ShouldHaveLength, 1)
			})
		})

		Convey("When it is valid", func() {
			So(c.Validate(), ShouldBeNil)
			So(c.Routes[0].Pattern(), ShouldEqual, "GET /add")
		})

		Convey("When a route repeats", func() {
			c.Routes = append(c.Routes, c.Routes[0])

			Convey("Then validation reports a duplicate", func() {
				So(errors.Is(c.Validate(), router.ErrDuplicateRoute), ShouldBeTrue)
			})
		})

		Convey("When a route has no handler", func() {
			c.Routes[0].Handle = nil
			So(errors.Is(c.Validate(), router.ErrInvalidRoute), ShouldBeTrue)
		})

		Convey("When a path is relative", func() {
			c.Routes[0].Path = "add"
			So(errors.Is(c.Validate(), router.ErrInvalidRoute), ShouldBeTrue)
		})

		Convey("When wrapped as a ProviderFunc", func() {
			p := router.ProviderFunc(func() router.Collection { return c })
			So(p.Collection().Name, ShouldEqual, "math")
		})
	})
}

func TestNumberJSON(t *testing.T) {
	Convey("Given JSON numbers", t, func() {
		b, err := json.Marshal([]router.Number{1.5, router.Number(math.NaN()), router.Number(math.Inf(-1))})
		So(err, ShouldBeNil)
		So(string(b), ShouldEqual, `[1.5,null,null]`)
	})
}
