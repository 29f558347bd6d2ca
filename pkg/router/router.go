// Package router is the contract between the application and the libraries
// that contribute routes to it. A library exposes a Collection of
// (method, path, handler) triples through a Provider; the application mounts
// collections without knowing how a library is built.
package router

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// HandlerFunc computes a response body from decoded query parameters. The
// returned value is serialized as JSON with status 200.
type HandlerFunc func(ctx context.Context, in Values) (any, error)

// Param declares a numeric query parameter.
type Param struct {
	Name        string
	Description string
	Required    bool
}

// Route binds one method and path to a handler.
type Route struct {
	Method  string
	Path    string
	Name    string
	Summary string
	Params  []Param
	Handle  HandlerFunc
}

// Pattern returns the net/http ServeMux pattern for the route.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// Collection is a named, taggable group of routes mounted as a unit.
type Collection struct {
	Name   string
	Tags   []string
	Routes []Route
}

// Provider exposes a route collection.
type Provider interface {
	Collection() Collection
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func() Collection

// Collection implements Provider.
func (f ProviderFunc) Collection() Collection { return f() }

// Include returns a copy of c with tags appended, skipping ones it already has.
func Include(c Collection, tags ...string) Collection {
	out := Collection{
		Name:   c.Name,
		Tags:   slices.Clone(c.Tags),
		Routes: slices.Clone(c.Routes),
	}
	for _, t := range tags {
		if t != "" && !slices.Contains(out.Tags, t) {
			out.Tags = append(out.Tags, t)
		}
	}
	return out
}

// Validate checks that every route is complete and that no method+path pair
// repeats inside the collection.
func (c Collection) Validate() error {
	seen := make(map[string]struct{}, len(c.Routes))
	for _, r := range c.Routes {
		switch {
		case r.Handle == nil:
			return fmt.Errorf("%w: %s: %s has no handler", ErrInvalidRoute, c.Name, r.Pattern())
		case !strings.HasPrefix(r.Path, "/"):
			return fmt.Errorf("%w: %s: path %q must start with /", ErrInvalidRoute, c.Name, r.Path)
		case !validMethod(r.Method):
			return fmt.Errorf("%w: %s: unsupported method %q", ErrInvalidRoute, c.Name, r.Method)
		}
		if _, dup := seen[r.Pattern()]; dup {
			return fmt.Errorf("%w: %s: %s", ErrDuplicateRoute, c.Name, r.Pattern())
		}
		seen[r.Pattern()] = struct{}{}
	}
	return nil
}

func validMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
