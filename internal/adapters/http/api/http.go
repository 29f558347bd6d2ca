// Package api mounts route collections onto the HTTP mux and owns the JSON
// request/response conventions shared by every route.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/arith/pkg/logger"
	"github.com/okian/arith/pkg/metrics"
	"github.com/okian/arith/pkg/router"
)

// Server collects route collections and registers them on a mux.
type Server struct {
	log         logger.Logger
	collections []router.Collection
	owners      map[string]string
}

// NewServer creates an empty Server.
func NewServer(log logger.Logger) *Server {
	return &Server{
		log:    log,
		owners: make(map[string]string),
	}
}

// Include adds the provider's collection with extra documentation tags. A
// method+path pair already owned by another collection is rejected.
func (s *Server) Include(p router.Provider, tags ...string) error {
	if p == nil {
		return fmt.Errorf("%w: nil provider", router.ErrInvalidRoute)
	}
	c := router.Include(p.Collection(), tags...)
	if err := c.Validate(); err != nil {
		return err
	}
	for _, r := range c.Routes {
		if owner, taken := s.owners[r.Pattern()]; taken {
			return fmt.Errorf("%w: %s already mounted by %s", router.ErrDuplicateRoute, r.Pattern(), owner)
		}
	}
	for _, r := range c.Routes {
		s.owners[r.Pattern()] = c.Name
	}
	s.collections = append(s.collections, c)
	return nil
}

// Collections returns the included collections in mount order.
func (s *Server) Collections() []router.Collection {
	out := make([]router.Collection, len(s.collections))
	copy(out, s.collections)
	return out
}

// Register attaches every included route to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	for _, c := range s.collections {
		for _, r := range c.Routes {
			mux.HandleFunc(r.Pattern(), MetricsMiddleware(s.serve(r), routeLabel(r)))
		}
		if s.log != nil {
			s.log.Debug(ctx, "mounted route collection",
				logger.String("collection", c.Name),
				logger.Any("tags", c.Tags),
				logger.Int("routes", len(c.Routes)))
		}
	}
}

// serve adapts a router.Route to net/http: decode, call, encode.
func (s *Server) serve(r router.Route) http.HandlerFunc {
	label := routeLabel(r)
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()

		in, err := router.Decode(req, r.Params)
		if err != nil {
			var verr *router.ValidationError
			if errors.As(err, &verr) {
				for _, d := range verr.Detail {
					metrics.RecordValidationFailure(label, d.Loc[len(d.Loc)-1], d.Type)
				}
				if s.log != nil {
					s.log.Debug(ctx, "rejected request", logger.String("route", label), logger.Error(err))
				}
				writeJSON(w, http.StatusUnprocessableEntity, verr)
				return
			}
			writeError(w, http.StatusBadRequest, err)
			return
		}

		out, err := r.Handle(ctx, in)
		if err != nil {
			if s.log != nil {
				s.log.Error(ctx, "route handler failed",
					logger.String("route", label),
					logger.String("request_id", router.RequestID(ctx)),
					logger.Error(err))
			}
			writeError(w, http.StatusInternalServerError, ErrInternal)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func routeLabel(r router.Route) string {
	if r.Name != "" {
		return r.Name
	}
	return r.Path
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Detail: msg})
}
