package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"savings-route-service/internal/api/dto"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/obs"
	"savings-route-service/internal/ports"
	"savings-route-service/internal/services"
	"strings"
)

// Solver runs one construction for an instance.
type Solver interface {
	Solve(ctx context.Context, in *domain.Instance, opts services.SolveOptions) (*domain.Result, error)
}

type SolveHandler struct {
	Repo   ports.InstanceRepository
	Solver Solver
	// Upper bound on nodes accepted in an inline instance.
	MaxNodes int
}

// Solve builds routes for a stored instance or one sent inline.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.SolveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	alpha := services.DefaultAlpha
	if req.Alpha != nil {
		alpha = *req.Alpha
	}
	if alpha < 0 || alpha > 1 {
		writeError(w, r, http.StatusBadRequest, "alpha must be between 0 and 1")
		return
	}

	in, status, msg := h.instance(r.Context(), req)
	if in == nil {
		writeError(w, r, status, msg)
		return
	}

	res, err := h.Solver.Solve(r.Context(), in, services.SolveOptions{Alpha: alpha, Refresh: req.Refresh})
	switch {
	case err == nil:
	case res != nil:
		// The run succeeded but could not be recorded.
		log.Printf("req_id=%s solve persisted partially: %v", obs.RequestID(r.Context()), err)
	case errors.Is(err, domain.ErrInvalidInstance), errors.Is(err, services.ErrInvalidAlpha), errors.Is(err, domain.ErrUnknownVariant):
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	default:
		log.Printf("req_id=%s solve failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toSolveResponse(res))
}

func (h *SolveHandler) instance(ctx context.Context, req dto.SolveRequest) (*domain.Instance, int, string) {
	name := strings.TrimSpace(req.Instance)

	if len(req.Points) == 0 {
		if name == "" {
			return nil, http.StatusBadRequest, "instance or points is required"
		}
		in, err := h.Repo.GetInstance(ctx, name)
		if errors.Is(err, ports.ErrInstanceNotFound) {
			return nil, http.StatusNotFound, "instance not found"
		}
		if err != nil {
			log.Printf("req_id=%s get instance failed: %v", obs.RequestID(ctx), err)
			return nil, http.StatusInternalServerError, "internal server error"
		}
		// A stored instance can be re-solved as another budget variant.
		if v := strings.TrimSpace(req.Variant); v != "" {
			variant, err := domain.ParseVariant(v)
			if err != nil || variant.HasDistinctAnchors() != in.Variant.HasDistinctAnchors() {
				return nil, http.StatusBadRequest, "variant does not fit the stored instance"
			}
			in.Variant = variant
		}
		return in, 0, ""
	}

	if h.MaxNodes > 0 && len(req.Points) > h.MaxNodes {
		return nil, http.StatusBadRequest, "too many points"
	}
	variant, err := domain.ParseVariant(req.Variant)
	if err != nil {
		return nil, http.StatusBadRequest, "variant must be one of cvrp, top, pjs"
	}
	if name == "" {
		name = "inline"
	}

	in := &domain.Instance{
		Name:      name,
		Variant:   variant,
		Points:    make([]domain.Point, 0, len(req.Points)),
		Capacity:  req.Capacity,
		FleetSize: req.FleetSize,
		MaxCost:   req.MaxCost,
	}
	for _, p := range req.Points {
		in.Points = append(in.Points, domain.Point{
			Coordinates: domain.Coordinates{X: p.X, Y: p.Y},
			Demand:      p.Demand,
		})
	}
	if err := in.Validate(); err != nil {
		return nil, http.StatusBadRequest, err.Error()
	}
	return in, 0, ""
}
