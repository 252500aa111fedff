package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"savings-route-service/internal/api/dto"
	"savings-route-service/internal/domain"
	"savings-route-service/internal/platform/obs"
)

const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("req_id=%s encode failed: method=%s path=%s err=%v", obs.RequestID(r.Context()), r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func allowOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

// Decode exactly one JSON object from the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func toSolveResponse(res *domain.Result) dto.SolveResponse {
	out := dto.SolveResponse{
		SolutionID:   res.SolutionID,
		Instance:     res.Instance,
		Variant:      string(res.Variant),
		Alpha:        res.Alpha,
		NumNodes:     res.NumNodes,
		Routes:       make([]dto.RouteResponse, 0, len(res.Routes)),
		NumRoutes:    len(res.Routes),
		TotalCost:    res.TotalCost,
		TotalDemand:  res.TotalDemand,
		MaxRouteCost: res.MaxRouteCost,
		Unserved:     res.Unserved,
		ElapsedMS:    float64(res.Elapsed.Microseconds()) / 1000,
		CreatedAt:    res.CreatedAt,
	}
	if out.Unserved == nil {
		out.Unserved = []int{}
	}
	for _, r := range res.Routes {
		out.Routes = append(out.Routes, dto.RouteResponse{
			RouteID: r.RouteID,
			Nodes:   r.NodeIDs,
			Cost:    r.Cost,
			Demand:  r.Demand,
		})
	}
	return out
}
