package handlers

import (
	"log"
	"net/http"
	"savings-route-service/internal/api/dto"
	"savings-route-service/internal/platform/obs"
	"savings-route-service/internal/ports"
	"strconv"
	"strings"
)

const defaultRunLimit = 20

type RunHandler struct {
	Runs ports.RunStore
}

// List the recorded runs of one instance, newest first.
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	instance := strings.TrimSpace(q.Get("instance"))
	if instance == "" {
		writeError(w, r, http.StatusBadRequest, "instance query parameter is required")
		return
	}

	limit := defaultRunLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	runs, err := h.Runs.ListRuns(r.Context(), instance, limit)
	if err != nil {
		log.Printf("req_id=%s list runs failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.SolveResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, toSolveResponse(run))
	}

	writeJSON(w, r, http.StatusOK, res)
}
