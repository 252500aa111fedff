package handlers

import (
	"log"
	"net/http"
	"savings-route-service/internal/api/dto"
	"savings-route-service/internal/platform/obs"
	"savings-route-service/internal/ports"
)

// InstanceHandler exposes read-only instance listing.
type InstanceHandler struct {
	Repo ports.InstanceRepository
}

func (h *InstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	list, err := h.Repo.ListInstances(r.Context())
	if err != nil {
		log.Printf("req_id=%s list instances failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListInstancesResponse{
		Instances: make([]dto.InstanceResponse, 0, len(list)),
	}
	for _, in := range list {
		res.Instances = append(res.Instances, dto.InstanceResponse{
			Name:      in.Name,
			Variant:   string(in.Variant),
			NumNodes:  in.NumNodes,
			Capacity:  in.Capacity,
			FleetSize: in.FleetSize,
			MaxCost:   in.MaxCost,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
