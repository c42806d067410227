package handler

import (
	"net/http"

	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/service"
)

type VehicleHandler struct {
	vehicles *service.VehicleService
}

func NewVehicleHandler(vehicles *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles}
}

// HandleList answers {"vehicles": [...]}.
func (h *VehicleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"vehicles": vehicles})
}

func (h *VehicleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "vehicle")
	if err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.vehicles.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: vehicle})
}

func (h *VehicleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.CreateVehicleInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.vehicles.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createdResponse{Msg: "vehicle created", Result: vehicle})
}

func (h *VehicleHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "vehicle")
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.VehiclePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, err)
		return
	}

	vehicle, err := h.vehicles.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updatedResponse{Message: "ok", Result: vehicle})
}

func (h *VehicleHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "vehicle")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.vehicles.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}
