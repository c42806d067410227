package handler

import (
	"net/http"

	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/service"
)

// PlanetHandler serves /planets. Lists are wrapped as {"planets": [...]};
// single planets as {"result": planet}.
type PlanetHandler struct {
	planets *service.PlanetService
}

func NewPlanetHandler(planets *service.PlanetService) *PlanetHandler {
	return &PlanetHandler{planets: planets}
}

// HandleList answers {"planets": [...]}.
func (h *PlanetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	planets, err := h.planets.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"planets": planets})
}

func (h *PlanetHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planet")
	if err != nil {
		writeError(w, err)
		return
	}

	planet, err := h.planets.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: planet})
}

func (h *PlanetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.CreatePlanetInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	planet, err := h.planets.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createdResponse{Msg: "planet created", Result: planet})
}

func (h *PlanetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planet")
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.PlanetPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, err)
		return
	}

	planet, err := h.planets.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updatedResponse{Message: "ok", Result: planet})
}

func (h *PlanetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "planet")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.planets.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}
