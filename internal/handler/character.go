package handler

import (
	"net/http"

	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/service"
)

type CharacterHandler struct {
	characters *service.CharacterService
}

func NewCharacterHandler(characters *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{characters: characters}
}

// HandleList answers {"character": [...]}.
func (h *CharacterHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	characters, err := h.characters.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"character": characters})
}

func (h *CharacterHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "character")
	if err != nil {
		writeError(w, err)
		return
	}

	character, err := h.characters.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: character})
}

func (h *CharacterHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in model.CreateCharacterInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, err)
		return
	}

	character, err := h.characters.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, createdResponse{Msg: "character created", Result: character})
}

func (h *CharacterHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "character")
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.CharacterPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, err)
		return
	}

	character, err := h.characters.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updatedResponse{Message: "ok", Result: character})
}

func (h *CharacterHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "character")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.characters.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, okResponse)
}
