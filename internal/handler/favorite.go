package handler

import (
	"net/http"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/service"
)

// FavoriteHandler serves the three favorite collections and the aggregate
// list. One handler covers every kind: the route decides the kind and asks
// for a handler func bound to it, e.g. HandleList(model.FavoritePlanet).
//
// All routes sit behind auth.RequireAuth, so the identity is always present.
type FavoriteHandler struct {
	favorites *service.FavoriteService
}

func NewFavoriteHandler(favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// addFavoriteRequest accepts the target under its own key. Vehicle and planet
// also accept the plural spelling older clients send ("vehicles_id").
type addFavoriteRequest struct {
	UserID      int64 `json:"user_id"`
	CharacterID int64 `json:"character_id"`
	VehicleID   int64 `json:"vehicle_id"`
	VehiclesID  int64 `json:"vehicles_id"`
	PlanetID    int64 `json:"planet_id"`
	PlanetsID   int64 `json:"planets_id"`
}

func (req addFavoriteRequest) target(kind model.FavoriteKind) int64 {
	switch kind {
	case model.FavoriteCharacter:
		return req.CharacterID
	case model.FavoriteVehicle:
		if req.VehicleID != 0 {
			return req.VehicleID
		}
		return req.VehiclesID
	case model.FavoritePlanet:
		if req.PlanetID != 0 {
			return req.PlanetID
		}
		return req.PlanetsID
	}
	return 0
}

func listKey(kind model.FavoriteKind) string {
	return "favorite" + string(kind) + "s"
}

// identity returns the caller's email placed in the context by RequireAuth.
func identity(r *http.Request) (string, error) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return "", apperror.Unauthorized("valid authentication required")
	}
	return id, nil
}

// HandleList answers {"favorite<kind>s": [...]}.
func (h *FavoriteHandler) HandleList(kind model.FavoriteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		favorites, err := h.favorites.List(r.Context(), kind)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{listKey(kind): favorites})
	}
}

func (h *FavoriteHandler) HandleGet(kind model.FavoriteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "favorite "+string(kind))
		if err != nil {
			writeError(w, err)
			return
		}

		fav, err := h.favorites.Get(r.Context(), kind, id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resultResponse{Result: fav})
	}
}

// HandleAdd creates a favorite for the caller.
//
// HTTP: POST /users/favorites/{kind}
// REQUEST BODY: {"user_id": 1, "planet_id": 3}
// RESPONSE:     {"message": {"id": 9, "user_id": 1, "planet_id": 3}}
func (h *FavoriteHandler) HandleAdd(kind model.FavoriteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := identity(r)
		if err != nil {
			writeError(w, err)
			return
		}

		var req addFavoriteRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}

		fav, err := h.favorites.AddFor(r.Context(), caller, kind, req.UserID, req.target(kind))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: fav})
	}
}

func (h *FavoriteHandler) HandleDelete(kind model.FavoriteKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := identity(r)
		if err != nil {
			writeError(w, err)
			return
		}

		id, err := pathID(r, "favorite "+string(kind))
		if err != nil {
			writeError(w, err)
			return
		}

		if err := h.favorites.RemoveFor(r.Context(), caller, kind, id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, okResponse)
	}
}

// HandleListAll answers {"favorites": [...]} across every kind.
func (h *FavoriteHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": favorites})
}
