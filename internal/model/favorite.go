package model

import (
	"fmt"

	"github.com/goccy/go-json"
)

// FavoriteKind names the entity a favorite points at.
type FavoriteKind string

const (
	FavoriteCharacter FavoriteKind = "character"
	FavoriteVehicle   FavoriteKind = "vehicle"
	FavoritePlanet    FavoriteKind = "planet"
)

// FavoriteKinds lists every kind in a stable order.
var FavoriteKinds = []FavoriteKind{FavoriteCharacter, FavoriteVehicle, FavoritePlanet}

// ParseFavoriteKind accepts the singular or plural spelling used in URLs.
func ParseFavoriteKind(s string) (FavoriteKind, error) {
	switch s {
	case "character", "characters":
		return FavoriteCharacter, nil
	case "vehicle", "vehicles":
		return FavoriteVehicle, nil
	case "planet", "planets":
		return FavoritePlanet, nil
	}
	return "", fmt.Errorf("model: unknown favorite kind %q", s)
}

// TargetField is the JSON key carrying the target id: "character_id", ...
func (k FavoriteKind) TargetField() string {
	return string(k) + "_id"
}

// FavoriteRecord is one row of a kind-specific favorite table.
type FavoriteRecord struct {
	ID       int64
	Kind     FavoriteKind
	UserID   int64
	TargetID int64
}

// MarshalJSON renders the target under its kind-specific key, e.g.
// {"id":1,"user_id":2,"planet_id":3}.
func (f FavoriteRecord) MarshalJSON() ([]byte, error) {
	out := map[string]int64{
		"id":      f.ID,
		"user_id": f.UserID,
	}
	out[f.Kind.TargetField()] = f.TargetID
	return json.Marshal(out)
}

// Favorite is the aggregate view across all three favorite tables. Exactly
// one of CharacterID, VehicleID, PlanetID is non-nil, matching Kind.
type Favorite struct {
	ID          int64        `json:"id"`
	Kind        FavoriteKind `json:"kind"`
	UserID      int64        `json:"user_id"`
	CharacterID *int64       `json:"character_id"`
	VehicleID   *int64       `json:"vehicle_id"`
	PlanetID    *int64       `json:"planet_id"`
}

// Aggregate converts a kind-specific record into the aggregate form.
func (f FavoriteRecord) Aggregate() Favorite {
	target := f.TargetID
	out := Favorite{ID: f.ID, Kind: f.Kind, UserID: f.UserID}
	switch f.Kind {
	case FavoriteCharacter:
		out.CharacterID = &target
	case FavoriteVehicle:
		out.VehicleID = &target
	case FavoritePlanet:
		out.PlanetID = &target
	}
	return out
}
