// Package repository declares the storage contracts the service layer depends
// on. The only implementation lives in repository/sqlite; services are tested
// against in-memory fakes of these interfaces.
//
// Every lookup reports absence as an apperror.ErrNotFound error, never as a
// nil value with a nil error, so callers cannot dereference a missing row.
package repository

import (
	"context"

	"github.com/sakif/starwars-api/internal/model"
)

type UserRepository interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// CreateUser assigns user.ID on success.
	CreateUser(ctx context.Context, user *model.User) error
	// UpdateUser overwrites every column of the row with user.ID.
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, id int64) error
}

type PlanetRepository interface {
	ListPlanets(ctx context.Context) ([]model.Planet, error)
	GetPlanet(ctx context.Context, id int64) (*model.Planet, error)
	CreatePlanet(ctx context.Context, planet *model.Planet) error
	UpdatePlanet(ctx context.Context, planet *model.Planet) error
	DeletePlanet(ctx context.Context, id int64) error
}

type CharacterRepository interface {
	ListCharacters(ctx context.Context) ([]model.Character, error)
	GetCharacter(ctx context.Context, id int64) (*model.Character, error)
	CreateCharacter(ctx context.Context, character *model.Character) error
	UpdateCharacter(ctx context.Context, character *model.Character) error
	DeleteCharacter(ctx context.Context, id int64) error
}

type VehicleRepository interface {
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error)
	CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error
	UpdateVehicle(ctx context.Context, vehicle *model.Vehicle) error
	DeleteVehicle(ctx context.Context, id int64) error
}

// FavoriteRepository stores the three favorite join tables. kind selects the
// table; ids passed to Get and Delete are the favorite row's own id.
type FavoriteRepository interface {
	// AddFavorite inserts a (user, target) pair. A duplicate pair is
	// apperror.ErrConflict; a dangling user or target is apperror.ErrNotFound.
	AddFavorite(ctx context.Context, kind model.FavoriteKind, userID, targetID int64) (*model.FavoriteRecord, error)
	GetFavorite(ctx context.Context, kind model.FavoriteKind, id int64) (*model.FavoriteRecord, error)
	// FindFavorite looks a favorite up by its (user, target) pair.
	FindFavorite(ctx context.Context, kind model.FavoriteKind, userID, targetID int64) (*model.FavoriteRecord, error)
	ListFavorites(ctx context.Context, kind model.FavoriteKind) ([]model.FavoriteRecord, error)
	// ListAllFavorites returns every favorite of every kind, ordered by kind
	// then id.
	ListAllFavorites(ctx context.Context) ([]model.FavoriteRecord, error)
	DeleteFavorite(ctx context.Context, kind model.FavoriteKind, id int64) error
}
