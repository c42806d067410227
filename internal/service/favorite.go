package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

// FavoriteService manages the three favorite collections.
//
// OWNERSHIP:
// Any authenticated caller may read favorites, but only the owner may add or
// remove one. The caller's identity is the email in their token; AddFor and
// RemoveFor resolve it to a user and compare ids before touching anything.
type FavoriteService struct {
	favorites  repository.FavoriteRepository
	users      repository.UserRepository
	characters repository.CharacterRepository
	vehicles   repository.VehicleRepository
	planets    repository.PlanetRepository
	logger     *slog.Logger
}

func NewFavoriteService(
	favorites repository.FavoriteRepository,
	users repository.UserRepository,
	characters repository.CharacterRepository,
	vehicles repository.VehicleRepository,
	planets repository.PlanetRepository,
	logger *slog.Logger,
) *FavoriteService {
	return &FavoriteService{
		favorites:  favorites,
		users:      users,
		characters: characters,
		vehicles:   vehicles,
		planets:    planets,
		logger:     logger,
	}
}

// Add records that userID likes the target of the given kind.
//
// Order of checks: required ids (BadRequest), user exists, target exists
// (NotFound), pair not already present (Conflict). The UNIQUE constraint
// backs up the last check when two requests race.
func (s *FavoriteService) Add(ctx context.Context, kind model.FavoriteKind, userID, targetID int64) (*model.FavoriteRecord, error) {
	if userID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "user_id is required")
	}
	if targetID <= 0 {
		field := kind.TargetField()
		return nil, apperror.ValidationFailed(field, field+" is required")
	}

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.targetExists(ctx, kind, targetID); err != nil {
		return nil, err
	}

	_, err := s.favorites.FindFavorite(ctx, kind, userID, targetID)
	switch {
	case err == nil:
		return nil, apperror.Conflict("favorite "+string(kind), kind.TargetField())
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("checking favorite %s: %w", kind, err)
	}

	fav, err := s.favorites.AddFavorite(ctx, kind, userID, targetID)
	if err != nil {
		return nil, fmt.Errorf("adding favorite %s: %w", kind, err)
	}

	s.logger.Info("favorite added",
		slog.String("kind", string(kind)),
		slog.Int64("id", fav.ID),
		slog.Int64("user_id", userID),
		slog.Int64("target_id", targetID),
	)
	return fav, nil
}

// AddFor is Add on behalf of the authenticated identity, which must own userID.
func (s *FavoriteService) AddFor(ctx context.Context, identity string, kind model.FavoriteKind, userID, targetID int64) (*model.FavoriteRecord, error) {
	if userID <= 0 {
		return nil, apperror.ValidationFailed("user_id", "user_id is required")
	}
	if err := s.Authorize(ctx, identity, userID); err != nil {
		return nil, err
	}
	return s.Add(ctx, kind, userID, targetID)
}

func (s *FavoriteService) targetExists(ctx context.Context, kind model.FavoriteKind, id int64) error {
	var err error
	switch kind {
	case model.FavoriteCharacter:
		_, err = s.characters.GetCharacter(ctx, id)
	case model.FavoriteVehicle:
		_, err = s.vehicles.GetVehicle(ctx, id)
	case model.FavoritePlanet:
		_, err = s.planets.GetPlanet(ctx, id)
	default:
		return apperror.NotFoundMessage(fmt.Sprintf("unknown favorite kind %q", kind))
	}
	return err
}

// Remove deletes a favorite by its own id.
func (s *FavoriteService) Remove(ctx context.Context, kind model.FavoriteKind, id int64) error {
	if err := checkID("favorite "+string(kind), id); err != nil {
		return err
	}
	if err := s.favorites.DeleteFavorite(ctx, kind, id); err != nil {
		return err
	}

	s.logger.Info("favorite removed", slog.String("kind", string(kind)), slog.Int64("id", id))
	return nil
}

// RemoveFor is Remove on behalf of the authenticated identity, which must own
// the favorite. A missing favorite is NotFound before ownership is checked.
func (s *FavoriteService) RemoveFor(ctx context.Context, identity string, kind model.FavoriteKind, id int64) error {
	fav, err := s.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := s.Authorize(ctx, identity, fav.UserID); err != nil {
		return err
	}
	return s.Remove(ctx, kind, id)
}

func (s *FavoriteService) List(ctx context.Context, kind model.FavoriteKind) ([]model.FavoriteRecord, error) {
	favorites, err := s.favorites.ListFavorites(ctx, kind)
	if err != nil {
		s.logger.Error("failed to list favorites", slog.String("kind", string(kind)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing favorite %ss: %w", kind, err)
	}
	return favorites, nil
}

// Get looks a favorite up by its own id, not by the (user, target) pair.
func (s *FavoriteService) Get(ctx context.Context, kind model.FavoriteKind, id int64) (*model.FavoriteRecord, error) {
	if err := checkID("favorite "+string(kind), id); err != nil {
		return nil, err
	}
	return s.favorites.GetFavorite(ctx, kind, id)
}

// ListAll returns every favorite of every kind in the aggregate form.
func (s *FavoriteService) ListAll(ctx context.Context) ([]model.Favorite, error) {
	records, err := s.favorites.ListAllFavorites(ctx)
	if err != nil {
		s.logger.Error("failed to list favorites", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing favorites: %w", err)
	}

	out := make([]model.Favorite, 0, len(records))
	for _, r := range records {
		out = append(out, r.Aggregate())
	}
	return out, nil
}

// Authorize returns nil when identity is the email of user userID and
// apperror.ErrForbidden otherwise. A token whose user has since been deleted
// owns nothing.
func (s *FavoriteService) Authorize(ctx context.Context, identity string, userID int64) error {
	caller, err := s.users.GetUserByEmail(ctx, identity)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.Forbidden("authenticated user no longer exists")
		}
		return fmt.Errorf("resolving caller: %w", err)
	}
	if caller.ID != userID {
		s.logger.Warn("favorite ownership denied",
			slog.Int64("caller_id", caller.ID),
			slog.Int64("user_id", userID),
		)
		return apperror.Forbidden("favorites can only be changed by their owner")
	}
	return nil
}
