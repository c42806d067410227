package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
	"github.com/sakif/starwars-api/internal/validation"
)

// PlanetService handles business logic for planets.
type PlanetService struct {
	repo   repository.PlanetRepository
	logger *slog.Logger
}

func NewPlanetService(repo repository.PlanetRepository, logger *slog.Logger) *PlanetService {
	return &PlanetService{repo: repo, logger: logger}
}

func (s *PlanetService) List(ctx context.Context) ([]model.Planet, error) {
	planets, err := s.repo.ListPlanets(ctx)
	if err != nil {
		s.logger.Error("failed to list planets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing planets: %w", err)
	}
	return planets, nil
}

// Get returns the planet with the given id or apperror.ErrNotFound.
func (s *PlanetService) Get(ctx context.Context, id int64) (*model.Planet, error) {
	if err := checkID("planet", id); err != nil {
		return nil, err
	}
	return s.repo.GetPlanet(ctx, id)
}

// Create validates in and inserts a new planet. A taken name is
// apperror.ErrConflict.
func (s *PlanetService) Create(ctx context.Context, in model.CreatePlanetInput) (*model.Planet, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	planet := &model.Planet{Name: in.Name, Population: in.Population, Diameter: in.Diameter}
	if err := s.repo.CreatePlanet(ctx, planet); err != nil {
		return nil, fmt.Errorf("creating planet: %w", err)
	}

	s.logger.Info("planet created", slog.Int64("id", planet.ID), slog.String("name", planet.Name))
	return planet, nil
}

// Update merges patch into the stored planet. Only fields present in the
// request change; the merged result must still pass validation.
func (s *PlanetService) Update(ctx context.Context, id int64, patch model.PlanetPatch) (*model.Planet, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name.Set {
		patch.Name.Value = strings.TrimSpace(patch.Name.Value)
	}
	updated := patch.Apply(*current)
	if err := validation.Struct(updated.Rules()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePlanet(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating planet: %w", err)
	}

	s.logger.Info("planet updated", slog.Int64("id", updated.ID))
	return &updated, nil
}

// Delete removes the planet and, through the schema, every favorite of it.
func (s *PlanetService) Delete(ctx context.Context, id int64) error {
	if err := checkID("planet", id); err != nil {
		return err
	}
	if err := s.repo.DeletePlanet(ctx, id); err != nil {
		return err
	}

	s.logger.Info("planet deleted", slog.Int64("id", id))
	return nil
}
