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

type VehicleService struct {
	repo   repository.VehicleRepository
	logger *slog.Logger
}

func NewVehicleService(repo repository.VehicleRepository, logger *slog.Logger) *VehicleService {
	return &VehicleService{repo: repo, logger: logger}
}

func (s *VehicleService) List(ctx context.Context) ([]model.Vehicle, error) {
	vehicles, err := s.repo.ListVehicles(ctx)
	if err != nil {
		s.logger.Error("failed to list vehicles", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	return vehicles, nil
}

func (s *VehicleService) Get(ctx context.Context, id int64) (*model.Vehicle, error) {
	if err := checkID("vehicle", id); err != nil {
		return nil, err
	}
	return s.repo.GetVehicle(ctx, id)
}

func (s *VehicleService) Create(ctx context.Context, in model.CreateVehicleInput) (*model.Vehicle, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Model = trimPtr(in.Model)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	vehicle := &model.Vehicle{Name: in.Name, Model: in.Model, CostInCredits: in.CostInCredits}
	if err := s.repo.CreateVehicle(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("creating vehicle: %w", err)
	}

	s.logger.Info("vehicle created", slog.Int64("id", vehicle.ID), slog.String("name", vehicle.Name))
	return vehicle, nil
}

func (s *VehicleService) Update(ctx context.Context, id int64, patch model.VehiclePatch) (*model.Vehicle, error) {
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

	if err := s.repo.UpdateVehicle(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating vehicle: %w", err)
	}

	s.logger.Info("vehicle updated", slog.Int64("id", updated.ID))
	return &updated, nil
}

func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	if err := checkID("vehicle", id); err != nil {
		return err
	}
	if err := s.repo.DeleteVehicle(ctx, id); err != nil {
		return err
	}

	s.logger.Info("vehicle deleted", slog.Int64("id", id))
	return nil
}
