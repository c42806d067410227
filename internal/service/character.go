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

type CharacterService struct {
	repo   repository.CharacterRepository
	logger *slog.Logger
}

func NewCharacterService(repo repository.CharacterRepository, logger *slog.Logger) *CharacterService {
	return &CharacterService{repo: repo, logger: logger}
}

func (s *CharacterService) List(ctx context.Context) ([]model.Character, error) {
	characters, err := s.repo.ListCharacters(ctx)
	if err != nil {
		s.logger.Error("failed to list characters", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	return characters, nil
}

func (s *CharacterService) Get(ctx context.Context, id int64) (*model.Character, error) {
	if err := checkID("character", id); err != nil {
		return nil, err
	}
	return s.repo.GetCharacter(ctx, id)
}

func (s *CharacterService) Create(ctx context.Context, in model.CreateCharacterInput) (*model.Character, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.LastName = strings.TrimSpace(in.LastName)
	in.HairColor = trimPtr(in.HairColor)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	character := &model.Character{
		Name:      in.Name,
		LastName:  in.LastName,
		Height:    in.Height,
		HairColor: in.HairColor,
		BirthYear: in.BirthYear,
	}
	if err := s.repo.CreateCharacter(ctx, character); err != nil {
		return nil, fmt.Errorf("creating character: %w", err)
	}

	s.logger.Info("character created", slog.Int64("id", character.ID), slog.String("name", character.Name))
	return character, nil
}

func (s *CharacterService) Update(ctx context.Context, id int64, patch model.CharacterPatch) (*model.Character, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name.Set {
		patch.Name.Value = strings.TrimSpace(patch.Name.Value)
	}
	if patch.LastName.Set {
		patch.LastName.Value = strings.TrimSpace(patch.LastName.Value)
	}
	updated := patch.Apply(*current)
	if err := validation.Struct(updated.Rules()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCharacter(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating character: %w", err)
	}

	s.logger.Info("character updated", slog.Int64("id", updated.ID))
	return &updated, nil
}

func (s *CharacterService) Delete(ctx context.Context, id int64) error {
	if err := checkID("character", id); err != nil {
		return err
	}
	if err := s.repo.DeleteCharacter(ctx, id); err != nil {
		return err
	}

	s.logger.Info("character deleted", slog.Int64("id", id))
	return nil
}
