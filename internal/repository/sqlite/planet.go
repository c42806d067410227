package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

var _ repository.PlanetRepository = (*DB)(nil)

func scanPlanet(s scanner) (model.Planet, error) {
	var p model.Planet
	err := s.Scan(&p.ID, &p.Name, &p.Population, &p.Diameter)
	return p, err
}

func (db *DB) ListPlanets(ctx context.Context) ([]model.Planet, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, population, diameter FROM planets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing planets: %w", err)
	}
	defer rows.Close()

	planets := make([]model.Planet, 0)
	for rows.Next() {
		p, err := scanPlanet(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning planet row: %w", err)
		}
		planets = append(planets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating planets: %w", err)
	}
	return planets, nil
}

func (db *DB) GetPlanet(ctx context.Context, id int64) (*model.Planet, error) {
	p, err := scanPlanet(db.conn.QueryRowContext(ctx,
		`SELECT id, name, population, diameter FROM planets WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("planet", fmt.Sprint(id))
		}
		return nil, fmt.Errorf("sqlite: getting planet %d: %w", id, err)
	}
	return &p, nil
}

func (db *DB) CreatePlanet(ctx context.Context, planet *model.Planet) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO planets (name, population, diameter) VALUES (?, ?, ?)`,
		planet.Name, planet.Population, planet.Diameter,
	)
	if err != nil {
		return constraintError(err, "planet", "creating planet")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new planet id: %w", err)
	}
	planet.ID = id
	return nil
}

func (db *DB) UpdatePlanet(ctx context.Context, planet *model.Planet) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE planets SET name = ?, population = ?, diameter = ? WHERE id = ?`,
		planet.Name, planet.Population, planet.Diameter, planet.ID,
	)
	if err != nil {
		return constraintError(err, "planet", fmt.Sprintf("updating planet %d", planet.ID))
	}
	return rowsAffected(result, "planet", planet.ID)
}

func (db *DB) DeletePlanet(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM planets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting planet %d: %w", id, err)
	}
	return rowsAffected(result, "planet", id)
}
