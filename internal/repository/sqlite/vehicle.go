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

var _ repository.VehicleRepository = (*DB)(nil)

func scanVehicle(s scanner) (model.Vehicle, error) {
	var v model.Vehicle
	err := s.Scan(&v.ID, &v.Name, &v.Model, &v.CostInCredits)
	return v, err
}

func (db *DB) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, model, cost_in_credits FROM vehicles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := make([]model.Vehicle, 0)
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating vehicles: %w", err)
	}
	return vehicles, nil
}

func (db *DB) GetVehicle(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := scanVehicle(db.conn.QueryRowContext(ctx,
		`SELECT id, name, model, cost_in_credits FROM vehicles WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("vehicle", fmt.Sprint(id))
		}
		return nil, fmt.Errorf("sqlite: getting vehicle %d: %w", id, err)
	}
	return &v, nil
}

func (db *DB) CreateVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO vehicles (name, model, cost_in_credits) VALUES (?, ?, ?)`,
		vehicle.Name, vehicle.Model, vehicle.CostInCredits,
	)
	if err != nil {
		return constraintError(err, "vehicle", "creating vehicle")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new vehicle id: %w", err)
	}
	vehicle.ID = id
	return nil
}

func (db *DB) UpdateVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE vehicles SET name = ?, model = ?, cost_in_credits = ? WHERE id = ?`,
		vehicle.Name, vehicle.Model, vehicle.CostInCredits, vehicle.ID,
	)
	if err != nil {
		return constraintError(err, "vehicle", fmt.Sprintf("updating vehicle %d", vehicle.ID))
	}
	return rowsAffected(result, "vehicle", vehicle.ID)
}

func (db *DB) DeleteVehicle(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting vehicle %d: %w", id, err)
	}
	return rowsAffected(result, "vehicle", id)
}
