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

var _ repository.CharacterRepository = (*DB)(nil)

const characterColumns = `id, name, last_name, height, hair_color, birth_year`

func scanCharacter(s scanner) (model.Character, error) {
	var c model.Character
	err := s.Scan(&c.ID, &c.Name, &c.LastName, &c.Height, &c.HairColor, &c.BirthYear)
	return c, err
}

func (db *DB) ListCharacters(ctx context.Context) ([]model.Character, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+characterColumns+` FROM characters ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing characters: %w", err)
	}
	defer rows.Close()

	characters := make([]model.Character, 0)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning character row: %w", err)
		}
		characters = append(characters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating characters: %w", err)
	}
	return characters, nil
}

func (db *DB) GetCharacter(ctx context.Context, id int64) (*model.Character, error) {
	c, err := scanCharacter(db.conn.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("character", fmt.Sprint(id))
		}
		return nil, fmt.Errorf("sqlite: getting character %d: %w", id, err)
	}
	return &c, nil
}

func (db *DB) CreateCharacter(ctx context.Context, character *model.Character) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO characters (name, last_name, height, hair_color, birth_year)
		 VALUES (?, ?, ?, ?, ?)`,
		character.Name,
		character.LastName,
		character.Height,
		character.HairColor,
		character.BirthYear,
	)
	if err != nil {
		return constraintError(err, "character", "creating character")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new character id: %w", err)
	}
	character.ID = id
	return nil
}

func (db *DB) UpdateCharacter(ctx context.Context, character *model.Character) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE characters
		 SET name = ?, last_name = ?, height = ?, hair_color = ?, birth_year = ?
		 WHERE id = ?`,
		character.Name,
		character.LastName,
		character.Height,
		character.HairColor,
		character.BirthYear,
		character.ID,
	)
	if err != nil {
		return constraintError(err, "character", fmt.Sprintf("updating character %d", character.ID))
	}
	return rowsAffected(result, "character", character.ID)
}

func (db *DB) DeleteCharacter(ctx context.Context, id int64) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting character %d: %w", id, err)
	}
	return rowsAffected(result, "character", id)
}
