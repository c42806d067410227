package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
)

var _ repository.FavoriteRepository = (*DB)(nil)

// favoriteTable describes one favorite join table.
type favoriteTable struct {
	kind   model.FavoriteKind
	table  string
	column string // target foreign key column
	target string // referenced entity table
}

// favoriteTables is ordered; ListAllFavorites returns kinds in this order.
// Table and column names come only from this list, never from input, which
// is what makes the fmt.Sprintf'd SQL below safe.
var favoriteTables = []favoriteTable{
	{kind: model.FavoriteCharacter, table: "favorite_characters", column: "character_id", target: "characters"},
	{kind: model.FavoriteVehicle, table: "favorite_vehicles", column: "vehicle_id", target: "vehicles"},
	{kind: model.FavoritePlanet, table: "favorite_planets", column: "planet_id", target: "planets"},
}

func tableFor(kind model.FavoriteKind) (favoriteTable, error) {
	for _, t := range favoriteTables {
		if t.kind == kind {
			return t, nil
		}
	}
	return favoriteTable{}, fmt.Errorf("sqlite: unknown favorite kind %q", kind)
}

// resource is the name used in error messages, e.g. "favorite planet".
func (t favoriteTable) resource() string {
	return "favorite " + string(t.kind)
}

func (t favoriteTable) scan(s scanner) (model.FavoriteRecord, error) {
	f := model.FavoriteRecord{Kind: t.kind}
	err := s.Scan(&f.ID, &f.UserID, &f.TargetID)
	return f, err
}

// AddFavorite inserts the pair. The UNIQUE(user_id, target) constraint turns
// a duplicate into Conflict; the foreign keys turn a missing user or target
// into NotFound.
func (db *DB) AddFavorite(ctx context.Context, kind model.FavoriteKind, userID, targetID int64) (*model.FavoriteRecord, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	result, err := db.conn.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (user_id, %s) VALUES (?, ?)`, t.table, t.column),
		userID, targetID,
	)
	if err != nil {
		return nil, constraintError(err, t.resource(), "adding "+t.resource())
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: reading new %s id: %w", t.resource(), err)
	}
	return &model.FavoriteRecord{ID: id, Kind: kind, UserID: userID, TargetID: targetID}, nil
}

func (db *DB) GetFavorite(ctx context.Context, kind model.FavoriteKind, id int64) (*model.FavoriteRecord, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	f, err := t.scan(db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, user_id, %s FROM %s WHERE id = ?`, t.column, t.table), id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound(t.resource(), fmt.Sprint(id))
		}
		return nil, fmt.Errorf("sqlite: getting %s %d: %w", t.resource(), id, err)
	}
	return &f, nil
}

func (db *DB) FindFavorite(ctx context.Context, kind model.FavoriteKind, userID, targetID int64) (*model.FavoriteRecord, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	f, err := t.scan(db.conn.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT id, user_id, %[1]s FROM %[2]s WHERE user_id = ? AND %[1]s = ?`, t.column, t.table),
		userID, targetID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundMessage(fmt.Sprintf("%s not found for user %d and %s %d", t.resource(), userID, t.kind, targetID))
		}
		return nil, fmt.Errorf("sqlite: finding %s: %w", t.resource(), err)
	}
	return &f, nil
}

func (db *DB) ListFavorites(ctx context.Context, kind model.FavoriteKind) ([]model.FavoriteRecord, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, user_id, %s FROM %s ORDER BY id`, t.column, t.table))
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing %ss: %w", t.resource(), err)
	}
	defer rows.Close()

	favorites := make([]model.FavoriteRecord, 0)
	for rows.Next() {
		f, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning %s row: %w", t.resource(), err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating %ss: %w", t.resource(), err)
	}
	return favorites, nil
}

// ListAllFavorites reads the three tables in one UNION ALL query. The literal
// kind column tells rows apart; ord keeps kinds in favoriteTables order.
func (db *DB) ListAllFavorites(ctx context.Context) ([]model.FavoriteRecord, error) {
	selects := make([]string, 0, len(favoriteTables))
	for i, t := range favoriteTables {
		selects = append(selects, fmt.Sprintf(
			`SELECT %d AS ord, '%s' AS kind, id, user_id, %s AS target_id FROM %s`,
			i, t.kind, t.column, t.table,
		))
	}
	query := strings.Join(selects, "\nUNION ALL\n") + "\nORDER BY ord, id"

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]model.FavoriteRecord, 0)
	for rows.Next() {
		var (
			ord  int
			kind string
			f    model.FavoriteRecord
		)
		if err := rows.Scan(&ord, &kind, &f.ID, &f.UserID, &f.TargetID); err != nil {
			return nil, fmt.Errorf("sqlite: scanning favorite row: %w", err)
		}
		f.Kind = model.FavoriteKind(kind)
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating favorites: %w", err)
	}
	return favorites, nil
}

func (db *DB) DeleteFavorite(ctx context.Context, kind model.FavoriteKind, id int64) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	result, err := db.conn.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.table), id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting %s %d: %w", t.resource(), id, err)
	}
	return rowsAffected(result, t.resource(), id)
}
