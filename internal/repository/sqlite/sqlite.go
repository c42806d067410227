// Package sqlite implements the repository interfaces on top of SQLite.
//
// WHY modernc.org/sqlite?
// It is a pure Go translation of SQLite: no CGo, no C compiler, and
// cross-compilation works like any other Go package.
//
// DATABASE/SQL OVERVIEW:
//   - sql.DB    a connection pool (NOT a single connection!)
//   - sql.Row   a single result row
//   - sql.Rows  multiple result rows (must be closed!)
//
// The pattern is always:
//  1. sql.Open(driverName, dataSourceName) creates a pool
//  2. db.QueryContext / db.ExecContext runs queries
//  3. rows.Scan(&field1, &field2) reads results into Go variables
//
// One *DB implements every repository interface. Method names carry the
// entity (CreatePlanet, DeleteFavorite) so the interfaces do not collide.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/sakif/starwars-api/internal/apperror"
)

// DB wraps a sql.DB and is the single storage handle of the process. It is
// created once by the composition root and passed to every service.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath, applies PRAGMAs and runs migrations.
//
// dbPath examples:
//   - "data/starwars.db"  file-based database (persistent)
//   - ":memory:"          in-memory database (tests; lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", withPragmas(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// ONE CONNECTION:
	// PRAGMA foreign_keys is per connection, and every connection to ":memory:"
	// is a brand new empty database. A pool of exactly one connection keeps
	// both the pragma and the data visible to every statement. SQLite
	// serializes writers anyway, so this costs little for this workload.
	//
	// Consequence: never run a query while another *sql.Rows is still open,
	// the second query would wait forever for the only connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress. In-memory
	// databases answer "memory" and carry on.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are OFF by default in SQLite. ON DELETE CASCADE on the
	// favorite tables only works with them on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// withPragmas appends driver-level pragmas to the DSN so a reconnect gets
// them too. modernc.org/sqlite reads "_pragma" query parameters.
func withPragmas(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close closes the database. Call it after the HTTP server has drained.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable. Used by /healthz.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS makes it safe to run
// on every start.
//
// Name columns carry UNIQUE so duplicate creates are rejected by the database
// itself, not by a racy SELECT-then-INSERT. Favorite tables reference both
// sides with ON DELETE CASCADE: deleting a user, planet, character or vehicle
// removes the favorites pointing at it.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			email     TEXT    NOT NULL UNIQUE,
			username  TEXT    NOT NULL UNIQUE,
			password  TEXT    NOT NULL,
			is_active INTEGER NOT NULL DEFAULT 1,
			name      TEXT,
			lastname  TEXT
		);

		CREATE TABLE IF NOT EXISTS planets (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT    NOT NULL UNIQUE,
			population INTEGER,
			diameter   INTEGER
		);

		CREATE TABLE IF NOT EXISTS characters (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			name       TEXT    NOT NULL UNIQUE,
			last_name  TEXT    NOT NULL,
			height     INTEGER,
			hair_color TEXT,
			birth_year INTEGER
		);

		CREATE TABLE IF NOT EXISTS vehicles (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			name            TEXT    NOT NULL UNIQUE,
			model           TEXT,
			cost_in_credits INTEGER
		);
	`)
	if err != nil {
		return fmt.Errorf("creating entity tables: %w", err)
	}

	for _, t := range favoriteTables {
		_, err := db.conn.Exec(fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id      INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				%[2]s   INTEGER NOT NULL REFERENCES %[3]s(id) ON DELETE CASCADE,
				UNIQUE (user_id, %[2]s)
			);
			CREATE INDEX IF NOT EXISTS idx_%[1]s_target ON %[1]s(%[2]s);
		`, t.table, t.column, t.target))
		if err != nil {
			return fmt.Errorf("creating %s table: %w", t.table, err)
		}
	}

	return nil
}

// TRANSLATING DRIVER ERRORS:
// modernc.org/sqlite returns *sqlite.Error carrying the extended result code.
// We turn the two constraint failures a client can cause into domain errors so
// the handler can answer 409 or 404 instead of 500.

// constraintError maps a UNIQUE or FOREIGN KEY failure to an apperror. Any
// other error is returned unchanged, wrapped with op.
func constraintError(err error, resource, op string) error {
	var sqliteErr *moderncsqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return apperror.Conflict(resource, uniqueField(sqliteErr.Error()))
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return apperror.NotFoundMessage("referenced " + resource + " target does not exist")
		}
	}
	return fmt.Errorf("sqlite: %s: %w", op, err)
}

// uniqueField extracts the column from SQLite's message, e.g.
// "UNIQUE constraint failed: users.email" gives "email". For a composite
// constraint ("favorite_planets.user_id, favorite_planets.planet_id") the
// last column is reported.
func uniqueField(msg string) string {
	const marker = "constraint failed: "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return "value"
	}
	cols := msg[i+len(marker):]
	parts := strings.Split(cols, ",")
	last := strings.TrimSpace(parts[len(parts)-1])
	if _, col, ok := strings.Cut(last, "."); ok {
		last = col
	}
	// the driver appends " (2067)" to its messages
	if i := strings.IndexByte(last, ' '); i >= 0 {
		last = last[:i]
	}
	return last
}

// rowsAffected converts "no row matched" into NotFound.
func rowsAffected(result sql.Result, resource string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, fmt.Sprint(id))
	}
	return nil
}
