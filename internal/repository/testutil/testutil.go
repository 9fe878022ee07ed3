// Package testutil provides SQLite-backed fixtures for repository and service tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"scireda/backend/internal/db"
	"scireda/backend/internal/snowflake"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// NewTestDB opens a migrated database in a per-test temp dir.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func now() string {
	return time.Now().UTC().Format(timeLayout)
}

// SeedUser inserts a user and returns its id.
func SeedUser(t *testing.T, database *sql.DB, username string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := database.Exec(
		`INSERT INTO users (id, email, username, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, username+"@example.com", username, "x", now(), now(),
	)
	require.NoError(t, err)
	return id
}

// SeedNetwork inserts a network owned by ownerID and returns its id.
func SeedNetwork(t *testing.T, database *sql.DB, name, ownerID string) int64 {
	t.Helper()
	id := snowflake.NextID()
	_, err := database.Exec(
		`INSERT INTO networks (id, name, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, name, ownerID, now(), now(),
	)
	require.NoError(t, err)
	return id
}

// SeedFolder inserts a folder and returns its id.
func SeedFolder(t *testing.T, database *sql.DB, name string, networkID int64, parentID *int64) int64 {
	t.Helper()
	id := snowflake.NextID()
	_, err := database.Exec(
		`INSERT INTO folders (id, name, network_id, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, networkID, parentID, now(), now(),
	)
	require.NoError(t, err)
	return id
}

// SeedNote inserts a note and returns its id.
func SeedNote(t *testing.T, database *sql.DB, title string, networkID int64, parentID *int64) int64 {
	t.Helper()
	id := snowflake.NextID()
	_, err := database.Exec(
		`INSERT INTO notes (id, title, content, network_id, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, title, "content of "+title, networkID, parentID, now(), now(),
	)
	require.NoError(t, err)
	return id
}

// Count returns the number of rows in table matching where (may be empty).
func Count(t *testing.T, database *sql.DB, table, where string, args ...any) int {
	t.Helper()
	query := `SELECT COUNT(*) FROM ` + table
	if where != "" {
		query += ` WHERE ` + where
	}
	var n int
	require.NoError(t, database.QueryRow(query, args...).Scan(&n))
	return n
}

// FailDeletesOf installs a trigger that aborts any DELETE of the folder with
// the given id, simulating a storage failure mid-transaction.
func FailDeletesOf(t *testing.T, database *sql.DB, folderID int64) {
	t.Helper()
	_, err := database.Exec(`CREATE TRIGGER fail_folder_delete BEFORE DELETE ON folders
		WHEN old.id = ` + strconv.FormatInt(folderID, 10) + `
		BEGIN SELECT RAISE(ABORT, 'injected failure'); END;`)
	require.NoError(t, err)
}
