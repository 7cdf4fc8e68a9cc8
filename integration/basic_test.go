//go:build basic

// Package integration contains integration tests for taskpulse.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// seedSQLiteDatabase fills a migrated database with a small but
// interesting set of work items.
func seedSQLiteDatabase(t *testing.T, dbPath string) {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	// s1: overdue and overrunning, s2: healthy, s3: unassigned high priority
	inserts := []struct {
		query string
		args  []any
	}{
		{
			`INSERT INTO subtasks (id, minitask_id, name, project, status, estimated_hours, due_date, priority_stars, assigned_to, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"s1", "m1", "Ship payment flow", "alpha", "in_progress", 10.0, yesterday, 3.0, "alice", now},
		},
		{
			`INSERT INTO subtasks (id, minitask_id, name, project, status, estimated_hours, due_date, priority_stars, assigned_to, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"s2", "m1", "Write release notes", "alpha", "todo", 2.0, nextWeek, 1.0, "alice", now},
		},
		{
			`INSERT INTO subtasks (id, minitask_id, name, project, status, estimated_hours, due_date, priority_stars, assigned_to, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"s3", nil, "Fix login outage", "alpha", "todo", nil, nil, 3.0, "", now},
		},
		{
			`INSERT INTO work_logs (id, subtask_id, hours_spent, work_date) VALUES (?, ?, ?, ?)`,
			[]any{"l1", "s1", 12.0, yesterday},
		},
		{
			`INSERT INTO task_requests (id, name, project, requested_by, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			[]any{"r1", "Add SSO support", "alpha", "bob", "pending", now.Add(-10 * 24 * time.Hour)},
		},
	}
	for _, ins := range inserts {
		_, err := db.Exec(ins.query, ins.args...)
		require.NoError(t, err)
	}
}

// TestTaskpulseSQLiteEndToEnd migrates, seeds and queries a real SQLite database
// through the built CLI binary.
func TestTaskpulseSQLiteEndToEnd(t *testing.T) {
	dbDir, err := os.MkdirTemp("", "taskpulse-sqlite-*")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(dbDir) }()
	dbPath := filepath.Join(dbDir, "taskpulse.db")

	// 1. Create the schema
	_, err = runTaskpulseCommand(t, "migrate", "--db-connect", dbPath)
	require.NoError(t, err)

	// 2. Seed data directly
	seedSQLiteDatabase(t, dbPath)

	// 3. Red flags: the overdue overrun and the unassigned item must surface
	out, err := runTaskpulseCommand(t, "flags", "--db-connect", dbPath, "--color", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "Ship payment flow")
	assert.Contains(t, out, "Fix login outage")
	assert.Contains(t, out, "Add SSO support")
	assert.Contains(t, out, "red flags")

	// 4. Focus queue for alice: overdue item ranks first
	out, err = runTaskpulseCommand(t, "focus", "alice", "--db-connect", dbPath, "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "\"rank\": 1")
	assert.Contains(t, out, "Ship payment flow")

	// 5. Single item risk
	out, err = runTaskpulseCommand(t, "risk", "s1", "--db-connect", dbPath, "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "\"is_overrun\": true")
	assert.Contains(t, out, "\"level\": \"critical\"")

	// 6. Parquet export
	exportPrefix := filepath.Join(dbDir, "snapshot")
	_, err = runTaskpulseCommand(t, "export", "--db-connect", dbPath, "--output-file", exportPrefix, "--assignee", "alice")
	require.NoError(t, err)
	info, err := os.Stat(exportPrefix + ".red_flags.parquet")
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	_, err = os.Stat(exportPrefix + ".focus_queue.parquet")
	require.NoError(t, err)
}

// TestTaskpulseVersion runs the version command.
func TestTaskpulseVersion(t *testing.T) {
	out, err := runTaskpulseCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "taskpulse CLI")
	assert.Contains(t, out, "Version:")
}
