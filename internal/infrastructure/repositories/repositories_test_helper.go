package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createTeamMemberTable(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE team_members (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		profession TEXT NOT NULL,
		intro TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		data_ai_hint TEXT,
		socials TEXT NOT NULL DEFAULT '[]',
		display_order INTEGER,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createContentTables(t *testing.T, db *gorm.DB) {
	t.Helper()
	mustExec(t, db, `CREATE TABLE articles (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		date TEXT NOT NULL,
		author TEXT,
		snippet TEXT NOT NULL,
		content TEXT NOT NULL,
		image_url TEXT,
		data_ai_hint TEXT,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE projects (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		image_url TEXT,
		data_ai_hint TEXT,
		location TEXT,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE contact_messages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		submitted_at DATETIME NOT NULL
	);`)
}
