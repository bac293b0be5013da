package database

import (
	"database/sql"
	stdlog "log"
	"time"

	"github.com/username/premiado/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// snapshotID is the fixed row id of the single persisted snapshot. The store
// keeps exactly one raw payload: the latest successful fetch.
const snapshotID = 1

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS reservation_snapshots (
		id INTEGER PRIMARY KEY,
		body BLOB NOT NULL,
		fetched_at TEXT NOT NULL
	);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.", "databasePath", databasePath)
	} else {
		stdlog.Println("Database tables ensured/created:", databasePath)
	}
}

// SaveSnapshot stores the raw API body as the current fallback snapshot,
// replacing any previous one.
func SaveSnapshot(db *sql.DB, body []byte) error {
	_, err := db.Exec(`
		INSERT INTO reservation_snapshots (id, body, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		snapshotID, body, time.Now().UTC().Format(time.RFC3339))
	return err
}

// LoadSnapshot returns the persisted raw body and its fetch time.
// Returns sql.ErrNoRows when no snapshot has been saved yet.
func LoadSnapshot(db *sql.DB) ([]byte, time.Time, error) {
	var body []byte
	var fetchedAtStr string
	err := db.QueryRow(`SELECT body, fetched_at FROM reservation_snapshots WHERE id = ?`, snapshotID).
		Scan(&body, &fetchedAtStr)
	if err != nil {
		return nil, time.Time{}, err
	}
	fetchedAt, err := time.Parse(time.RFC3339, fetchedAtStr)
	if err != nil {
		return nil, time.Time{}, err
	}
	return body, fetchedAt, nil
}
