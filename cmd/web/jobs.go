package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// PsipredJob tracks one secondary-structure prediction submitted for an ORF.
type PsipredJob struct {
	ID         string    `json:"id"`
	OrfID      string    `json:"orf_id"`
	RemoteUUID string    `json:"remote_uuid,omitempty"`
	State      string    `json:"state"`
	Message    string    `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// jobs store configuration; "json" keeps a flat file, "sqlite" a database.
var (
	jobsStore = "json"
	jobsPath  = "jobs.json"
	jobsDB    *sql.DB
)

const jobsSchema = `CREATE TABLE IF NOT EXISTS jobs (
    id TEXT PRIMARY KEY,
    orf_id TEXT,
    remote_uuid TEXT,
    state TEXT,
    message TEXT,
    created_at TEXT,
    updated_at TEXT
)`

// initJobsStore prepares the configured backend. For sqlite it opens the
// database and ensures the schema exists.
func initJobsStore(store, path string) error {
	jobsStore = store
	jobsPath = path
	if store != "sqlite" {
		return nil
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	if _, err := db.Exec(jobsSchema); err != nil {
		db.Close()
		return err
	}
	jobsDB = db
	return nil
}

// saveJobs persists the full jobs list to the configured backend. The list
// is small (one row per submitted ORF), so sqlite writes replace the table
// in one transaction.
func saveJobs(path string, jobs []PsipredJob) error {
	if jobsStore == "sqlite" {
		if jobsDB == nil {
			return fmt.Errorf("sqlite jobs store not initialized")
		}
		tx, err := jobsDB.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM jobs`); err != nil {
			tx.Rollback()
			return err
		}
		for _, j := range jobs {
			_, err := tx.Exec(`INSERT INTO jobs (id, orf_id, remote_uuid, state, message, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
				j.ID, j.OrfID, j.RemoteUUID, j.State, j.Message,
				j.CreatedAt.UTC().Format(time.RFC3339), j.UpdatedAt.UTC().Format(time.RFC3339))
			if err != nil {
				tx.Rollback()
				return err
			}
		}
		return tx.Commit()
	}

	b, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// loadJobs reads the jobs list from the configured backend. A missing json
// file yields an empty list.
func loadJobs(path string) ([]PsipredJob, error) {
	if jobsStore == "sqlite" {
		if jobsDB == nil {
			return nil, fmt.Errorf("sqlite jobs store not initialized")
		}
		rows, err := jobsDB.Query(`SELECT id, orf_id, remote_uuid, state, message, created_at, updated_at FROM jobs ORDER BY created_at`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		var jobs []PsipredJob
		for rows.Next() {
			var j PsipredJob
			var created, updated string
			if err := rows.Scan(&j.ID, &j.OrfID, &j.RemoteUUID, &j.State, &j.Message, &created, &updated); err != nil {
				return nil, err
			}
			j.CreatedAt, _ = time.Parse(time.RFC3339, created)
			j.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
			jobs = append(jobs, j)
		}
		return jobs, rows.Err()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var jobs []PsipredJob
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
