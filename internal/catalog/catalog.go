// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists compiled network snapshots in a local SQLite
// database. Each snapshot stores the full IR artifact losslessly alongside
// relational population/projection rows for querying, so a snapshot can be
// listed, inspected, re-exported, or fed to the hardware code generator long
// after the source network is gone.
// Implements: docs/ARCHITECTURE § Pipeline (catalog).
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/orca-compiler/pkg/types"
)

const dbFile = "catalog.db"

// Catalog manages the snapshot database.
type Catalog struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the catalog database at cfg.CatalogDir/catalog.db,
// creating the directory and schema as needed.
func Open(cfg types.CatalogConfig) (*Catalog, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	c := &Catalog{db: db, maxResults: maxResults}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			n_total INTEGER NOT NULL,
			s_total INTEGER NOT NULL,
			artifact TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS populations (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			pop_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			size INTEGER NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS projections (
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
			proj_id TEXT NOT NULL,
			pre TEXT NOT NULL,
			post TEXT NOT NULL,
			sign TEXT NOT NULL,
			plastic INTEGER NOT NULL,
			p_connection REAL NOT NULL,
			mean REAL NOT NULL,
			std REAL NOT NULL,
			synapses INTEGER NOT NULL,
			position INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_populations_snapshot ON populations(snapshot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_projections_snapshot ON projections(snapshot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_name ON snapshots(name)`,
	}

	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Entry is one catalog listing row.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Neurons   int       `json:"n_total" yaml:"n_total"`
	Synapses  int       `json:"s_total" yaml:"s_total"`
}

// Save records a snapshot and returns its identifier. The IR is validated
// first; the relational rows and the stored artifact always agree.
func (c *Catalog) Save(ctx context.Context, ir *types.NetworkIR) (string, error) {
	if err := ir.Validate(); err != nil {
		return "", fmt.Errorf("refusing inconsistent snapshot: %w", err)
	}

	artifact, err := yaml.Marshal(ir)
	if err != nil {
		return "", fmt.Errorf("marshaling snapshot: %w", err)
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, name, created_at, n_total, s_total, artifact)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, ir.Name, createdAt, ir.TotalNeurons, ir.TotalSynapses, string(artifact),
	)
	if err != nil {
		return "", fmt.Errorf("inserting snapshot: %w", err)
	}

	popStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO populations (snapshot_id, pop_id, kind, size, position)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing population insert: %w", err)
	}
	defer popStmt.Close()

	for i, p := range ir.Populations {
		if _, err := popStmt.ExecContext(ctx, id, p.ID, string(p.Kind), p.Size, i); err != nil {
			return "", fmt.Errorf("inserting population %s: %w", p.ID, err)
		}
	}

	projStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO projections (snapshot_id, proj_id, pre, post, sign, plastic,
		 p_connection, mean, std, synapses, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing projection insert: %w", err)
	}
	defer projStmt.Close()

	for i, s := range ir.Projections {
		_, err := projStmt.ExecContext(ctx, id, s.ID, s.Pre, s.Post, string(s.Sign),
			s.Plastic, s.PConnection, s.WeightMean, s.WeightStd, s.Synapses, i)
		if err != nil {
			return "", fmt.Errorf("inserting projection %s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing snapshot: %w", err)
	}
	return id, nil
}

// Get reloads the IR for a snapshot. The id may be any unambiguous prefix of
// the full identifier.
func (c *Catalog) Get(ctx context.Context, id string) (*types.NetworkIR, error) {
	fullID, err := c.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	var artifact string
	err = c.db.QueryRowContext(ctx,
		`SELECT artifact FROM snapshots WHERE id = ?`, fullID,
	).Scan(&artifact)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot %s: %w", fullID, err)
	}

	var ir types.NetworkIR
	if err := yaml.Unmarshal([]byte(artifact), &ir); err != nil {
		return nil, fmt.Errorf("parsing snapshot %s: %w", fullID, err)
	}
	if err := ir.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", fullID, err)
	}
	return &ir, nil
}

// List returns the most recent snapshots, newest first.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name, created_at, n_total, s_total FROM snapshots
		 ORDER BY rowid DESC LIMIT ?`, c.maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &createdAt, &e.Neurons, &e.Synapses); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing snapshot timestamp %q: %w", createdAt, err)
		}
		e.CreatedAt = t
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes a snapshot and its rows. The id may be a prefix.
func (c *Catalog) Delete(ctx context.Context, id string) error {
	fullID, err := c.resolveID(ctx, id)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, fullID)
	if err != nil {
		return fmt.Errorf("deleting snapshot %s: %w", fullID, err)
	}
	return nil
}

// resolveID expands an id prefix to the single matching snapshot id.
func (c *Catalog) resolveID(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("empty snapshot id")
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT id FROM snapshots WHERE id = ? OR id LIKE ? || '%' LIMIT 2`, id, id)
	if err != nil {
		return "", fmt.Errorf("resolving snapshot id: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return "", fmt.Errorf("scanning snapshot id: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no snapshot matches %q", id)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("snapshot id %q is ambiguous", id)
	}
}
