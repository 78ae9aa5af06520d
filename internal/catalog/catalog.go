/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package catalog keeps a small per-output-directory SQLite record of every
// rendered document and its derived-format siblings, so batch runs and UIs
// can list what was produced without scanning the filesystem.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "mapforge/internal/log"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// DirName stores catalog data under the output root.
	DirName  = ".mapforge"
	FileName = "catalog.sqlite"

	// schemaVersion tracks the embedded catalog schema. Bump on breaking
	// changes and extend ensureSchema accordingly.
	schemaVersion = 1
)

// Path returns the full path of the catalog database under root.
func Path(root string) string {
	return filepath.Join(root, DirName, FileName)
}

// Catalog wraps the open database handle.
type Catalog struct {
	db *sql.DB
}

// Render is one recorded render pass.
type Render struct {
	ID        int64
	Area      string
	DocPath   string
	WidthIn   float64
	HeightIn  float64
	DPI       int
	Features  int
	Labels    int
	CreatedAt time.Time
}

// Export is one recorded derived-format sibling.
type Export struct {
	ID        int64
	RenderID  int64
	Format    string
	Path      string
	CreatedAt time.Time
}

// Open ensures the catalog database exists under root, enables WAL mode and
// brings the schema up to date.
func Open(root string) (*Catalog, error) {
	l := applog.WithOperation(applog.WithComponent("catalog"), "open").With(slog.String("root", root))
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("catalog root is required")
	}
	if err := os.MkdirAll(filepath.Join(root, DirName), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(Path(root)))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error { return c.db.Close() }

func ensureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS renders (
			id          INTEGER PRIMARY KEY,
			area        TEXT    NOT NULL,
			doc_path    TEXT    NOT NULL,
			width_in    REAL    NOT NULL,
			height_in   REAL    NOT NULL,
			dpi         INTEGER NOT NULL,
			features    INTEGER NOT NULL,
			labels      INTEGER NOT NULL,
			created_at  TEXT    NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS exports (
			id          INTEGER PRIMARY KEY,
			render_id   INTEGER NOT NULL REFERENCES renders(id) ON DELETE CASCADE,
			format      TEXT    NOT NULL,
			path        TEXT    NOT NULL,
			created_at  TEXT    NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_exports_render ON exports(render_id);`,
	}
	for _, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure catalog schema: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO meta(k, v) VALUES('schema_version', ?)
		 ON CONFLICT(k) DO UPDATE SET v=excluded.v`,
		fmt.Sprint(schemaVersion)); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

// RecordRender inserts a render row and returns its id.
func (c *Catalog) RecordRender(ctx context.Context, r Render) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	res, err := c.db.ExecContext(ctx,
		`INSERT INTO renders(area, doc_path, width_in, height_in, dpi, features, labels, created_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Area, r.DocPath, r.WidthIn, r.HeightIn, r.DPI, r.Features, r.Labels,
		r.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("record render: %w", err)
	}
	return res.LastInsertId()
}

// RecordExport inserts an export row for a render.
func (c *Catalog) RecordExport(ctx context.Context, renderID int64, format, path string) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO exports(render_id, format, path, created_at) VALUES(?, ?, ?, ?)`,
		renderID, format, path, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record export: %w", err)
	}
	return nil
}

// ListRenders returns the most recent renders, newest first.
func (c *Catalog) ListRenders(ctx context.Context, limit int) ([]Render, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, area, doc_path, width_in, height_in, dpi, features, labels, created_at
		 FROM renders ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list renders: %w", err)
	}
	defer rows.Close()

	var out []Render
	for rows.Next() {
		var r Render
		var created string
		if err := rows.Scan(&r.ID, &r.Area, &r.DocPath, &r.WidthIn, &r.HeightIn, &r.DPI, &r.Features, &r.Labels, &created); err != nil {
			return nil, fmt.Errorf("scan render: %w", err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListExports returns the exports recorded for one render.
func (c *Catalog) ListExports(ctx context.Context, renderID int64) ([]Export, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, render_id, format, path, created_at FROM exports WHERE render_id = ? ORDER BY id`, renderID)
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var out []Export
	for rows.Next() {
		var e Export
		var created string
		if err := rows.Scan(&e.ID, &e.RenderID, &e.Format, &e.Path, &created); err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, e)
	}
	return out, rows.Err()
}
