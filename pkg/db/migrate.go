/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/netweave/pkg/logger"
)

const migrationsTable = "schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations brings the topology schema up to the latest version.
// Applied versions are tracked in a dedicated table so reruns are no-ops.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log logger.Logger) error {
	if pool == nil {
		return nil
	}

	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("migrations: acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		version     TEXT PRIMARY KEY,
		applied_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`, migrationsTable)); err != nil {
		return fmt.Errorf("migrations: create tracking table: %w", err)
	}

	applied := make(map[string]struct{})

	rows, err := conn.Query(ctx, fmt.Sprintf(`SELECT version FROM %s`, migrationsTable))
	if err != nil {
		return fmt.Errorf("migrations: list applied versions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("migrations: scan applied version: %w", err)
		}

		applied[version] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("migrations: iterate applied versions: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations: read embedded migrations: %w", err)
	}

	filenames := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		// Only .up.sql files apply forward; .down.sql files are rollbacks.
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		filenames = append(filenames, entry.Name())
	}

	sort.Strings(filenames)

	for _, name := range filenames {
		version := extractVersion(name)
		if _, ok := applied[version]; ok {
			continue
		}

		log.Info().Str("migration", name).Msg("applying migration")

		content, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("migrations: read %s: %w", name, err)
		}

		for idx, stmt := range splitSQLStatements(string(content)) {
			if stmt == "" {
				continue
			}

			if _, err := conn.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("migrations: statement %d in %s failed: %w", idx+1, name, err)
			}
		}

		if _, err := conn.Exec(ctx, fmt.Sprintf(`INSERT INTO %s (version) VALUES ($1)`, migrationsTable), version); err != nil {
			return fmt.Errorf("migrations: record %s: %w", name, err)
		}

		log.Info().Str("migration", name).Msg("migration complete")
	}

	return nil
}
