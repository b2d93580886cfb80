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

// Package db implements the Postgres-backed topology store: the append-only
// fact log, the edge claim table, and the device/interface registry tables.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

// DB wraps the pgx pool behind the Service interface.
type DB struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// New dials Postgres, applies pending migrations, and returns the store.
func New(ctx context.Context, config *models.PostgresDatabase, log logger.Logger) (*DB, error) {
	pool, err := NewPool(ctx, config, log)
	if err != nil {
		return nil, err
	}

	if pool == nil {
		return nil, fmt.Errorf("%w: database configuration missing", ErrFailedOpenDB)
	}

	if err := RunMigrations(ctx, pool, log); err != nil {
		pool.Close()
		return nil, err
	}

	return &DB{pool: pool, logger: log}, nil
}

func (db *DB) conn() *pgxpool.Pool {
	return db.pool
}

// Close releases the connection pool.
func (db *DB) Close() error {
	db.pool.Close()
	return nil
}
