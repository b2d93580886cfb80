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
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/netweave/pkg/models"
)

const upsertEdgeSQL = `
INSERT INTO edges (
	a_device,
	a_ifname,
	b_device,
	b_ifname,
	method,
	confidence,
	first_seen,
	last_seen,
	confirm_streak,
	evidence
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb)
ON CONFLICT (a_device, a_ifname, b_device, b_ifname, method) DO UPDATE SET
	confidence     = EXCLUDED.confidence,
	last_seen      = GREATEST(edges.last_seen, EXCLUDED.last_seen),
	confirm_streak = EXCLUDED.confirm_streak,
	evidence       = EXCLUDED.evidence`

const selectEdgeColumns = `
SELECT a_device, a_ifname, b_device, b_ifname, method, confidence, first_seen, last_seen, confirm_streak, evidence
FROM edges`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// UpsertEdge writes one claim atomically. Re-claiming the same key updates
// confidence, last_seen, streak, and evidence in place; first_seen keeps
// its original value and rows are never deleted. Invariant violations are
// rejected before anything reaches the database.
func (db *DB) UpsertEdge(ctx context.Context, edge *models.Edge) error {
	args, err := buildEdgeArgs(edge)
	if err != nil {
		return err
	}

	if _, err := db.conn().Exec(ctx, upsertEdgeSQL, args...); err != nil {
		return fmt.Errorf("%w edge: %w", ErrFailedToInsert, err)
	}

	return nil
}

// GetEdge fetches one claim by its full composite key.
func (db *DB) GetEdge(ctx context.Context, aDevice, aIfname, bDevice, bIfname string, method models.Method) (*models.Edge, error) {
	row := db.conn().QueryRow(ctx, selectEdgeColumns+`
WHERE a_device = $1 AND a_ifname = $2 AND b_device = $3 AND b_ifname = $4 AND method = $5`,
		aDevice, aIfname, bDevice, bIfname, string(method))

	edge, err := scanEdge(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEdgeNotFound
		}

		return nil, fmt.Errorf("%w edge: %w", ErrFailedToScan, err)
	}

	return edge, nil
}

// ListEdges returns claims matching the filter in a stable key order.
// Site and role filters match when either endpoint's device record does.
func (db *DB) ListEdges(ctx context.Context, filter models.EdgeFilter) ([]*models.Edge, error) {
	query, args := buildEdgeQuery(filter)

	rows, err := db.conn().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w edges: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	edges := make([]*models.Edge, 0)

	for rows.Next() {
		edge, err := scanEdge(rows)
		if err != nil {
			return nil, fmt.Errorf("%w edge: %w", ErrFailedToScan, err)
		}

		edges = append(edges, edge)
	}

	return edges, rows.Err()
}

func (db *DB) CountEdges(ctx context.Context) (int, error) {
	var count int

	if err := db.conn().QueryRow(ctx, `SELECT count(*) FROM edges`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w edge count: %w", ErrFailedToQuery, err)
	}

	return count, nil
}

func buildEdgeArgs(edge *models.Edge) ([]interface{}, error) {
	if edge == nil {
		return nil, ErrEdgeNil
	}

	aDevice := strings.TrimSpace(edge.ADevice)
	aIfname := strings.TrimSpace(edge.AIfname)
	bDevice := strings.TrimSpace(edge.BDevice)
	bIfname := strings.TrimSpace(edge.BIfname)

	if aDevice == "" || aIfname == "" || bDevice == "" || bIfname == "" {
		return nil, ErrEdgeEndpointsMissing
	}

	if !edge.Method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrEdgeMethodInvalid, edge.Method)
	}

	if edge.Confidence < 0 || edge.Confidence > 1 {
		return nil, fmt.Errorf("%w: %g", ErrEdgeConfidenceRange, edge.Confidence)
	}

	if edge.LastSeen.IsZero() {
		return nil, ErrEdgeTimestampMissing
	}

	firstSeen := edge.FirstSeen
	if firstSeen.IsZero() {
		firstSeen = edge.LastSeen
	}

	streak := edge.ConfirmStreak
	if streak < 1 {
		streak = 1
	}

	return []interface{}{
		aDevice,
		aIfname,
		bDevice,
		bIfname,
		string(edge.Method),
		edge.Confidence,
		firstSeen.UTC(),
		edge.LastSeen.UTC(),
		streak,
		toNullableJSON(edge.Evidence),
	}, nil
}

func buildEdgeQuery(filter models.EdgeFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.MinConfidence > 0 {
		args = append(args, filter.MinConfidence)
		conds = append(conds, fmt.Sprintf("confidence >= $%d", len(args)))
	}

	if filter.Site != "" {
		args = append(args, filter.Site)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM devices d WHERE d.device_id IN (a_device, b_device) AND d.site = $%d)", len(args)))
	}

	if filter.Role != "" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM devices d WHERE d.device_id IN (a_device, b_device) AND d.role = $%d)", len(args)))
	}

	query := selectEdgeColumns
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}

	query += "\nORDER BY a_device, a_ifname, b_device, b_ifname, method"

	return query, args
}

func scanEdge(row rowScanner) (*models.Edge, error) {
	var (
		edge     models.Edge
		method   string
		evidence []byte
	)

	if err := row.Scan(&edge.ADevice, &edge.AIfname, &edge.BDevice, &edge.BIfname, &method,
		&edge.Confidence, &edge.FirstSeen, &edge.LastSeen, &edge.ConfirmStreak, &evidence); err != nil {
		return nil, err
	}

	edge.Method = models.Method(method)

	if len(evidence) > 0 {
		edge.Evidence = json.RawMessage(evidence)
	}

	return &edge, nil
}
