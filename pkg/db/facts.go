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
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/carverauto/netweave/pkg/models"
)

const insertFactSQL = `
INSERT INTO facts (
	collected_at,
	device,
	ifname,
	peer_device,
	peer_ifname,
	mac_addr,
	ip_addr,
	vlan,
	protocol,
	payload
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb)`

const selectFactColumns = `
SELECT id, collected_at, device, ifname, peer_device, peer_ifname, mac_addr, ip_addr, vlan, protocol, payload
FROM facts`

// RecordFacts appends collector observations to the fact log. Facts that
// fail validation are logged and skipped; the rest of the batch still
// commits. Returns the number of facts written.
func (db *DB) RecordFacts(ctx context.Context, facts []*models.Fact) (int, error) {
	if len(facts) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	queued := 0

	for _, fact := range facts {
		args, err := buildFactArgs(fact)
		if err != nil {
			db.logger.Warn().Err(err).Msg("skipping invalid fact")
			continue
		}

		batch.Queue(insertFactSQL, args...)
		queued++
	}

	if queued == 0 {
		return 0, nil
	}

	if err := execBatch(ctx, batch, db.conn().SendBatch, "facts"); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFailedToInsert, err)
	}

	return queued, nil
}

// QueryFacts returns facts matching the filter, newest first.
func (db *DB) QueryFacts(ctx context.Context, filter models.FactFilter) ([]*models.Fact, error) {
	query, args := buildFactQuery(filter)

	rows, err := db.conn().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w facts: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	facts := make([]*models.Fact, 0)

	for rows.Next() {
		fact, err := scanFact(rows)
		if err != nil {
			return nil, err
		}

		facts = append(facts, fact)
	}

	return facts, rows.Err()
}

// PurgeFactsBefore deletes facts older than the cutoff and reports how
// many rows went away. Edges are never touched here; a link learned from
// since-expired facts persists until the engine re-scores it.
func (db *DB) PurgeFactsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := db.conn().Exec(ctx, `DELETE FROM facts WHERE collected_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge facts: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (db *DB) CountFacts(ctx context.Context) (int, error) {
	var count int

	if err := db.conn().QueryRow(ctx, `SELECT count(*) FROM facts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w fact count: %w", ErrFailedToQuery, err)
	}

	return count, nil
}

func buildFactArgs(fact *models.Fact) ([]interface{}, error) {
	if fact == nil {
		return nil, ErrFactNil
	}

	device := strings.TrimSpace(fact.Device)
	if device == "" || fact.CollectedAt.IsZero() || !fact.Protocol.Valid() {
		return nil, ErrFactIdentifiersMissing
	}

	var vlan interface{}
	if fact.VLAN > 0 {
		vlan = fact.VLAN
	}

	return []interface{}{
		fact.CollectedAt.UTC(),
		device,
		toNullableString(fact.Ifname),
		toNullableString(fact.PeerDevice),
		toNullableString(fact.PeerIfname),
		toNullableString(fact.MACAddr),
		toNullableString(fact.IPAddr),
		vlan,
		string(fact.Protocol),
		toNullableJSON(fact.Payload),
	}, nil
}

func buildFactQuery(filter models.FactFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.Device != "" {
		args = append(args, filter.Device)
		conds = append(conds, fmt.Sprintf("device = $%d", len(args)))
	}

	if filter.Protocol != "" {
		args = append(args, string(filter.Protocol))
		conds = append(conds, fmt.Sprintf("protocol = $%d", len(args)))
	}

	if !filter.Since.IsZero() {
		args = append(args, filter.Since.UTC())
		conds = append(conds, fmt.Sprintf("collected_at >= $%d", len(args)))
	}

	query := selectFactColumns
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}

	query += "\nORDER BY collected_at DESC, id DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf("\nLIMIT $%d", len(args))
	}

	return query, args
}

func scanFact(rows pgx.Rows) (*models.Fact, error) {
	var (
		fact       models.Fact
		ifname     *string
		peerDevice *string
		peerIfname *string
		macAddr    *string
		ipAddr     *string
		vlan       *int
		protocol   string
		payload    []byte
	)

	if err := rows.Scan(&fact.ID, &fact.CollectedAt, &fact.Device, &ifname, &peerDevice, &peerIfname,
		&macAddr, &ipAddr, &vlan, &protocol, &payload); err != nil {
		return nil, fmt.Errorf("%w fact: %w", ErrFailedToScan, err)
	}

	fact.Ifname = stringValue(ifname)
	fact.PeerDevice = stringValue(peerDevice)
	fact.PeerIfname = stringValue(peerIfname)
	fact.MACAddr = stringValue(macAddr)
	fact.IPAddr = stringValue(ipAddr)
	fact.Protocol = models.FactProtocol(protocol)

	if vlan != nil {
		fact.VLAN = *vlan
	}

	if len(payload) > 0 {
		fact.Payload = json.RawMessage(payload)
	}

	return &fact, nil
}

func toNullableString(value string) interface{} {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}

	return nil
}

func toNullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}

	return []byte(raw)
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
