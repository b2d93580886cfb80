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

package collector

//go:generate mockgen -destination=mock_collector.go -package=collector github.com/carverauto/netweave/pkg/collector Sender

import (
	"context"

	"github.com/gosnmp/gosnmp"

	"github.com/carverauto/netweave/pkg/models"
)

// Sender delivers collected batches to the core, either straight to its
// HTTP API or through JetStream.
type Sender interface {
	SendFacts(ctx context.Context, protocol models.FactProtocol, facts []*models.Fact) error
	SendInterfaces(ctx context.Context, ifaces []*models.NetInterface) error
}

// snmpConn is the slice of gosnmp the pollers use, extracted so tests
// can feed canned PDUs.
type snmpConn interface {
	Close() error
	BulkWalk(rootOid string, walkFn gosnmp.WalkFunc) error
}

// connFactory opens a connected SNMP session to one target.
type connFactory func(target models.SNMPTarget) (snmpConn, error)
