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

package engine

import (
	"context"
	"encoding/json"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/carverauto/netweave/pkg/models"
	"github.com/carverauto/netweave/pkg/registry"
)

// ARPInferredIfname marks the device side of a mac_arp edge, where the
// correlation knows the switch port but not the device's own interface.
const ARPInferredIfname = "arp-inferred"

var linkLocalNet = mustParseCIDR("169.254.0.0/16")

func mustParseCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}

	return network
}

func isLinkLocal(addr string) bool {
	ip := net.ParseIP(addr)
	return ip != nil && linkLocalNet.Contains(ip)
}

// normalizeMAC canonicalizes a MAC address so ARP and MAC-table rows
// written in different vendor formats still join.
func normalizeMAC(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}

	if hw, err := net.ParseMAC(addr); err == nil {
		return hw.String()
	}

	return strings.ToLower(addr)
}

type arpObservation struct {
	ip   string
	vlan int
	seen time.Time
}

type macObservation struct {
	port string
	vlan int
	seen time.Time
}

// macARPClaims correlates ARP tables with MAC forwarding tables, the
// universal fallback for devices that announce nothing themselves. Both
// tables must come from the same polling switch and both entries must sit
// inside the recency window; a missing counterpart is a join-miss, not an
// error. One claim comes out per distinct (device, switch, port) triple.
func (e *Engine) macARPClaims(ctx context.Context, facts []*models.Fact, passStart time.Time, set *claimSet) {
	cutoff := passStart.Add(-e.arpWindow)

	arpTables := make(map[string]map[string]*arpObservation)
	macTables := make(map[string]map[string]*macObservation)

	for _, fact := range facts {
		if fact.CollectedAt.Before(cutoff) {
			continue
		}

		poller := strings.TrimSpace(fact.Device)
		mac := normalizeMAC(fact.MACAddr)

		if poller == "" || mac == "" {
			continue
		}

		switch fact.Protocol {
		case models.ProtocolARP:
			ip := strings.TrimSpace(fact.IPAddr)
			if ip == "" || isLinkLocal(ip) {
				continue
			}

			table := arpTables[poller]
			if table == nil {
				table = make(map[string]*arpObservation)
				arpTables[poller] = table
			}

			if prev, ok := table[mac]; !ok || fact.CollectedAt.After(prev.seen) {
				table[mac] = &arpObservation{ip: ip, vlan: fact.VLAN, seen: fact.CollectedAt}
			}
		case models.ProtocolMAC:
			port := strings.TrimSpace(fact.Ifname)
			if port == "" {
				continue
			}

			table := macTables[poller]
			if table == nil {
				table = make(map[string]*macObservation)
				macTables[poller] = table
			}

			if prev, ok := table[mac]; !ok || fact.CollectedAt.After(prev.seen) {
				table[mac] = &macObservation{port: port, vlan: fact.VLAN, seen: fact.CollectedAt}
			}
		}
	}

	resolved := make(map[string]string)

	resolve := func(addr string) (string, error) {
		if id, ok := resolved[addr]; ok {
			return id, nil
		}

		id, err := e.registry.ResolveDeviceID(ctx, addr)
		if err != nil {
			return "", err
		}

		resolved[addr] = id

		return id, nil
	}

	for _, poller := range sortedKeys(arpTables) {
		macTable := macTables[poller]
		if len(macTable) == 0 {
			continue
		}

		switchID, err := resolve(poller)
		if err != nil {
			e.logger.Warn().Err(err).Str("poller", poller).Msg("Skipping ARP/MAC correlation for unresolvable poller")
			continue
		}

		arpTable := arpTables[poller]

		for _, mac := range sortedKeys(arpTable) {
			arp := arpTable[mac]

			macObs, ok := macTable[mac]
			if !ok {
				continue
			}

			deviceID, err := resolve(arp.ip)
			if err != nil {
				e.logger.Warn().Err(err).Str("ip", arp.ip).Msg("Skipping ARP entry for unresolvable device")
				continue
			}

			if deviceID == switchID {
				continue
			}

			vlan := macObs.vlan
			if vlan == 0 {
				vlan = arp.vlan
			}

			evidence, err := json.Marshal(models.MACARPEvidence{
				MACAddr: mac,
				VLAN:    vlan,
				ARPSeen: arp.seen,
				MACSeen: macObs.seen,
			})
			if err != nil {
				evidence = nil
			}

			lastSeen := arp.seen
			if macObs.seen.After(lastSeen) {
				lastSeen = macObs.seen
			}

			set.add(&claim{
				aDevice:   deviceID,
				aIfname:   ARPInferredIfname,
				bDevice:   switchID,
				bIfname:   macObs.port,
				method:    models.MethodMACARP,
				base:      baseConfidenceMACARP,
				lastSeen:  lastSeen,
				evidence:  evidence,
				aDefaults: models.DeviceDefaults{MgmtIP: arp.ip, Role: models.RoleEndpoint},
				bDefaults: models.DeviceDefaults{MgmtIP: registry.NormalizeAddr(poller), Role: models.RoleSwitch},
			})
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
