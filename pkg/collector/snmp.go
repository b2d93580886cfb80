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

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

const (
	// Interface tables (IF-MIB)
	oidIfTable       = ".1.3.6.1.2.1.2.2.1"
	oidIfDescr       = ".1.3.6.1.2.1.2.2.1.2"
	oidIfSpeed       = ".1.3.6.1.2.1.2.2.1.5"
	oidIfPhysAddress = ".1.3.6.1.2.1.2.2.1.6"
	oidIfAdminStatus = ".1.3.6.1.2.1.2.2.1.7"
	oidIfOperStatus  = ".1.3.6.1.2.1.2.2.1.8"

	oidIfXTable    = ".1.3.6.1.2.1.31.1.1.1"
	oidIfName      = ".1.3.6.1.2.1.31.1.1.1.1"
	oidIfHighSpeed = ".1.3.6.1.2.1.31.1.1.1.15"

	// Duplex (EtherLike-MIB), indexed by ifIndex
	oidDot3StatsDuplex = ".1.3.6.1.2.1.10.7.2.1.19"

	// LLDP-MIB remote table
	oidLldpRemTable   = ".1.0.8802.1.1.2.1.4.1.1"
	oidLldpRemManAddr = ".1.0.8802.1.1.2.1.4.2.1.3"

	// CDP cache (CISCO-CDP-MIB)
	oidCdpCacheTable = ".1.3.6.1.4.1.9.9.23.1.2.1.1"

	// ARP (ipNetToMediaPhysAddress), index ifIndex.a.b.c.d
	oidIPNetToMediaPhys = ".1.3.6.1.2.1.4.22.1.2"

	// Bridge forwarding tables (BRIDGE-MIB / Q-BRIDGE-MIB)
	oidDot1dBasePortIfIndex = ".1.3.6.1.2.1.17.1.4.1.2"
	oidDot1dTpFdbPort       = ".1.3.6.1.2.1.17.4.3.1.2"
	oidDot1qTpFdbPort       = ".1.3.6.1.2.1.17.7.1.2.2.1.2"
)

// targetPoll is one polling pass over one switch. Every fact it emits
// carries the same collection timestamp.
type targetPoll struct {
	conn   snmpConn
	host   string
	now    time.Time
	logger logger.Logger
}

// interfaces walks ifTable and ifXTable into registry interface rows,
// keyed by ifIndex so the fact builders can resolve port names.
func (p *targetPoll) interfaces() (map[int]*models.NetInterface, error) {
	ifaces := make(map[int]*models.NetInterface)

	get := func(ifIndex int) *models.NetInterface {
		iface, ok := ifaces[ifIndex]
		if !ok {
			iface = &models.NetInterface{DeviceID: p.host, LastSeen: p.now}
			ifaces[ifIndex] = iface
		}

		return iface
	}

	err := p.conn.BulkWalk(oidIfTable, func(pdu gosnmp.SnmpPDU) error {
		prefix, ifIndex, ok := splitIndexedOID(pdu.Name)
		if !ok {
			return nil
		}

		iface := get(ifIndex)

		switch prefix {
		case oidIfDescr:
			if name := pduString(pdu); iface.Ifname == "" {
				iface.Ifname = name
			}
		case oidIfSpeed:
			// ifSpeed reports bps and saturates at 4.294 Gbps; ifHighSpeed
			// overrides it for faster links.
			if bps := pduInt64(pdu); bps > 0 && iface.SpeedMbps == 0 {
				iface.SpeedMbps = bps / 1_000_000
			}
		case oidIfPhysAddress:
			if raw, ok := pdu.Value.([]byte); ok {
				iface.MACAddr = formatMACAddress(raw)
			}
		case oidIfAdminStatus:
			iface.AdminStatus = ifStatusString(pduInt64(pdu))
		case oidIfOperStatus:
			iface.OperStatus = ifStatusString(pduInt64(pdu))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk ifTable on %s: %w", p.host, err)
	}

	// ifXTable is optional; older gear only has ifTable.
	_ = p.conn.BulkWalk(oidIfXTable, func(pdu gosnmp.SnmpPDU) error {
		prefix, ifIndex, ok := splitIndexedOID(pdu.Name)
		if !ok {
			return nil
		}

		iface, exists := ifaces[ifIndex]
		if !exists {
			return nil
		}

		switch prefix {
		case oidIfName:
			if name := pduString(pdu); name != "" {
				iface.Ifname = name
			}
		case oidIfHighSpeed:
			if mbps := pduInt64(pdu); mbps > 0 {
				iface.SpeedMbps = mbps
			}
		}

		return nil
	})

	_ = p.conn.BulkWalk(oidDot3StatsDuplex, func(pdu gosnmp.SnmpPDU) error {
		_, ifIndex, ok := splitIndexedOID(pdu.Name)
		if !ok {
			return nil
		}

		if iface, exists := ifaces[ifIndex]; exists {
			switch pduInt64(pdu) {
			case 2:
				iface.Duplex = "half"
			case 3:
				iface.Duplex = "full"
			}
		}

		return nil
	})

	for ifIndex, iface := range ifaces {
		if iface.Ifname == "" {
			iface.Ifname = fmt.Sprintf("if%d", ifIndex)
		}
	}

	return ifaces, nil
}

// lldpNeighbor accumulates one row of the LLDP remote table.
type lldpNeighbor struct {
	localPort int
	chassisID string
	portID    string
	portDesc  string
	sysName   string
	mgmtAddr  string
}

// NeighborEvidencePayload is the raw neighbor detail preserved on
// lldp/cdp facts.
type NeighborEvidencePayload struct {
	ChassisID string `json:"chassis_id,omitempty"`
	SysName   string `json:"sys_name,omitempty"`
	PortDesc  string `json:"port_desc,omitempty"`
	MgmtAddr  string `json:"mgmt_addr,omitempty"`
}

// neighborFacts walks the LLDP remote table, falling back to the CDP
// cache when the target announces nothing over LLDP.
func (p *targetPoll) neighborFacts(portNames map[int]string) ([]*models.Fact, error) {
	facts, err := p.lldpFacts(portNames)
	if err != nil {
		return nil, err
	}

	if len(facts) > 0 {
		return facts, nil
	}

	return p.cdpFacts(portNames)
}

func (p *targetPoll) lldpFacts(portNames map[int]string) ([]*models.Fact, error) {
	neighbors := make(map[string]*lldpNeighbor)
	order := make([]string, 0)

	// Row index is timeMark.localPort.index; the column number sits one
	// level above it in the OID.
	err := p.conn.BulkWalk(oidLldpRemTable, func(pdu gosnmp.SnmpPDU) error {
		parts := strings.Split(pdu.Name, ".")
		if len(parts) < 4 {
			return nil
		}

		localPort, err := strconv.Atoi(parts[len(parts)-2])
		if err != nil {
			return nil
		}

		key := strings.Join(parts[len(parts)-3:], ".")

		neighbor, exists := neighbors[key]
		if !exists {
			neighbor = &lldpNeighbor{localPort: localPort}
			neighbors[key] = neighbor
			order = append(order, key)
		}

		switch parts[len(parts)-4] {
		case "5": // lldpRemChassisId
			neighbor.chassisID = formatLLDPID(pdu)
		case "7": // lldpRemPortId
			neighbor.portID = formatLLDPID(pdu)
		case "8": // lldpRemPortDesc
			neighbor.portDesc = pduString(pdu)
		case "9": // lldpRemSysName
			neighbor.sysName = pduString(pdu)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk LLDP remote table on %s: %w", p.host, err)
	}

	// Management addresses live in a separate table whose index does not
	// line up row for row; attach each to the first neighbor without one.
	_ = p.conn.BulkWalk(oidLldpRemManAddr, func(pdu gosnmp.SnmpPDU) error {
		addr := decodeManAddr(pdu)
		if addr == "" {
			return nil
		}

		for _, key := range order {
			if neighbors[key].mgmtAddr == "" {
				neighbors[key].mgmtAddr = addr
				break
			}
		}

		return nil
	})

	facts := make([]*models.Fact, 0, len(order))

	for _, key := range order {
		neighbor := neighbors[key]

		peer := neighbor.mgmtAddr
		if peer == "" {
			peer = neighbor.sysName
		}

		if peer == "" {
			peer = neighbor.chassisID
		}

		if peer == "" {
			continue
		}

		peerIfname := neighbor.portID
		if peerIfname == "" {
			peerIfname = neighbor.portDesc
		}

		facts = append(facts, &models.Fact{
			CollectedAt: p.now,
			Device:      p.host,
			Ifname:      p.portName(portNames, neighbor.localPort),
			PeerDevice:  peer,
			PeerIfname:  peerIfname,
			Protocol:    models.ProtocolLLDP,
			Payload: marshalPayload(NeighborEvidencePayload{
				ChassisID: neighbor.chassisID,
				SysName:   neighbor.sysName,
				PortDesc:  neighbor.portDesc,
				MgmtAddr:  neighbor.mgmtAddr,
			}),
		})
	}

	return facts, nil
}

func (p *targetPoll) cdpFacts(portNames map[int]string) ([]*models.Fact, error) {
	neighbors := make(map[string]*lldpNeighbor)
	order := make([]string, 0)

	// Row index is ifIndex.index; column number one level above.
	err := p.conn.BulkWalk(oidCdpCacheTable, func(pdu gosnmp.SnmpPDU) error {
		parts := strings.Split(pdu.Name, ".")
		if len(parts) < 3 {
			return nil
		}

		ifIndex, err := strconv.Atoi(parts[len(parts)-2])
		if err != nil {
			return nil
		}

		key := strings.Join(parts[len(parts)-2:], ".")

		neighbor, exists := neighbors[key]
		if !exists {
			neighbor = &lldpNeighbor{localPort: ifIndex}
			neighbors[key] = neighbor
			order = append(order, key)
		}

		switch parts[len(parts)-3] {
		case "4": // cdpCacheAddress
			neighbor.mgmtAddr = decodeCDPAddress(pdu)
		case "6": // cdpCacheDeviceId
			neighbor.sysName = pduString(pdu)
		case "7": // cdpCacheDevicePort
			neighbor.portID = pduString(pdu)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk CDP cache on %s: %w", p.host, err)
	}

	facts := make([]*models.Fact, 0, len(order))

	for _, key := range order {
		neighbor := neighbors[key]

		peer := neighbor.mgmtAddr
		if peer == "" {
			peer = neighbor.sysName
		}

		if peer == "" {
			continue
		}

		facts = append(facts, &models.Fact{
			CollectedAt: p.now,
			Device:      p.host,
			Ifname:      p.portName(portNames, neighbor.localPort),
			PeerDevice:  peer,
			PeerIfname:  neighbor.portID,
			Protocol:    models.ProtocolCDP,
			Payload: marshalPayload(NeighborEvidencePayload{
				SysName:  neighbor.sysName,
				MgmtAddr: neighbor.mgmtAddr,
			}),
		})
	}

	return facts, nil
}

// arpFacts walks ipNetToMediaPhysAddress. Each row carries the MAC, the
// IP, and the interface it was learned on.
func (p *targetPoll) arpFacts(portNames map[int]string) ([]*models.Fact, error) {
	var facts []*models.Fact

	// Index is ifIndex.a.b.c.d, value is the MAC.
	err := p.conn.BulkWalk(oidIPNetToMediaPhys, func(pdu gosnmp.SnmpPDU) error {
		parts := strings.Split(pdu.Name, ".")
		if len(parts) < 5 {
			return nil
		}

		ifIndex, err := strconv.Atoi(parts[len(parts)-5])
		if err != nil {
			return nil
		}

		raw, ok := pdu.Value.([]byte)
		if !ok {
			return nil
		}

		mac := formatMACAddress(raw)
		if mac == "" {
			return nil
		}

		facts = append(facts, &models.Fact{
			CollectedAt: p.now,
			Device:      p.host,
			Ifname:      p.portName(portNames, ifIndex),
			MACAddr:     mac,
			IPAddr:      strings.Join(parts[len(parts)-4:], "."),
			Protocol:    models.ProtocolARP,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk ARP table on %s: %w", p.host, err)
	}

	return facts, nil
}

// macFacts walks the bridge forwarding table, preferring the VLAN-aware
// Q-BRIDGE table and falling back to the flat dot1d table.
func (p *targetPoll) macFacts(portNames map[int]string) ([]*models.Fact, error) {
	portToIfIndex := make(map[int]int)

	_ = p.conn.BulkWalk(oidDot1dBasePortIfIndex, func(pdu gosnmp.SnmpPDU) error {
		_, bridgePort, ok := splitIndexedOID(pdu.Name)
		if !ok {
			return nil
		}

		if ifIndex := pduInt64(pdu); ifIndex > 0 {
			portToIfIndex[bridgePort] = int(ifIndex)
		}

		return nil
	})

	resolvePort := func(bridgePort int) string {
		if ifIndex, ok := portToIfIndex[bridgePort]; ok {
			return p.portName(portNames, ifIndex)
		}

		return p.portName(portNames, bridgePort)
	}

	var facts []*models.Fact

	// dot1qTpFdbPort index is fdbId.<6 mac bytes>; fdbId tracks the VLAN
	// on common implementations.
	err := p.conn.BulkWalk(oidDot1qTpFdbPort, func(pdu gosnmp.SnmpPDU) error {
		parts := strings.Split(pdu.Name, ".")
		if len(parts) < 7 {
			return nil
		}

		mac := macFromOIDParts(parts[len(parts)-6:])
		if mac == "" {
			return nil
		}

		vlan, err := strconv.Atoi(parts[len(parts)-7])
		if err != nil {
			vlan = 0
		}

		bridgePort := int(pduInt64(pdu))
		if bridgePort <= 0 {
			return nil
		}

		facts = append(facts, &models.Fact{
			CollectedAt: p.now,
			Device:      p.host,
			Ifname:      resolvePort(bridgePort),
			MACAddr:     mac,
			VLAN:        vlan,
			Protocol:    models.ProtocolMAC,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk FDB on %s: %w", p.host, err)
	}

	if len(facts) > 0 {
		return facts, nil
	}

	err = p.conn.BulkWalk(oidDot1dTpFdbPort, func(pdu gosnmp.SnmpPDU) error {
		parts := strings.Split(pdu.Name, ".")
		if len(parts) < 6 {
			return nil
		}

		mac := macFromOIDParts(parts[len(parts)-6:])
		if mac == "" {
			return nil
		}

		bridgePort := int(pduInt64(pdu))
		if bridgePort <= 0 {
			return nil
		}

		facts = append(facts, &models.Fact{
			CollectedAt: p.now,
			Device:      p.host,
			Ifname:      resolvePort(bridgePort),
			MACAddr:     mac,
			Protocol:    models.ProtocolMAC,
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk dot1d FDB on %s: %w", p.host, err)
	}

	return facts, nil
}

func (p *targetPoll) portName(portNames map[int]string, ifIndex int) string {
	if name, ok := portNames[ifIndex]; ok && name != "" {
		return name
	}

	return fmt.Sprintf("if%d", ifIndex)
}

// splitIndexedOID splits a columnar OID into its column prefix and the
// trailing integer index.
func splitIndexedOID(oid string) (prefix string, index int, ok bool) {
	parts := strings.Split(oid, ".")
	if len(parts) < 2 {
		return "", 0, false
	}

	index, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", 0, false
	}

	prefix = strings.Join(parts[:len(parts)-1], ".")
	if !strings.HasPrefix(prefix, ".") {
		prefix = "." + prefix
	}

	return prefix, index, true
}

func pduString(pdu gosnmp.SnmpPDU) string {
	if raw, ok := pdu.Value.([]byte); ok {
		return strings.TrimSpace(string(raw))
	}

	if s, ok := pdu.Value.(string); ok {
		return strings.TrimSpace(s)
	}

	return ""
}

func pduInt64(pdu gosnmp.SnmpPDU) int64 {
	switch v := pdu.Value.(type) {
	case int:
		return int64(v)
	case uint:
		return int64(v)
	case uint32:
		return int64(v)
	case uint64:
		return int64(v) //nolint:gosec // SNMP counters fit
	case int64:
		return v
	default:
		return 0
	}
}

func ifStatusString(status int64) string {
	switch status {
	case 1:
		return "up"
	case 2:
		return "down"
	case 3:
		return "testing"
	default:
		return ""
	}
}

// formatMACAddress formats a 6-byte physical address. Anything else,
// including the empty physaddress some virtual interfaces report, comes
// back empty.
func formatMACAddress(mac []byte) string {
	if len(mac) != 6 {
		return ""
	}

	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])
}

// formatLLDPID renders an LLDP identifier, which is a raw MAC for most
// chassis IDs and a printable string for most port IDs.
func formatLLDPID(pdu gosnmp.SnmpPDU) string {
	raw, ok := pdu.Value.([]byte)
	if !ok {
		return pduString(pdu)
	}

	if len(raw) == 6 {
		return formatMACAddress(raw)
	}

	return strings.TrimSpace(string(raw))
}

// decodeManAddr extracts an IPv4 management address from an LLDP
// lldpRemManAddr row. First byte is the address subtype, 1 for IPv4.
func decodeManAddr(pdu gosnmp.SnmpPDU) string {
	raw, ok := pdu.Value.([]byte)
	if !ok || len(raw) < 5 || raw[0] != 1 {
		return ""
	}

	return net.IPv4(raw[1], raw[2], raw[3], raw[4]).String()
}

// decodeCDPAddress extracts an IPv4 address from a cdpCacheAddress
// value, which carries the four address bytes at the tail.
func decodeCDPAddress(pdu gosnmp.SnmpPDU) string {
	raw, ok := pdu.Value.([]byte)
	if !ok || len(raw) < 4 {
		return ""
	}

	tail := raw[len(raw)-4:]

	return net.IPv4(tail[0], tail[1], tail[2], tail[3]).String()
}

// macFromOIDParts converts six decimal OID sub-identifiers into a MAC.
func macFromOIDParts(parts []string) string {
	if len(parts) != 6 {
		return ""
	}

	mac := make([]byte, 6)

	for i, part := range parts {
		b, err := strconv.Atoi(part)
		if err != nil || b < 0 || b > 255 {
			return ""
		}

		mac[i] = byte(b)
	}

	return formatMACAddress(mac)
}

func marshalPayload(v interface{}) json.RawMessage {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	return payload
}
