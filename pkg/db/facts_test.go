package db

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netweave/pkg/models"
)

func TestBuildFactArgs(t *testing.T) {
	collected := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	fact := &models.Fact{
		CollectedAt: collected,
		Device:      "10.0.0.1",
		Ifname:      "Gi1/0/1",
		PeerDevice:  "10.0.0.2",
		PeerIfname:  "Gi1/0/24",
		Protocol:    models.ProtocolLLDP,
		Payload:     json.RawMessage(`{"chassis_id":"aa:bb:cc:dd:ee:ff"}`),
	}

	args, err := buildFactArgs(fact)
	require.NoError(t, err)
	require.Len(t, args, 10)

	assert.Equal(t, collected, args[0])
	assert.Equal(t, "10.0.0.1", args[1])
	assert.Equal(t, "Gi1/0/1", args[2])
	assert.Equal(t, "10.0.0.2", args[3])
	assert.Equal(t, "lldp", args[8])
	assert.Equal(t, []byte(fact.Payload), args[9])
}

func TestBuildFactArgsNullsOptionalFields(t *testing.T) {
	fact := &models.Fact{
		CollectedAt: time.Now(),
		Device:      "  sw-edge-01  ",
		Protocol:    models.ProtocolMAC,
	}

	args, err := buildFactArgs(fact)
	require.NoError(t, err)

	assert.Equal(t, "sw-edge-01", args[1])
	assert.Nil(t, args[2])
	assert.Nil(t, args[3])
	assert.Nil(t, args[6])
	assert.Nil(t, args[7])
	assert.Nil(t, args[9])
}

func TestBuildFactArgsRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		fact    *models.Fact
		wantErr error
	}{
		{
			name:    "nil fact",
			fact:    nil,
			wantErr: ErrFactNil,
		},
		{
			name:    "missing device",
			fact:    &models.Fact{CollectedAt: time.Now(), Protocol: models.ProtocolARP},
			wantErr: ErrFactIdentifiersMissing,
		},
		{
			name:    "missing timestamp",
			fact:    &models.Fact{Device: "10.0.0.1", Protocol: models.ProtocolARP},
			wantErr: ErrFactIdentifiersMissing,
		},
		{
			name:    "bad protocol",
			fact:    &models.Fact{Device: "10.0.0.1", CollectedAt: time.Now(), Protocol: "snmp"},
			wantErr: ErrFactIdentifiersMissing,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildFactArgs(tc.fact)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestBuildFactQuery(t *testing.T) {
	query, args := buildFactQuery(models.FactFilter{})
	assert.Empty(t, args)
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY collected_at DESC, id DESC")

	since := time.Date(2025, time.June, 10, 11, 0, 0, 0, time.UTC)
	query, args = buildFactQuery(models.FactFilter{
		Device:   "10.0.0.1",
		Protocol: models.ProtocolARP,
		Since:    since,
		Limit:    50,
	})

	require.Len(t, args, 4)
	assert.Equal(t, "10.0.0.1", args[0])
	assert.Equal(t, "arp", args[1])
	assert.Equal(t, since, args[2])
	assert.Equal(t, 50, args[3])
	assert.Contains(t, query, "device = $1")
	assert.Contains(t, query, "protocol = $2")
	assert.Contains(t, query, "collected_at >= $3")
	assert.Contains(t, query, "LIMIT $4")
	assert.Equal(t, 1, strings.Count(query, "WHERE"))
}
