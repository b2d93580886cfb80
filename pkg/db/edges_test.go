package db

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netweave/pkg/models"
)

func TestBuildEdgeArgs(t *testing.T) {
	lastSeen := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	edge := &models.Edge{
		ADevice:       "10.0.0.1",
		AIfname:       "Gi1/0/1",
		BDevice:       "10.0.0.2",
		BIfname:       "Gi1/0/24",
		Method:        models.MethodLLDP,
		Confidence:    1.0,
		LastSeen:      lastSeen,
		ConfirmStreak: 4,
		Evidence:      json.RawMessage(`{"protocol":"lldp"}`),
	}

	args, err := buildEdgeArgs(edge)
	require.NoError(t, err)
	require.Len(t, args, 10)

	assert.Equal(t, "10.0.0.1", args[0])
	assert.Equal(t, "lldp", args[4])
	assert.Equal(t, 1.0, args[5])
	// first_seen falls back to last_seen on a brand new edge
	assert.Equal(t, lastSeen, args[6])
	assert.Equal(t, lastSeen, args[7])
	assert.Equal(t, 4, args[8])
}

func TestBuildEdgeArgsDefaultsStreak(t *testing.T) {
	edge := &models.Edge{
		ADevice:    "10.1.1.5",
		AIfname:    "arp-inferred",
		BDevice:    "10.0.0.9",
		BIfname:    "Gi1/0/7",
		Method:     models.MethodMACARP,
		Confidence: 0.9,
		LastSeen:   time.Now(),
	}

	args, err := buildEdgeArgs(edge)
	require.NoError(t, err)
	assert.Equal(t, 1, args[8])
}

func TestBuildEdgeArgsRejectsInvalid(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name    string
		edge    *models.Edge
		wantErr error
	}{
		{
			name:    "nil edge",
			edge:    nil,
			wantErr: ErrEdgeNil,
		},
		{
			name: "missing endpoint",
			edge: &models.Edge{
				ADevice: "10.0.0.1", AIfname: "Gi1/0/1", BDevice: "10.0.0.2",
				Method: models.MethodCDP, Confidence: 1, LastSeen: now,
			},
			wantErr: ErrEdgeEndpointsMissing,
		},
		{
			name: "unknown method",
			edge: &models.Edge{
				ADevice: "a", AIfname: "i", BDevice: "b", BIfname: "j",
				Method: "traceroute", Confidence: 0.5, LastSeen: now,
			},
			wantErr: ErrEdgeMethodInvalid,
		},
		{
			name: "confidence above one",
			edge: &models.Edge{
				ADevice: "a", AIfname: "i", BDevice: "b", BIfname: "j",
				Method: models.MethodOSPF, Confidence: 1.01, LastSeen: now,
			},
			wantErr: ErrEdgeConfidenceRange,
		},
		{
			name: "negative confidence",
			edge: &models.Edge{
				ADevice: "a", AIfname: "i", BDevice: "b", BIfname: "j",
				Method: models.MethodOSPF, Confidence: -0.1, LastSeen: now,
			},
			wantErr: ErrEdgeConfidenceRange,
		},
		{
			name: "missing last_seen",
			edge: &models.Edge{
				ADevice: "a", AIfname: "i", BDevice: "b", BIfname: "j",
				Method: models.MethodBGP, Confidence: 0.7,
			},
			wantErr: ErrEdgeTimestampMissing,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildEdgeArgs(tc.edge)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestBuildEdgeQuery(t *testing.T) {
	query, args := buildEdgeQuery(models.EdgeFilter{})
	assert.Empty(t, args)
	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY a_device, a_ifname, b_device, b_ifname, method")

	query, args = buildEdgeQuery(models.EdgeFilter{
		Site:          "dc-west",
		Role:          "switch",
		MinConfidence: 0.8,
	})

	require.Len(t, args, 3)
	assert.Equal(t, 0.8, args[0])
	assert.Equal(t, "dc-west", args[1])
	assert.Equal(t, "switch", args[2])
	assert.Contains(t, query, "confidence >= $1")
	assert.Contains(t, query, "d.site = $2")
	assert.Contains(t, query, "d.role = $3")
}
