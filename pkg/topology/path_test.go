package topology

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/netweave/pkg/models"
)

func chainSnapshot() *Snapshot {
	return BuildSnapshot([]*models.Edge{
		testEdge("dev-a", "eth0", "dev-b", "eth1", models.MethodLLDP, 1.0, baseTime),
		testEdge("dev-b", "eth2", "dev-c", "eth0", models.MethodLLDP, 1.0, baseTime),
		testEdge("dev-d", "eth0", "dev-e", "eth0", models.MethodLLDP, 1.0, baseTime),
	}, baseTime)
}

func TestFindPathAcrossChain(t *testing.T) {
	snap := chainSnapshot()

	result := snap.FindPath("dev-a", "dev-c", PathOptions{})
	require.True(t, result.Found)
	require.Len(t, result.Hops, 2)

	assert.Equal(t, 2, result.TotalHops)

	first := result.Hops[0]
	assert.Equal(t, "dev-a", first.Device)
	assert.Equal(t, "eth0", first.Ifname)
	assert.Equal(t, "dev-b", first.PeerDevice)
	assert.Equal(t, "eth1", first.PeerIfname)
	assert.Equal(t, models.MethodLLDP, first.Method)

	second := result.Hops[1]
	assert.Equal(t, "dev-b", second.Device)
	assert.Equal(t, "eth2", second.Ifname)
	assert.Equal(t, "dev-c", second.PeerDevice)
	assert.Equal(t, "eth0", second.PeerIfname)
}

func TestFindPathUnreachableTarget(t *testing.T) {
	snap := chainSnapshot()

	result := snap.FindPath("dev-a", "dev-e", PathOptions{})
	assert.False(t, result.Found)
	assert.Empty(t, result.Hops)
}

func TestFindPathUnknownDevice(t *testing.T) {
	snap := chainSnapshot()

	result := snap.FindPath("dev-a", "no-such-device", PathOptions{})
	assert.False(t, result.Found)
}

func TestFindPathSameSourceAndTarget(t *testing.T) {
	snap := chainSnapshot()

	result := snap.FindPath("dev-b", "dev-b", PathOptions{})
	require.True(t, result.Found)
	assert.Empty(t, result.Hops)
	assert.Zero(t, result.TotalHops)
}

func TestFindPathHonorsMaxHops(t *testing.T) {
	snap := chainSnapshot()

	assert.False(t, snap.FindPath("dev-a", "dev-c", PathOptions{MaxHops: 1}).Found)
	assert.True(t, snap.FindPath("dev-a", "dev-c", PathOptions{MaxHops: 2}).Found)
}

func TestFindPathCapsHopBudget(t *testing.T) {
	edges := make([]*models.Edge, 0, 30)
	for i := 0; i < 30; i++ {
		edges = append(edges, testEdge(
			fmt.Sprintf("hop-%02d", i), "eth1",
			fmt.Sprintf("hop-%02d", i+1), "eth0",
			models.MethodLLDP, 1.0, baseTime))
	}
	snap := BuildSnapshot(edges, baseTime)

	// Requests beyond the hop ceiling are clamped back down to it.
	assert.True(t, snap.FindPath("hop-00", "hop-20", PathOptions{MaxHops: 500}).Found)
	assert.False(t, snap.FindPath("hop-00", "hop-21", PathOptions{MaxHops: 500}).Found)
	assert.False(t, snap.FindPath("hop-00", "hop-30", PathOptions{}).Found)
}

func TestFindPathSkipsRoutingAdjacenciesByDefault(t *testing.T) {
	snap := BuildSnapshot([]*models.Edge{
		testEdge("rtr-a", "Te1/1", "rtr-b", "Te1/2", models.MethodOSPF, 0.7, baseTime),
	}, baseTime)

	assert.False(t, snap.FindPath("rtr-a", "rtr-b", PathOptions{}).Found)

	result := snap.FindPath("rtr-a", "rtr-b", PathOptions{IncludeL3: true})
	require.True(t, result.Found)
	require.Len(t, result.Hops, 1)
	assert.Equal(t, models.MethodOSPF, result.Hops[0].Method)
}

func TestFindPathPrefersStrongerBranch(t *testing.T) {
	// Diamond: both branches reach dev-c in two hops, but the lldp
	// branch sorts ahead of the mac_arp one, so BFS discovers it first.
	snap := BuildSnapshot([]*models.Edge{
		testEdge("dev-a", "eth1", "mid-lldp", "eth0", models.MethodLLDP, 1.0, baseTime),
		testEdge("mid-lldp", "eth1", "dev-c", "eth0", models.MethodLLDP, 1.0, baseTime),
		testEdge("dev-a", "eth2", "mid-arp", "eth0", models.MethodMACARP, 0.9, baseTime),
		testEdge("mid-arp", "eth1", "dev-c", "eth1", models.MethodMACARP, 0.9, baseTime),
	}, baseTime)

	for i := 0; i < 5; i++ {
		result := snap.FindPath("dev-a", "dev-c", PathOptions{})
		require.True(t, result.Found)
		require.Len(t, result.Hops, 2)
		assert.Equal(t, "mid-lldp", result.Hops[0].PeerDevice)
	}
}

func TestFindPathSurvivesCycles(t *testing.T) {
	snap := BuildSnapshot([]*models.Edge{
		testEdge("ring-a", "eth0", "ring-b", "eth0", models.MethodLLDP, 1.0, baseTime),
		testEdge("ring-b", "eth1", "ring-c", "eth0", models.MethodLLDP, 1.0, baseTime),
		testEdge("ring-c", "eth1", "ring-a", "eth1", models.MethodLLDP, 1.0, baseTime),
	}, baseTime)

	result := snap.FindPath("ring-a", "ring-c", PathOptions{})
	require.True(t, result.Found)
	assert.Len(t, result.Hops, 1)
}

func TestFindPathReportsCanonicalSelection(t *testing.T) {
	// Two claims for the same link identity: the mac_arp one is newer
	// but loses canonical selection, so the hop must carry the lldp
	// method and confidence.
	snap := BuildSnapshot([]*models.Edge{
		testEdge("dev-a", "eth0", "dev-b", "eth1", models.MethodLLDP, 1.0, baseTime),
		testEdge("dev-a", "eth0", "dev-b", "eth1", models.MethodMACARP, 0.9, baseTime.Add(time.Minute)),
	}, baseTime)

	result := snap.FindPath("dev-a", "dev-b", PathOptions{})
	require.True(t, result.Found)
	require.Len(t, result.Hops, 1)
	assert.Equal(t, models.MethodLLDP, result.Hops[0].Method)
	assert.Equal(t, 1.0, result.Hops[0].Confidence)
}
