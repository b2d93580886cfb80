package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/netweave/pkg/db"
	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
	"github.com/carverauto/netweave/pkg/registry"
)

func TestBaseConfidence(t *testing.T) {
	assert.Equal(t, 1.00, baseConfidence(models.MethodLLDP))
	assert.Equal(t, 1.00, baseConfidence(models.MethodCDP))
	assert.Equal(t, 0.90, baseConfidence(models.MethodMACARP))
	assert.Equal(t, 0.70, baseConfidence(models.MethodOSPF))
	assert.Equal(t, 0.70, baseConfidence(models.MethodBGP))
	assert.Equal(t, 0.60, baseConfidence(models.MethodInferredFlow))
	assert.Equal(t, 0.0, baseConfidence(models.Method("bogus")))
}

func TestIfnamePrefix(t *testing.T) {
	tests := []struct {
		ifname string
		want   string
	}{
		{"Gi1/0/1", "Gi"},
		{"TenGigabitEthernet1/1", "TenGigabitEthernet"},
		{"eth0", "eth"},
		{"arp-inferred", "arp"},
		{"", ""},
		{"0/1", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ifnamePrefix(tt.ifname), "prefix of %q", tt.ifname)
	}
}

func TestIfnamesCorrelate(t *testing.T) {
	assert.True(t, ifnamesCorrelate("Gi1/0/1", "Gi1/0/24"))
	assert.True(t, ifnamesCorrelate("gi1/0/1", "Gi1/0/24"))
	assert.True(t, ifnamesCorrelate("eth0", "eth1"))
	assert.False(t, ifnamesCorrelate("Gi1/0/1", "Te1/1"))
	assert.False(t, ifnamesCorrelate("arp-inferred", "Gi1/0/1"))
	assert.False(t, ifnamesCorrelate("", ""))
	assert.False(t, ifnamesCorrelate("eth0", ""))
}

func newScoringEngine(t *testing.T) (*Engine, *registry.MockManager) {
	t.Helper()

	ctrl := gomock.NewController(t)
	reg := registry.NewMockManager(ctrl)

	eng := NewEngine(db.NewMockService(ctrl), reg, models.EngineConfig{}, nil, logger.NewTestLogger())

	return eng, reg
}

func TestScoreSpeedDuplexBonus(t *testing.T) {
	eng, reg := newScoringEngine(t)

	reg.EXPECT().GetInterface(gomock.Any(), "h-1", "eth0").
		Return(&models.NetInterface{SpeedMbps: 1000, Duplex: "full"}, nil)
	reg.EXPECT().GetInterface(gomock.Any(), "sw-a", "Gi1/0/7").
		Return(&models.NetInterface{SpeedMbps: 1000, Duplex: "full"}, nil)

	c := &claim{
		aDevice: "h-1", aIfname: "eth0",
		bDevice: "sw-a", bIfname: "Gi1/0/7",
		method: models.MethodMACARP, base: baseConfidenceMACARP,
	}

	assert.InDelta(t, 0.93, eng.score(context.Background(), c, 1), 1e-9)
}

func TestScoreNoBonusForUnknownInterfaces(t *testing.T) {
	eng, reg := newScoringEngine(t)

	reg.EXPECT().GetInterface(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, db.ErrInterfaceNotFound).AnyTimes()

	c := &claim{
		aDevice: "h-1", aIfname: "eth0",
		bDevice: "sw-a", bIfname: "Gi1/0/7",
		method: models.MethodMACARP, base: baseConfidenceMACARP,
	}

	assert.InDelta(t, 0.90, eng.score(context.Background(), c, 1), 1e-9)
}

func TestScoreSpeedMismatchGetsNoBonus(t *testing.T) {
	eng, reg := newScoringEngine(t)

	reg.EXPECT().GetInterface(gomock.Any(), "h-1", "eth0").
		Return(&models.NetInterface{SpeedMbps: 1000, Duplex: "full"}, nil)
	reg.EXPECT().GetInterface(gomock.Any(), "sw-a", "Gi1/0/7").
		Return(&models.NetInterface{SpeedMbps: 100, Duplex: "full"}, nil)

	c := &claim{
		aDevice: "h-1", aIfname: "eth0",
		bDevice: "sw-a", bIfname: "Gi1/0/7",
		method: models.MethodMACARP, base: baseConfidenceMACARP,
	}

	assert.InDelta(t, 0.90, eng.score(context.Background(), c, 1), 1e-9)
}

func TestScoreConfirmationBonusNeedsThreePasses(t *testing.T) {
	eng, reg := newScoringEngine(t)
	reg.EXPECT().GetInterface(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, db.ErrInterfaceNotFound).AnyTimes()

	c := &claim{
		aDevice: "rtr-a", aIfname: "x1",
		bDevice: "rtr-b", bIfname: "y1",
		method: models.MethodOSPF, base: baseConfidenceRouting,
	}

	assert.InDelta(t, 0.70, eng.score(context.Background(), c, 2), 1e-9)
	assert.InDelta(t, 0.77, eng.score(context.Background(), c, 3), 1e-9)
	assert.InDelta(t, 0.77, eng.score(context.Background(), c, 9), 1e-9)
}

func TestScoreNeverExceedsOne(t *testing.T) {
	eng, reg := newScoringEngine(t)

	reg.EXPECT().GetInterface(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.NetInterface{SpeedMbps: 10000, Duplex: "full"}, nil).AnyTimes()

	// lldp base is already 1.0; every bonus applies and the cap holds.
	c := &claim{
		aDevice: "sw-a", aIfname: "Gi1/0/1",
		bDevice: "sw-b", bIfname: "Gi1/0/24",
		method: models.MethodLLDP, base: baseConfidenceNeighbor,
	}

	score := eng.score(context.Background(), c, 5)
	assert.Equal(t, 1.0, score)
}
