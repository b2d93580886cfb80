package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/netweave/pkg/models"
)

func ingestFact(device string, protocol models.FactProtocol, collectedAt time.Time) *models.Fact {
	return &models.Fact{
		Device:      device,
		Protocol:    protocol,
		CollectedAt: collectedAt,
		Payload:     json.RawMessage(`{}`),
	}
}

func TestIngestFactsAcceptsValidBatch(t *testing.T) {
	srv, mockDB := newTestServer(t)

	facts := []*models.Fact{
		ingestFact("core-sw-01", models.ProtocolLLDP, coreTime.Add(-time.Minute)),
		ingestFact("core-sw-02", models.ProtocolARP, coreTime.Add(-time.Second)),
	}

	mockDB.EXPECT().
		RecordFacts(gomock.Any(), facts).
		Return(2, nil)

	resp, err := srv.IngestFacts(context.Background(), facts)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Accepted)
	assert.Equal(t, 0, resp.Rejected)
	assert.Empty(t, resp.Errors)
}

func TestIngestFactsRejectsInvalidEntriesIndividually(t *testing.T) {
	srv, mockDB := newTestServer(t)

	valid := ingestFact("core-sw-01", models.ProtocolCDP, coreTime.Add(-time.Minute))
	facts := []*models.Fact{
		valid,
		nil,
		ingestFact("", models.ProtocolLLDP, coreTime),
		ingestFact("core-sw-02", models.FactProtocol("carrier-pigeon"), coreTime),
	}

	mockDB.EXPECT().
		RecordFacts(gomock.Any(), []*models.Fact{valid}).
		Return(1, nil)

	resp, err := srv.IngestFacts(context.Background(), facts)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Accepted)
	assert.Equal(t, 3, resp.Rejected)
	require.Len(t, resp.Errors, 3)
	assert.Contains(t, resp.Errors[0], "fact 1:")
	assert.Contains(t, resp.Errors[1], "fact 2:")
	assert.Contains(t, resp.Errors[2], "fact 3:")
}

func TestIngestFactsClampsFutureTimestamps(t *testing.T) {
	srv, mockDB := newTestServer(t)

	future := ingestFact("core-sw-01", models.ProtocolLLDP, coreTime.Add(time.Hour))

	var stored []*models.Fact

	mockDB.EXPECT().
		RecordFacts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, facts []*models.Fact) (int, error) {
			stored = facts
			return len(facts), nil
		})

	resp, err := srv.IngestFacts(context.Background(), []*models.Fact{future})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Accepted)

	require.Len(t, stored, 1)
	assert.Equal(t, coreTime, stored[0].CollectedAt)

	// The caller's fact is left alone.
	assert.Equal(t, coreTime.Add(time.Hour), future.CollectedAt)
}

func TestIngestFactsKeepsTimestampsWithinSkewTolerance(t *testing.T) {
	srv, mockDB := newTestServer(t)

	slightlyAhead := coreTime.Add(2 * time.Minute)
	fact := ingestFact("core-sw-01", models.ProtocolOSPF, slightlyAhead)

	var stored []*models.Fact

	mockDB.EXPECT().
		RecordFacts(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, facts []*models.Fact) (int, error) {
			stored = facts
			return len(facts), nil
		})

	_, err := srv.IngestFacts(context.Background(), []*models.Fact{fact})
	require.NoError(t, err)

	require.Len(t, stored, 1)
	assert.Equal(t, slightlyAhead, stored[0].CollectedAt)
}

func TestIngestFactsSurfacesStoreFailure(t *testing.T) {
	srv, mockDB := newTestServer(t)

	errStore := errors.New("write failed")

	mockDB.EXPECT().
		RecordFacts(gomock.Any(), gomock.Any()).
		Return(0, errStore)

	_, err := srv.IngestFacts(context.Background(), []*models.Fact{
		ingestFact("core-sw-01", models.ProtocolLLDP, coreTime),
	})
	assert.ErrorIs(t, err, errStore)
}

func TestIngestFactsEmptyBatch(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.IngestFacts(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Accepted)
	assert.Equal(t, 0, resp.Rejected)
}

func TestIngestFactsAllRejectedSkipsStore(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.IngestFacts(context.Background(), []*models.Fact{nil, nil})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Accepted)
	assert.Equal(t, 2, resp.Rejected)
}

func TestIngestInterfacesEnsuresDeviceBeforeUpsert(t *testing.T) {
	srv, mockDB := newTestServer(t)

	iface := &models.NetInterface{
		DeviceID:  "10.0.0.1",
		Ifname:    "Gi1/0/1",
		SpeedMbps: 1000,
		Duplex:    "full",
		LastSeen:  coreTime.Add(-time.Minute),
	}

	gomock.InOrder(
		mockDB.EXPECT().
			EnsureDevice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, device *models.Device) error {
				assert.Equal(t, "10.0.0.1", device.DeviceID)
				return nil
			}),
		mockDB.EXPECT().
			UpsertInterface(gomock.Any(), iface).
			Return(nil),
	)

	resp, err := srv.IngestInterfaces(context.Background(), []*models.NetInterface{iface})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Accepted)
	assert.Equal(t, 0, resp.Rejected)
}

func TestIngestInterfacesStampsMissingLastSeen(t *testing.T) {
	srv, mockDB := newTestServer(t)

	var stored *models.NetInterface

	mockDB.EXPECT().EnsureDevice(gomock.Any(), gomock.Any()).Return(nil)
	mockDB.EXPECT().
		UpsertInterface(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, iface *models.NetInterface) error {
			stored = iface
			return nil
		})

	unstamped := &models.NetInterface{DeviceID: "10.0.0.1", Ifname: "eth0"}

	_, err := srv.IngestInterfaces(context.Background(), []*models.NetInterface{unstamped})
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, coreTime, stored.LastSeen)

	// The caller's row is left alone.
	assert.True(t, unstamped.LastSeen.IsZero())
}

func TestIngestInterfacesRejectsInvalidRowsIndividually(t *testing.T) {
	srv, mockDB := newTestServer(t)

	mockDB.EXPECT().EnsureDevice(gomock.Any(), gomock.Any()).Return(nil)
	mockDB.EXPECT().UpsertInterface(gomock.Any(), gomock.Any()).Return(nil)

	resp, err := srv.IngestInterfaces(context.Background(), []*models.NetInterface{
		nil,
		{DeviceID: "", Ifname: "eth0"},
		{DeviceID: "10.0.0.1", Ifname: ""},
		{DeviceID: "10.0.0.1", Ifname: "eth0", LastSeen: coreTime},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Accepted)
	assert.Equal(t, 3, resp.Rejected)
	require.Len(t, resp.Errors, 3)
}

func TestIngestInterfacesSurfacesStoreFailure(t *testing.T) {
	srv, mockDB := newTestServer(t)

	errStore := errors.New("write failed")

	mockDB.EXPECT().EnsureDevice(gomock.Any(), gomock.Any()).Return(nil)
	mockDB.EXPECT().UpsertInterface(gomock.Any(), gomock.Any()).Return(errStore)

	_, err := srv.IngestInterfaces(context.Background(), []*models.NetInterface{
		{DeviceID: "10.0.0.1", Ifname: "eth0", LastSeen: coreTime},
	})
	assert.ErrorIs(t, err, errStore)
}
