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
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

func testConfig() *models.CollectorConfig {
	return &models.CollectorConfig{
		Targets: []models.SNMPTarget{{Host: "10.0.0.1"}},
		Sink:    models.SinkConfig{Mode: models.SinkModeHTTP, CoreURL: "http://core:8090"},
	}
}

func newTestCollector(t *testing.T, walks map[string][]gosnmp.SnmpPDU) (*Collector, *MockSender) {
	t.Helper()

	ctrl := gomock.NewController(t)
	sender := NewMockSender(ctrl)

	c := New(testConfig(), sender, logger.NewTestLogger())
	c.nowFn = func() time.Time { return pollTime }
	c.connect = func(models.SNMPTarget) (snmpConn, error) {
		return &fakeConn{walks: walks}, nil
	}

	return c, sender
}

func TestPollRoundDeliversPerProtocolBatches(t *testing.T) {
	walks := map[string][]gosnmp.SnmpPDU{
		oidIfTable: {
			octets(oidIfDescr+".1", "Gi1/0/1"),
		},
		oidLldpRemTable: {
			octets(oidLldpRemTable+".7.0.1.1", "Gi0/2"),
			octets(oidLldpRemTable+".9.0.1.1", "sw2"),
		},
		oidIPNetToMediaPhys: {
			rawOctets(oidIPNetToMediaPhys+".1.10.0.0.5", []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}),
		},
		oidDot1qTpFdbPort: {
			integer(oidDot1qTpFdbPort+".100.0.17.34.51.68.85", 1),
		},
	}

	c, sender := newTestCollector(t, walks)

	sender.EXPECT().
		SendFacts(gomock.Any(), models.ProtocolLLDP, gomock.Len(1)).
		Return(nil)
	sender.EXPECT().
		SendFacts(gomock.Any(), models.ProtocolARP, gomock.Len(1)).
		Return(nil)
	sender.EXPECT().
		SendFacts(gomock.Any(), models.ProtocolMAC, gomock.Len(1)).
		Return(nil)
	sender.EXPECT().
		SendInterfaces(gomock.Any(), gomock.Len(1)).
		Return(nil)

	c.pollRound(context.Background())
}

func TestPollTargetSkipsDeliveryOnConnectFailure(t *testing.T) {
	c, sender := newTestCollector(t, nil)
	c.connect = func(models.SNMPTarget) (snmpConn, error) {
		return nil, errors.New("timeout")
	}

	// No sender expectations: nothing may be delivered.
	_ = sender

	c.pollRound(context.Background())
}

func TestDeliverContinuesAfterSendFailure(t *testing.T) {
	c, sender := newTestCollector(t, nil)

	facts := []*models.Fact{
		{Device: "10.0.0.1", Protocol: models.ProtocolLLDP, CollectedAt: pollTime},
		{Device: "10.0.0.1", Protocol: models.ProtocolARP, CollectedAt: pollTime},
	}
	ifaces := []*models.NetInterface{
		{DeviceID: "10.0.0.1", Ifname: "Gi1/0/1", LastSeen: pollTime},
	}

	sender.EXPECT().
		SendFacts(gomock.Any(), models.ProtocolLLDP, gomock.Len(1)).
		Return(errors.New("core unavailable"))
	sender.EXPECT().
		SendFacts(gomock.Any(), models.ProtocolARP, gomock.Len(1)).
		Return(nil)
	sender.EXPECT().
		SendInterfaces(gomock.Any(), gomock.Len(1)).
		Return(nil)

	c.deliver(context.Background(), "10.0.0.1", facts, ifaces)
}

func TestStartStop(t *testing.T) {
	c, sender := newTestCollector(t, map[string][]gosnmp.SnmpPDU{})

	sender.EXPECT().
		SendInterfaces(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	assert.NoError(t, c.Start(context.Background()))
	assert.NoError(t, c.Stop(context.Background()))
}
