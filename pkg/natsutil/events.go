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

// Package natsutil carries topology facts and link events over NATS
// JetStream as CloudEvents: collectors publish fact batches to
// netweave.facts.<protocol>, the core publishes link changes to
// netweave.events.links.
package natsutil

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

const (
	// DefaultStream is the JetStream stream holding all netweave subjects.
	DefaultStream = "NETWEAVE"

	// FactSubjectPrefix is completed with the fact protocol, one subject
	// per protocol so consumers can filter.
	FactSubjectPrefix = "netweave.facts."

	// FactSubjectWildcard matches every fact subject.
	FactSubjectWildcard = "netweave.facts.>"

	// InterfaceSubject carries interface attribute batches.
	InterfaceSubject = "netweave.interfaces"

	// LinkEventSubject carries link created/confirmed events.
	LinkEventSubject = "netweave.events.links"

	cloudEventSpecVersion = "1.0"
	cloudEventContentType = "application/json"

	eventTypeFactBatch      = "com.carverauto.netweave.facts.batch"
	eventTypeInterfaceBatch = "com.carverauto.netweave.interfaces.batch"
	eventTypeLink           = "com.carverauto.netweave.link"
)

// Connect opens a NATS connection for the given config, with mTLS when
// certificates are configured and connection state logged through log.
func Connect(cfg *models.NATSConfig, log logger.Logger, extraOpts ...nats.Option) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}

	if cfg.TLS != nil {
		tlsConf, err := TLSConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to build NATS TLS config: %w", err)
		}

		opts = append(opts, nats.Secure(tlsConf))
	}

	opts = append(opts, extraOpts...)

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return nc, nil
}

// EnsureStream creates a JetStream context and provisions the netweave
// stream if it does not exist yet.
func EnsureStream(ctx context.Context, nc *nats.Conn, streamName string) (jetstream.JetStream, error) {
	if streamName == "" {
		streamName = DefaultStream
	}

	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if _, err := js.Stream(ctx, streamName); err != nil {
		_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{FactSubjectWildcard, InterfaceSubject, LinkEventSubject},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create or get stream %s: %w", streamName, err)
		}
	}

	return js, nil
}

// EventPublisher publishes netweave CloudEvents to JetStream. It
// satisfies the engine's event sink contract, so the core can register
// it next to the websocket hub.
type EventPublisher struct {
	js     jetstream.JetStream
	source string
	logger logger.Logger
}

// NewEventPublisher creates a publisher. Source names the producing
// component in the CloudEvent envelope, e.g. "netweave/core".
func NewEventPublisher(js jetstream.JetStream, source string, log logger.Logger) *EventPublisher {
	return &EventPublisher{
		js:     js,
		source: source,
		logger: log,
	}
}

// PublishLinkEvent publishes one link created/confirmed event.
func (p *EventPublisher) PublishLinkEvent(ctx context.Context, event *models.LinkEvent) error {
	envelope := newCloudEvent(p.source, eventTypeLink, LinkEventSubject, event)
	envelope.Time = &event.Timestamp

	return p.publish(ctx, envelope)
}

// PublishFacts publishes a batch of facts under the protocol's subject.
// Every fact in the batch must share the protocol.
func (p *EventPublisher) PublishFacts(ctx context.Context, protocol models.FactProtocol, facts []*models.Fact) error {
	if len(facts) == 0 {
		return nil
	}

	envelope := newCloudEvent(p.source, eventTypeFactBatch, FactSubject(protocol), facts)
	envelope.Time = &facts[0].CollectedAt

	return p.publish(ctx, envelope)
}

// PublishInterfaces publishes a batch of interface attribute records.
func (p *EventPublisher) PublishInterfaces(ctx context.Context, ifaces []*models.NetInterface) error {
	if len(ifaces) == 0 {
		return nil
	}

	envelope := newCloudEvent(p.source, eventTypeInterfaceBatch, InterfaceSubject, ifaces)
	envelope.Time = &ifaces[0].LastSeen

	return p.publish(ctx, envelope)
}

// FactSubject returns the JetStream subject for one fact protocol.
func FactSubject(protocol models.FactProtocol) string {
	return FactSubjectPrefix + string(protocol)
}

func (p *EventPublisher) publish(ctx context.Context, event models.CloudEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	ack, err := p.js.Publish(ctx, event.Subject, payload)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", event.Subject).
		Uint64("seq", ack.Sequence).
		Msg("Published event")

	return nil
}

// newCloudEvent builds the envelope shared by fact batches and link
// events.
func newCloudEvent(source, eventType, subject string, data interface{}) models.CloudEvent {
	return models.CloudEvent{
		SpecVersion:     cloudEventSpecVersion,
		ID:              uuid.New().String(),
		Source:          source,
		Type:            eventType,
		DataContentType: cloudEventContentType,
		Subject:         subject,
		Data:            data,
	}
}
