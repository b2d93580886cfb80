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

package natsutil

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

const (
	ingestConsumerName = "netweave-core-ingest"

	// ingestTimeout bounds one batch handoff to the ingest path.
	ingestTimeout = 30 * time.Second
)

// Ingestor is the ingest surface the consumer feeds. The core's Service
// satisfies it, so JetStream delivery lands on the same path as the
// POST /api/facts and POST /api/interfaces handlers.
type Ingestor interface {
	IngestFacts(ctx context.Context, facts []*models.Fact) (*models.FactIngestResponse, error)
	IngestInterfaces(ctx context.Context, ifaces []*models.NetInterface) (*models.InterfaceIngestResponse, error)
}

// eventEnvelope is the part of the CloudEvent the consumer needs: the
// payload stays raw until the envelope is accepted.
type eventEnvelope struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// IngestConsumer drains collector fact and interface batches from
// JetStream into the ingest path. It satisfies the lifecycle Service
// contract.
type IngestConsumer struct {
	js       jetstream.JetStream
	stream   string
	ingestor Ingestor
	logger   logger.Logger

	consumeCtx jetstream.ConsumeContext
}

// NewIngestConsumer creates a consumer over an established JetStream
// context. Stream defaults to the netweave stream when empty.
func NewIngestConsumer(js jetstream.JetStream, stream string, ingestor Ingestor, log logger.Logger) *IngestConsumer {
	if stream == "" {
		stream = DefaultStream
	}

	return &IngestConsumer{
		js:       js,
		stream:   stream,
		ingestor: ingestor,
		logger:   log,
	}
}

// Start provisions the durable consumer and begins draining the fact and
// interface subjects in the background.
func (c *IngestConsumer) Start(ctx context.Context) error {
	consumer, err := c.js.CreateOrUpdateConsumer(ctx, c.stream, jetstream.ConsumerConfig{
		Durable:        ingestConsumerName,
		FilterSubjects: []string{FactSubjectWildcard, InterfaceSubject},
		AckPolicy:      jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create ingest consumer: %w", err)
	}

	consumeCtx, err := consumer.Consume(c.handleMessage)
	if err != nil {
		return fmt.Errorf("failed to start ingest consumption: %w", err)
	}

	c.consumeCtx = consumeCtx

	c.logger.Info().
		Str("stream", c.stream).
		Strs("subjects", []string{FactSubjectWildcard, InterfaceSubject}).
		Msg("Ingest consumer started")

	return nil
}

// Stop ends message delivery. In-flight handlers finish first.
func (c *IngestConsumer) Stop(_ context.Context) error {
	if c.consumeCtx != nil {
		c.consumeCtx.Stop()
	}

	return nil
}

// handleMessage ingests one batch. Malformed envelopes are terminated
// (redelivery cannot fix them); store failures are NAKed so JetStream
// redelivers once the store recovers.
func (c *IngestConsumer) handleMessage(msg jetstream.Msg) {
	var envelope eventEnvelope

	if err := json.Unmarshal(msg.Data(), &envelope); err != nil {
		c.logger.Warn().Err(err).
			Str("subject", msg.Subject()).
			Msg("Discarding malformed event envelope")

		_ = msg.Term()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	var (
		rejected int
		err      error
	)

	switch envelope.Type {
	case eventTypeFactBatch:
		var facts []*models.Fact

		if err := json.Unmarshal(envelope.Data, &facts); err != nil {
			c.terminate(msg, err, "Discarding malformed fact batch")
			return
		}

		var resp *models.FactIngestResponse

		resp, err = c.ingestor.IngestFacts(ctx, facts)
		if resp != nil {
			rejected = resp.Rejected
		}
	case eventTypeInterfaceBatch:
		var ifaces []*models.NetInterface

		if err := json.Unmarshal(envelope.Data, &ifaces); err != nil {
			c.terminate(msg, err, "Discarding malformed interface batch")
			return
		}

		var resp *models.InterfaceIngestResponse

		resp, err = c.ingestor.IngestInterfaces(ctx, ifaces)
		if resp != nil {
			rejected = resp.Rejected
		}
	default:
		c.logger.Warn().
			Str("subject", msg.Subject()).
			Str("type", envelope.Type).
			Msg("Discarding event of unexpected type")

		_ = msg.Term()

		return
	}

	if err != nil {
		c.logger.Error().Err(err).
			Str("subject", msg.Subject()).
			Msg("Batch ingest failed; requesting redelivery")

		_ = msg.Nak()

		return
	}

	if rejected > 0 {
		c.logger.Warn().
			Str("subject", msg.Subject()).
			Int("rejected", rejected).
			Msg("Batch partially rejected")
	}

	_ = msg.Ack()
}

func (c *IngestConsumer) terminate(msg jetstream.Msg, err error, reason string) {
	c.logger.Warn().Err(err).
		Str("subject", msg.Subject()).
		Msg(reason)

	_ = msg.Term()
}
