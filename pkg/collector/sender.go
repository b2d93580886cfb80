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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carverauto/netweave/pkg/models"
	"github.com/carverauto/netweave/pkg/natsutil"
)

const (
	httpSendTimeout = 30 * time.Second

	// errorBodyLimit bounds how much of an error response lands in logs.
	errorBodyLimit = 2048
)

// HTTPSender posts batches straight to the core API.
type HTTPSender struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPSender creates a sender for the core at cfg.CoreURL.
func NewHTTPSender(cfg *models.SinkConfig) *HTTPSender {
	return &HTTPSender{
		baseURL: strings.TrimRight(cfg.CoreURL, "/"),
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: httpSendTimeout},
	}
}

// SendFacts posts one protocol's batch to /api/facts.
func (s *HTTPSender) SendFacts(ctx context.Context, _ models.FactProtocol, facts []*models.Fact) error {
	return s.post(ctx, "/api/facts", facts)
}

// SendInterfaces posts interface attributes to /api/interfaces.
func (s *HTTPSender) SendInterfaces(ctx context.Context, ifaces []*models.NetInterface) error {
	return s.post(ctx, "/api/interfaces", ifaces)
}

func (s *HTTPSender) post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if s.apiKey != "" {
		req.Header.Set("X-API-Key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver batch to %s: %w", path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

		return fmt.Errorf("core rejected batch on %s: %s: %s",
			path, resp.Status, strings.TrimSpace(string(detail)))
	}

	return nil
}

// NATSSender publishes batches to JetStream through the shared event
// publisher.
type NATSSender struct {
	publisher *natsutil.EventPublisher
}

// NewNATSSender wraps an event publisher as a sink.
func NewNATSSender(publisher *natsutil.EventPublisher) *NATSSender {
	return &NATSSender{publisher: publisher}
}

func (s *NATSSender) SendFacts(ctx context.Context, protocol models.FactProtocol, facts []*models.Fact) error {
	return s.publisher.PublishFacts(ctx, protocol, facts)
}

func (s *NATSSender) SendInterfaces(ctx context.Context, ifaces []*models.NetInterface) error {
	return s.publisher.PublishInterfaces(ctx, ifaces)
}
