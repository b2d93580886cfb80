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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/carverauto/netweave/pkg/collector"
	"github.com/carverauto/netweave/pkg/config"
	"github.com/carverauto/netweave/pkg/lifecycle"
	"github.com/carverauto/netweave/pkg/models"
	"github.com/carverauto/netweave/pkg/natsutil"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/netweave/collector.json", "Path to collector config file")
	flag.Parse()

	ctx := context.Background()

	var cfg models.CollectorConfig

	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logInstance, err := lifecycle.CreateComponentLogger(ctx, "collector", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() {
		_ = lifecycle.ShutdownLogger()
	}()

	var sender collector.Sender

	switch cfg.Sink.Mode {
	case models.SinkModeHTTP:
		sender = collector.NewHTTPSender(&cfg.Sink)
	case models.SinkModeNATS:
		nc, err := natsutil.Connect(cfg.Sink.NATS, logInstance)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer nc.Close()

		js, err := natsutil.EnsureStream(ctx, nc, cfg.Sink.NATS.Stream)
		if err != nil {
			return fmt.Errorf("failed to provision stream: %w", err)
		}

		sender = collector.NewNATSSender(natsutil.NewEventPublisher(js, "netweave/collector", logInstance))
	default:
		return models.ErrUnknownSinkMode
	}

	return lifecycle.Run(ctx, collector.New(&cfg, sender, logInstance), logInstance, lifecycle.Options{})
}
