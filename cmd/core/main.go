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

// @title Netweave API
// @version 1.0
// @description API for the netweave network topology service

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/carverauto/netweave/pkg/config"
	"github.com/carverauto/netweave/pkg/core"
	"github.com/carverauto/netweave/pkg/core/api"
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
	configPath := flag.String("config", "/etc/netweave/core.json", "Path to core config file")
	flag.Parse()

	ctx := context.Background()

	var cfg models.CoreServiceConfig

	if err := config.NewConfig(nil).LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logInstance, err := lifecycle.CreateComponentLogger(ctx, "core", cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() {
		_ = lifecycle.ShutdownLogger()
	}()

	srv, err := core.NewServer(ctx, &cfg, logInstance)
	if err != nil {
		return fmt.Errorf("failed to create core server: %w", err)
	}

	apiServer := api.NewAPIServer(cfg.CORS,
		api.WithService(srv),
		api.WithAPIKey(cfg.APIKey),
		api.WithListenAddr(cfg.ListenAddr),
		api.WithLogger(logInstance))

	srv.AddLinkSink(apiServer.Hub())

	services := lifecycle.Group{srv, apiServer}

	if cfg.NATS != nil {
		nc, err := natsutil.Connect(cfg.NATS, logInstance)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer nc.Close()

		js, err := natsutil.EnsureStream(ctx, nc, cfg.NATS.Stream)
		if err != nil {
			return fmt.Errorf("failed to provision stream: %w", err)
		}

		srv.AddLinkSink(natsutil.NewEventPublisher(js, "netweave/core", logInstance))
		services = append(services, natsutil.NewIngestConsumer(js, cfg.NATS.Stream, srv, logInstance))
	}

	return lifecycle.Run(ctx, services, logInstance, lifecycle.Options{})
}
