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

package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/netweave/pkg/logger"
	"github.com/carverauto/netweave/pkg/models"
)

const defaultPostgresPort = 5432

// NewPool dials the configured Postgres cluster and returns a pgx pool for
// the topology tables.
func NewPool(ctx context.Context, cfg *models.PostgresDatabase, log logger.Logger) (*pgxpool.Pool, error) {
	if cfg == nil {
		return nil, nil
	}

	pg := *cfg
	if pg.Port == 0 {
		pg.Port = defaultPostgresPort
	}

	connURL := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", pg.Host, pg.Port),
		Path:   "/" + pg.Database,
	}

	if pg.Username != "" {
		if pg.Password != "" {
			connURL.User = url.UserPassword(pg.Username, pg.Password)
		} else {
			connURL.User = url.User(pg.Username)
		}
	}

	query := connURL.Query()

	sslMode := pg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	query.Set("sslmode", sslMode)

	if pg.ApplicationName != "" {
		query.Set("application_name", pg.ApplicationName)
	}

	connURL.RawQuery = query.Encode()

	poolConfig, err := pgxpool.ParseConfig(connURL.String())
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to parse connection string: %w", err)
	}

	if pg.MaxConnections > 0 {
		poolConfig.MaxConns = pg.MaxConnections
	}

	if pg.MinConnections > 0 {
		poolConfig.MinConns = pg.MinConnections
	}

	if pg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(pg.MaxConnLifetime)
	}

	if pg.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = time.Duration(pg.HealthCheckPeriod)
	}

	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = make(map[string]string)
	}

	for k, v := range pg.ExtraRuntimeParams {
		if k == "" {
			continue
		}

		poolConfig.ConnConfig.RuntimeParams[k] = v
	}

	if pg.StatementTimeout > 0 {
		timeout := time.Duration(pg.StatementTimeout) / time.Millisecond
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", timeout)
	}

	if tlsConfig, err := buildPoolTLSConfig(&pg); err != nil {
		return nil, err
	} else if tlsConfig != nil {
		poolConfig.ConnConfig.TLSConfig = tlsConfig
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to initialize pool: %w", err)
	}

	if log != nil {
		log.Info().
			Str("host", pg.Host).
			Int("port", pg.Port).
			Int32("max_conns", poolConfig.MaxConns).
			Msg("connected to Postgres")
	}

	return pool, nil
}

func buildPoolTLSConfig(cfg *models.PostgresDatabase) (*tls.Config, error) {
	if cfg == nil || cfg.TLS == nil {
		return nil, nil
	}

	resolve := func(path string) string {
		if path == "" {
			return path
		}

		if filepath.IsAbs(path) || cfg.CertDir == "" {
			return path
		}

		return filepath.Join(cfg.CertDir, path)
	}

	certFile := resolve(cfg.TLS.CertFile)
	keyFile := resolve(cfg.TLS.KeyFile)
	caFile := resolve(cfg.TLS.CAFile)

	if certFile == "" || keyFile == "" || caFile == "" {
		return nil, fmt.Errorf("postgres tls: cert_file, key_file, and ca_file are required")
	}

	clientCert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("postgres tls: failed to load client keypair: %w", err)
	}

	caBytes, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("postgres tls: failed to read CA file: %w", err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caBytes) {
		return nil, fmt.Errorf("postgres tls: unable to append CA certificate")
	}

	return &tls.Config{
		Certificates: []tls.Certificate{clientCert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS12,
		ServerName:   cfg.Host,
	}, nil
}
