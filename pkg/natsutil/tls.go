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
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carverauto/netweave/pkg/models"
)

// ErrCAParsingFailed is returned when the CA certificate cannot be parsed.
var ErrCAParsingFailed = errors.New("failed to parse CA certificate")

// TLSConfig builds a tls.Config for connecting to NATS with mTLS.
// Relative certificate paths resolve against the config's cert_dir.
func TLSConfig(cfg *models.NATSConfig) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(
		resolveCertPath(cfg.TLS.CertFile, cfg.CertDir),
		resolveCertPath(cfg.TLS.KeyFile, cfg.CertDir))
	if err != nil {
		return nil, fmt.Errorf("failed to load client certificate: %w", err)
	}

	tlsConf := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS13,
	}

	if cfg.TLS.CAFile != "" {
		caCert, err := os.ReadFile(resolveCertPath(cfg.TLS.CAFile, cfg.CertDir))
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}

		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(caCert) {
			return nil, ErrCAParsingFailed
		}

		tlsConf.RootCAs = caPool
	}

	return tlsConf, nil
}

func resolveCertPath(path, certDir string) string {
	if path == "" || filepath.IsAbs(path) || certDir == "" {
		return path
	}

	return filepath.Join(certDir, path)
}
