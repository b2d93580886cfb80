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

package lifecycle

import (
	"context"

	"github.com/carverauto/netweave/pkg/logger"
)

// CreateLogger creates a logger instance that can be injected into
// services. A nil config gets environment defaults.
func CreateLogger(ctx context.Context, config *logger.Config) (logger.Logger, error) {
	return logger.New(ctx, config)
}

// CreateComponentLogger creates a logger tagged for a specific component.
func CreateComponentLogger(ctx context.Context, component string, config *logger.Config) (logger.Logger, error) {
	return logger.NewComponent(ctx, config, component)
}

// ShutdownLogger flushes any pending log export.
func ShutdownLogger() error {
	return logger.Shutdown()
}
