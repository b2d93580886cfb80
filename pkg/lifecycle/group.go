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
	"errors"
	"fmt"
)

// Group composes services into one: Start runs them in order, Stop in
// reverse. A failed Start stops whatever already started before the
// error is returned, so a group never leaks half-running services.
type Group []Service

func (g Group) Start(ctx context.Context) error {
	for i, svc := range g {
		if err := svc.Start(ctx); err != nil {
			g.stopFrom(ctx, i-1)
			return fmt.Errorf("starting service %d: %w", i, err)
		}
	}

	return nil
}

func (g Group) Stop(ctx context.Context) error {
	return g.stopFrom(ctx, len(g)-1)
}

func (g Group) stopFrom(ctx context.Context, last int) error {
	var errs []error

	for i := last; i >= 0; i-- {
		if err := g[i].Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stopping service %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}
