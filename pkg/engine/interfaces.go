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

package engine

//go:generate mockgen -destination=mock_engine.go -package=engine github.com/carverauto/netweave/pkg/engine EventSink

import (
	"context"

	"github.com/carverauto/netweave/pkg/models"
)

// EventSink receives link events produced by compute passes. Publishing
// is best-effort: a failed publish is logged and never fails the pass.
type EventSink interface {
	PublishLinkEvent(ctx context.Context, event *models.LinkEvent) error
}
