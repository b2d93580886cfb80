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

import "errors"

var (

	// Core database errors.

	ErrFailedOpenDB   = errors.New("failed to open database")
	ErrFailedToQuery  = errors.New("failed to query")
	ErrFailedToScan   = errors.New("failed to scan")
	ErrFailedToInsert = errors.New("failed to insert")

	// Not-found errors. Callers distinguish these from transport failures.

	ErrDeviceNotFound    = errors.New("device not found")
	ErrEdgeNotFound      = errors.New("edge not found")
	ErrInterfaceNotFound = errors.New("interface not found")

	// Fact validation errors.

	ErrFactNil                = errors.New("fact is nil")
	ErrFactIdentifiersMissing = errors.New("device, collected_at, and protocol are required")

	// Edge validation errors.

	ErrEdgeNil              = errors.New("edge is nil")
	ErrEdgeEndpointsMissing = errors.New("a_device, a_ifname, b_device, and b_ifname are required")
	ErrEdgeMethodInvalid    = errors.New("edge method is not a known discovery method")
	ErrEdgeConfidenceRange  = errors.New("edge confidence outside [0,1]")
	ErrEdgeTimestampMissing = errors.New("edge last_seen is required")

	// Device and interface validation errors.

	ErrDeviceNil           = errors.New("device is nil")
	ErrDeviceIDRequired    = errors.New("device id is required")
	ErrInterfaceNil        = errors.New("interface is nil")
	ErrInterfaceKeyMissing = errors.New("device id and ifname are required")
)
