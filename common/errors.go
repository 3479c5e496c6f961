// Copyright 2024 The corevm Authors
// This file is part of the corevm library.
//
// The corevm library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The corevm library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the corevm library. If not, see <http://www.gnu.org/licenses/>.

package common

import "errors"

var (
	// ErrKeyspaceOverflow is returned when a range operation's span would
	// cross 2^256. Reported, never silently truncated.
	ErrKeyspaceOverflow = errors.New("keyspace: range crosses 2^256")

	// ErrNotFound is returned by host queries when a required block id or
	// block time is missing from the store.
	ErrNotFound = errors.New("vmstate: not found")

	// ErrHeightOutOfRange is returned by timestamp() when asked about a
	// height strictly greater than the current block height.
	ErrHeightOutOfRange = errors.New("vmstate: height out of range")

	// ErrAlreadyStarted is returned by ServiceHandle.Start when the
	// orchestrator is already running.
	ErrAlreadyStarted = errors.New("orchestrator: already started")

	// ErrStartingWhileStopping is returned by ServiceHandle.Start when no
	// parked orchestrator is available to start (a stop is in flight, or
	// the handle has never been given one).
	ErrStartingWhileStopping = errors.New("orchestrator: starting while stopping")
)
