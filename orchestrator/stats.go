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

package orchestrator

import "sync/atomic"

// Stats counts events a running PNO has handled since its last Start.
// Not part of spec.md, and with no counterpart in the original
// orchestrator, which keeps no counters (SPEC_FULL §3).
type Stats struct {
	broadcasts       atomic.Int64
	requests         atomic.Int64
	responsesDropped atomic.Int64
}

// Snapshot is a point-in-time read of Stats' counters.
type Snapshot struct {
	Broadcasts       int64
	Requests         int64
	ResponsesDropped int64
}

func (s *Stats) reset() {
	s.broadcasts.Store(0)
	s.requests.Store(0)
	s.responsesDropped.Store(0)
}

func (s *Stats) snapshot() Snapshot {
	return Snapshot{
		Broadcasts:       s.broadcasts.Load(),
		Requests:         s.requests.Load(),
		ResponsesDropped: s.responsesDropped.Load(),
	}
}
