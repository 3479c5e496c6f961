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

import (
	"context"
	"sync"

	"github.com/chainvm/corevm/common"
	"github.com/chainvm/corevm/gossip"
)

// runResult is delivered once a running PNO's Run method returns.
type runResult struct {
	pno *PNO
	err error
}

// ServiceHandle is the lifecycle controller around a PNO: Idle (parked,
// awaiting Start), Running (task handle held), Stopping (neither slot
// held, a stop is in flight). A single mutex guards both slots per
// spec.md §9's "single monitor" design note.
type ServiceHandle struct {
	mu      sync.Mutex
	parked  *PNO
	running *runningTask

	txRequestEvent chan<- gossip.RequestEvent
}

type runningTask struct {
	pno    *PNO
	cancel context.CancelFunc
	done   chan runResult
}

// NewServiceHandle parks pno, ready to be started. txRequestEvent is the
// send end of the channel pno reads rx_request_event from; Stop uses it
// to signal shutdown.
func NewServiceHandle(pno *PNO, txRequestEvent chan<- gossip.RequestEvent) *ServiceHandle {
	return &ServiceHandle{parked: pno, txRequestEvent: txRequestEvent}
}

// Start spawns the parked PNO's Run loop as a background goroutine.
// Fails with ErrAlreadyStarted if already running, or
// ErrStartingWhileStopping if the parked slot is currently empty (a stop
// is in flight and hasn't re-parked the PNO yet).
func (h *ServiceHandle) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.running != nil {
		return common.ErrAlreadyStarted
	}
	if h.parked == nil {
		return common.ErrStartingWhileStopping
	}

	pno := h.parked
	h.parked = nil
	pno.stats.reset()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan runResult, 1)
	h.running = &runningTask{pno: pno, cancel: cancel, done: done}

	go func() {
		returned, err := pno.Run(runCtx)
		done <- runResult{pno: returned, err: err}
	}()

	return nil
}

// Stop requests the running PNO to shut down and returns a channel that
// receives exactly once, after the PNO has re-parked itself (enabling
// restart). Returns nil if not running.
func (h *ServiceHandle) Stop() <-chan error {
	h.mu.Lock()
	task := h.running
	h.running = nil
	h.mu.Unlock()

	if task == nil {
		return nil
	}

	result := make(chan error, 1)
	go func() {
		select {
		case h.txRequestEvent <- gossip.StopEvent{}:
		default:
		}
		task.cancel()

		res := <-task.done
		if res.err == nil && res.pno != nil {
			h.mu.Lock()
			h.parked = res.pno
			h.mu.Unlock()
		}
		result <- res.err
	}()
	return result
}

// Stats returns the running PNO's counters, or a zero Snapshot if idle.
func (h *ServiceHandle) Stats() Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running == nil {
		return Snapshot{}
	}
	return h.running.pno.Stats()
}
