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
	"sync/atomic"

	mapset "github.com/deckarep/golang-set"
	"github.com/google/uuid"

	"github.com/chainvm/corevm/gossip"
)

// MemP2PService is an in-process stand-in for the real libp2p-backed
// FuelP2PService, used by orchestrator tests and the demo binary. It
// loops injected test events back out of NextEvent, deduplicates by
// message id the way a real gossipsub mesh would, and records published
// broadcasts and validation reports for assertions.
type MemP2PService struct {
	codec *blockCodec

	events chan Event
	seen   mapset.Set

	nextRequestID atomic.Uint64

	mu        sync.Mutex
	published []GossipPayload
	reports   []reportCall
}

type reportCall struct {
	MessageID []byte
	PeerID    []byte
	Verdict   gossip.Verdict
}

// NewMemP2PService builds an idle fake service; tests feed it events via
// Inject.
func NewMemP2PService(cfg P2PConfig) *MemP2PService {
	return &MemP2PService{
		codec:  newBlockCodec(cfg.MaxBlockSize),
		events: make(chan Event, 64),
		seen:   mapset.NewSet(),
	}
}

// Inject delivers ev to the next NextEvent caller, as if it had arrived
// from the network. Messages whose MessageID was already injected are
// dropped, mirroring gossipsub's own duplicate suppression.
func (m *MemP2PService) Inject(ev Event) {
	if gm, ok := ev.(GossipsubMessageEvent); ok {
		key := string(gm.MessageID)
		if m.seen.Contains(key) {
			return
		}
		m.seen.Add(key)
	}
	m.events <- ev
}

// Close signals NextEvent callers that no further events will arrive.
func (m *MemP2PService) Close() { close(m.events) }

func (m *MemP2PService) NextEvent(ctx context.Context) (Event, bool) {
	select {
	case ev, ok := <-m.events:
		return ev, ok
	case <-ctx.Done():
		return nil, false
	}
}

func (m *MemP2PService) SendResponseMsg(requestID uint64, resp gossip.ResponseChannelItem) error {
	return nil
}

func (m *MemP2PService) SendRequestMsg(peerID []byte, req RequestMessage, channel chan<- gossip.ResponseChannelItem) error {
	id := uuid.New()
	_ = id // stands in for a correlation id a real transport would attach to the wire request
	go func() {
		channel <- gossip.ResponseChannelItem{Found: false}
	}()
	return nil
}

func (m *MemP2PService) PublishMessage(payload GossipPayload) error {
	if blk, ok := payload.(NewBlockPayload); ok {
		if _, err := m.codec.encode(blk.Block); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.published = append(m.published, payload)
	m.mu.Unlock()
	return nil
}

func (m *MemP2PService) ReportMessageValidationResult(messageID, peerID []byte, verdict gossip.Verdict) (bool, error) {
	m.mu.Lock()
	m.reports = append(m.reports, reportCall{MessageID: messageID, PeerID: peerID, Verdict: verdict})
	m.mu.Unlock()
	return m.seen.Contains(string(messageID)), nil
}

// Published returns every payload handed to PublishMessage, in order.
func (m *MemP2PService) Published() []GossipPayload {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]GossipPayload, len(m.published))
	copy(out, m.published)
	return out
}

// Reports returns every validation result reported, in order.
func (m *MemP2PService) Reports() []reportCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]reportCall, len(m.reports))
	copy(out, m.reports)
	return out
}

// newRequestID hands out demo correlation ids for RequestMessageEvent.
func (m *MemP2PService) newRequestID() uint64 {
	return m.nextRequestID.Add(1)
}

// MemP2pDb is an in-memory stand-in for the sealed-block database.
type MemP2pDb struct {
	mu     sync.Mutex
	blocks map[uint32]gossip.SealedBlock
}

func NewMemP2pDb() *MemP2pDb {
	return &MemP2pDb{blocks: make(map[uint32]gossip.SealedBlock)}
}

func (d *MemP2pDb) Put(height uint32, block gossip.SealedBlock) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blocks[height] = block
}

func (d *MemP2pDb) GetSealedBlock(ctx context.Context, height uint32) (gossip.SealedBlock, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.blocks[height]
	return b, ok, nil
}
