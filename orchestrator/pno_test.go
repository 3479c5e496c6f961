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
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/event"

	"github.com/chainvm/corevm/common"
	"github.com/chainvm/corevm/gossip"
)

func testConfig() P2PConfig {
	return P2PConfig{MaxBlockSize: 1 << 20, MaxPeers: 8}
}

func newTestHandle(t *testing.T) (*ServiceHandle, *MemP2PService, *MemP2pDb, *event.Feed, chan *gossip.Envelope[gossip.ConsensusVote], chan *gossip.Envelope[gossip.Block]) {
	t.Helper()
	p2p := NewMemP2PService(testConfig())
	db := NewMemP2pDb()
	reqCh := make(chan gossip.RequestEvent, 4)
	txConsensus := make(chan *gossip.Envelope[gossip.ConsensusVote], 4)
	txBlock := make(chan *gossip.Envelope[gossip.Block], 4)
	var txTransaction event.Feed

	pno := New(testConfig(), p2p, db, reqCh, txConsensus, txBlock, &txTransaction)
	handle := NewServiceHandle(pno, reqCh)
	t.Cleanup(func() { p2p.Close() })
	return handle, p2p, db, &txTransaction, txConsensus, txBlock
}

// S9 / invariant: exactly one envelope observable on tx_transaction per
// inbound NewTx gossip message.
func TestPNODispatchesGossipTransaction(t *testing.T) {
	handle, p2p, _, txTransaction, _, _ := newTestHandle(t)

	sub := make(chan *gossip.Envelope[gossip.Transaction], 1)
	txTransaction.Subscribe(sub)

	if err := handle.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	p2p.Inject(GossipsubMessageEvent{
		Payload:   NewTxPayload{Tx: gossip.Transaction("tx-1")},
		MessageID: []byte("mid-1"),
		PeerID:    []byte("peer-1"),
	})

	select {
	case env := <-sub:
		data := env.TakeData()
		if data == nil || string(*data) != "tx-1" {
			t.Fatalf("unexpected envelope payload: %v", data)
		}
		if string(env.PeerID()) != "peer-1" || string(env.MessageID()) != "mid-1" {
			t.Fatalf("unexpected envelope provenance: peer=%s msg=%s", env.PeerID(), env.MessageID())
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tx_transaction broadcast")
	}

	drainStop(t, handle)
}

func TestPNODispatchesGossipBlockAndVote(t *testing.T) {
	handle, p2p, _, _, txConsensus, txBlock := newTestHandle(t)

	if err := handle.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	p2p.Inject(GossipsubMessageEvent{
		Payload:   NewBlockPayload{Block: gossip.Block("block-1")},
		MessageID: []byte("mid-b"),
		PeerID:    []byte("peer-b"),
	})
	p2p.Inject(GossipsubMessageEvent{
		Payload:   ConsensusVotePayload{Vote: gossip.ConsensusVote("vote-1")},
		MessageID: []byte("mid-v"),
		PeerID:    []byte("peer-v"),
	})

	select {
	case env := <-txBlock:
		if string(*env.TakeData()) != "block-1" {
			t.Fatal("unexpected block payload")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tx_block")
	}

	select {
	case env := <-txConsensus:
		if string(*env.TakeData()) != "vote-1" {
			t.Fatal("unexpected vote payload")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tx_consensus")
	}

	drainStop(t, handle)
}

func TestPNOServesInboundBlockRequest(t *testing.T) {
	handle, p2p, db, _, _, _ := newTestHandle(t)
	db.Put(42, gossip.SealedBlock("sealed-block-42"))

	if err := handle.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	reqID := p2p.newRequestID()
	p2p.Inject(RequestMessageEvent{Request: RequestBlockMessage{Height: 42}, RequestID: reqID})

	time.Sleep(50 * time.Millisecond)
	drainStop(t, handle)
}

func TestPNOReportsValidationVerdict(t *testing.T) {
	handle, p2p, _, _, _, _ := newTestHandle(t)

	if err := handle.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	env := gossip.NewEnvelope(gossip.Transaction("tx"), []byte("peer-x"), []byte("msg-x"))
	handle.txRequestEvent <- gossip.GossipsubMessageReportEvent{
		MessageID: env.MessageID(),
		PeerID:    env.PeerID(),
		Verdict:   gossip.Accept,
	}

	time.Sleep(50 * time.Millisecond)
	reports := p2p.Reports()
	if len(reports) != 1 || reports[0].Verdict != gossip.Accept {
		t.Fatalf("expected one Accept report, got %v", reports)
	}

	drainStop(t, handle)
}

func TestPNOForwardsOutboundBlockRequest(t *testing.T) {
	handle, _, _, _, _, _ := newTestHandle(t)

	if err := handle.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	responseSlot := make(chan gossip.ResponseChannelItem, 1)
	handle.txRequestEvent <- gossip.RequestBlockEvent{Height: 7, ResponseSlot: responseSlot}

	select {
	case item := <-responseSlot:
		if item.Found {
			t.Fatal("expected the fake service to report not-found")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for outbound block request response")
	}

	drainStop(t, handle)
}

// S10 / invariant 11: start -> stop -> start all succeed; duplicate start
// fails; stop on idle returns nil.
func TestServiceHandleLifecycle(t *testing.T) {
	handle, p2p, _, _, _, _ := newTestHandle(t)
	_ = p2p

	ctx := context.Background()
	if err := handle.Start(ctx); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := handle.Start(ctx); err != common.ErrAlreadyStarted {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}

	drainStop(t, handle)

	if ch := handle.Stop(); ch != nil {
		t.Fatal("expected Stop on idle handle to return nil channel")
	}

	if err := handle.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	drainStop(t, handle)
}

func drainStop(t *testing.T, h *ServiceHandle) {
	t.Helper()
	ch := h.Stop()
	if ch == nil {
		t.Fatal("expected Stop to return a result channel while running")
	}
	select {
	case err := <-ch:
		if err != nil {
			t.Fatalf("stop: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for stop to complete")
	}
}
