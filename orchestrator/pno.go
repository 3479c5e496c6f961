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

	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/log"

	"github.com/chainvm/corevm/gossip"
)

const outboundResponseQueueCap = 100

type outboundResponse struct {
	item      gossip.ResponseChannelItem
	requestID uint64
}

// PNO is the P2P Network Orchestrator: it owns the receive ends of the
// request/response channels described in spec.md §4.7 and multiplexes
// them against a P2PService's event stream.
type PNO struct {
	cfg P2PConfig
	p2p P2PService
	db  P2pDb

	rxRequestEvent <-chan gossip.RequestEvent

	txOutboundResponses chan outboundResponse
	txConsensus         chan<- *gossip.Envelope[gossip.ConsensusVote]
	txBlock             chan<- *gossip.Envelope[gossip.Block]
	txTransaction       *event.Feed

	stats *Stats
}

// New builds a parked PNO. The p2p service is assumed already constructed
// against cfg by the caller (§6 treats FuelP2PService construction as an
// external factory, not part of the orchestrator's own surface).
func New(
	cfg P2PConfig,
	p2p P2PService,
	db P2pDb,
	rxRequestEvent <-chan gossip.RequestEvent,
	txConsensus chan<- *gossip.Envelope[gossip.ConsensusVote],
	txBlock chan<- *gossip.Envelope[gossip.Block],
	txTransaction *event.Feed,
) *PNO {
	return &PNO{
		cfg:                 cfg,
		p2p:                 p2p,
		db:                  db,
		rxRequestEvent:      rxRequestEvent,
		txOutboundResponses: make(chan outboundResponse, outboundResponseQueueCap),
		txConsensus:         txConsensus,
		txBlock:             txBlock,
		txTransaction:       txTransaction,
		stats:               &Stats{},
	}
}

// Stats returns a snapshot of the counters accumulated since the last
// reset (Start).
func (p *PNO) Stats() Snapshot { return p.stats.snapshot() }

// Run enters the non-terminating multiplex of spec.md §4.7. It returns
// when rx_request_event yields Stop or ctx is cancelled, handing back
// ownership of the PNO so ServiceHandle can re-park it for restart.
func (p *PNO) Run(ctx context.Context) (*PNO, error) {
	events := make(chan Event)
	go p.pumpEvents(ctx, events)

	for {
		select {
		case <-ctx.Done():
			return p, nil

		case resp := <-p.txOutboundResponses:
			if err := p.p2p.SendResponseMsg(resp.requestID, resp.item); err != nil {
				log.Debug("orchestrator: dropped outbound response", "requestID", resp.requestID, "err", err)
				p.stats.responsesDropped.Add(1)
			}

		case ev, ok := <-events:
			if !ok {
				return p, nil
			}
			p.handleP2PEvent(ctx, ev)

		case re, ok := <-p.rxRequestEvent:
			if !ok {
				return p, nil
			}
			if _, stop := re.(gossip.StopEvent); stop {
				return p, nil
			}
			p.handleRequestEvent(re)
		}
	}
}

// pumpEvents adapts P2PService's blocking NextEvent into a channel so it
// can take part in the select-based multiplex alongside the other
// sources.
func (p *PNO) pumpEvents(ctx context.Context, out chan<- Event) {
	defer close(out)
	for {
		ev, ok := p.p2p.NextEvent(ctx)
		if !ok {
			return
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (p *PNO) handleP2PEvent(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case GossipsubMessageEvent:
		switch payload := e.Payload.(type) {
		case NewTxPayload:
			env := gossip.NewEnvelope(payload.Tx, e.PeerID, e.MessageID)
			if p.txTransaction.Send(env) == 0 {
				log.Debug("orchestrator: no subscriber for tx_transaction", "messageID", e.MessageID)
			}
		case NewBlockPayload:
			env := gossip.NewEnvelope(payload.Block, e.PeerID, e.MessageID)
			p.sendBlock(env)
		case ConsensusVotePayload:
			env := gossip.NewEnvelope(payload.Vote, e.PeerID, e.MessageID)
			p.sendConsensus(env)
		}

	case RequestMessageEvent:
		switch req := e.Request.(type) {
		case RequestBlockMessage:
			go p.serveBlockRequest(ctx, req.Height, e.RequestID)
		}
	}
}

func (p *PNO) sendBlock(env *gossip.Envelope[gossip.Block]) {
	select {
	case p.txBlock <- env:
	default:
		log.Debug("orchestrator: tx_block full, dropping block envelope")
	}
}

func (p *PNO) sendConsensus(env *gossip.Envelope[gossip.ConsensusVote]) {
	select {
	case p.txConsensus <- env:
	default:
		log.Debug("orchestrator: tx_consensus full, dropping vote envelope")
	}
}

// serveBlockRequest is the detached responder task of spec.md §9: it
// never blocks the main loop on database latency.
func (p *PNO) serveBlockRequest(ctx context.Context, height uint32, requestID uint64) {
	block, found, err := p.db.GetSealedBlock(ctx, height)
	if err != nil {
		log.Debug("orchestrator: sealed block lookup failed", "height", height, "err", err)
		found = false
	}
	resp := outboundResponse{item: gossip.ResponseChannelItem{Block: block, Found: found}, requestID: requestID}
	select {
	case p.txOutboundResponses <- resp:
	default:
		log.Debug("orchestrator: outbound response queue full, dropping", "requestID", requestID)
		p.stats.responsesDropped.Add(1)
	}
}

func (p *PNO) handleRequestEvent(re gossip.RequestEvent) {
	switch e := re.(type) {
	case gossip.RequestBlockEvent:
		p.stats.requests.Add(1)
		ch := make(chan gossip.ResponseChannelItem, 1)
		if err := p.p2p.SendRequestMsg(nil, RequestBlockMessage{Height: e.Height}, ch); err != nil {
			log.Debug("orchestrator: send_request_msg failed", "height", e.Height, "err", err)
			return
		}
		go forwardResponse(ch, e.ResponseSlot)

	case gossip.BroadcastNewBlockEvent:
		p.stats.broadcasts.Add(1)
		if err := p.p2p.PublishMessage(NewBlockPayload{Block: e.Block}); err != nil {
			log.Debug("orchestrator: publish_message (block) failed", "err", err)
		}

	case gossip.BroadcastNewTransactionEvent:
		p.stats.broadcasts.Add(1)
		if err := p.p2p.PublishMessage(NewTxPayload{Tx: e.Tx}); err != nil {
			log.Debug("orchestrator: publish_message (tx) failed", "err", err)
		}

	case gossip.BroadcastConsensusVoteEvent:
		p.stats.broadcasts.Add(1)
		if err := p.p2p.PublishMessage(ConsensusVotePayload{Vote: e.Vote}); err != nil {
			log.Debug("orchestrator: publish_message (vote) failed", "err", err)
		}

	case gossip.GossipsubMessageReportEvent:
		published, err := p.p2p.ReportMessageValidationResult(e.MessageID, e.PeerID, e.Verdict)
		switch {
		case err != nil:
			log.Warn("orchestrator: validation report transport error", "messageID", e.MessageID, "err", err)
		case published:
			log.Info("orchestrator: validation report published", "messageID", e.MessageID)
		default:
			log.Warn("orchestrator: validation report, message not found in cache", "messageID", e.MessageID)
		}
	}
}

func forwardResponse(from <-chan gossip.ResponseChannelItem, to chan<- gossip.ResponseChannelItem) {
	item := <-from
	to <- item
}
