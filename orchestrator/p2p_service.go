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

	"github.com/chainvm/corevm/gossip"
)

// GossipPayload is the decoded body of an inbound GossipsubMessageEvent.
// Exactly one concrete type below satisfies it.
type GossipPayload interface {
	isGossipPayload()
}

type NewTxPayload struct{ Tx gossip.Transaction }
type NewBlockPayload struct{ Block gossip.Block }
type ConsensusVotePayload struct{ Vote gossip.ConsensusVote }

func (NewTxPayload) isGossipPayload()        {}
func (NewBlockPayload) isGossipPayload()      {}
func (ConsensusVotePayload) isGossipPayload() {}

// RequestMessage is an inbound request/response protocol message. Block
// requests are the only variant the orchestrator currently serves.
type RequestMessage interface {
	isRequestMessage()
}

type RequestBlockMessage struct{ Height uint32 }

func (RequestBlockMessage) isRequestMessage() {}

// Event is one item yielded by a P2PService's event stream.
type Event interface {
	isEvent()
}

// GossipsubMessageEvent is a gossip message received from a peer, not yet
// validated.
type GossipsubMessageEvent struct {
	Payload   GossipPayload
	MessageID []byte
	PeerID    []byte
}

// RequestMessageEvent is an inbound request/response protocol message
// from a peer, awaiting a reply on RequestID.
type RequestMessageEvent struct {
	Request   RequestMessage
	RequestID uint64
}

func (GossipsubMessageEvent) isEvent() {}
func (RequestMessageEvent) isEvent()   {}

// P2PService is the libp2p-like networking collaborator PNO drives. It is
// an external contract (§6); the real implementation — gossipsub,
// request/response protocols, peer scoring — is out of scope here.
type P2PService interface {
	// NextEvent blocks for the next inbound event. ok is false once the
	// service has shut down and no further events will arrive.
	NextEvent(ctx context.Context) (event Event, ok bool)

	// SendResponseMsg replies to a peer-initiated request previously
	// surfaced as a RequestMessageEvent.
	SendResponseMsg(requestID uint64, resp gossip.ResponseChannelItem) error

	// SendRequestMsg issues an outbound request, optionally to a specific
	// peer (nil = any), delivering the eventual response on channel.
	SendRequestMsg(peerID []byte, req RequestMessage, channel chan<- gossip.ResponseChannelItem) error

	// PublishMessage broadcasts payload to the gossip network.
	PublishMessage(payload GossipPayload) error

	// ReportMessageValidationResult forwards a validation verdict to the
	// service's message cache. ok reports whether the message was found
	// in the cache and the report was published.
	ReportMessageValidationResult(messageID, peerID []byte, verdict gossip.Verdict) (ok bool, err error)
}

// P2pDb is the sealed-block database PNO consults to serve inbound block
// requests. An external contract (§6); out of scope here.
type P2pDb interface {
	GetSealedBlock(ctx context.Context, height uint32) (block gossip.SealedBlock, found bool, err error)
}
