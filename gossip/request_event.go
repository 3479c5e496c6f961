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

package gossip

// Block, Transaction and ConsensusVote are opaque gossip payloads: the
// orchestrator routes them by variant but never inspects their contents
// (consensus and transaction execution are out of scope).
type (
	Block         []byte
	Transaction   []byte
	ConsensusVote []byte
	SealedBlock   []byte
)

// ResponseChannelItem is the payload handed back on a RequestBlockEvent's
// response slot once the p2p service's request/response round-trip
// completes.
type ResponseChannelItem struct {
	Block SealedBlock
	Found bool
}

// RequestEvent is a message sent by other node components to the
// orchestrator. Exactly one of the concrete types below satisfies it.
type RequestEvent interface {
	isRequestEvent()
}

// RequestBlockEvent asks the orchestrator to fetch a block from a peer;
// the result is delivered on ResponseSlot.
type RequestBlockEvent struct {
	Height       uint32
	ResponseSlot chan<- ResponseChannelItem
}

// BroadcastNewBlockEvent asks the orchestrator to publish a newly
// produced block to the network.
type BroadcastNewBlockEvent struct {
	Block Block
}

// BroadcastNewTransactionEvent asks the orchestrator to publish a
// transaction to the network.
type BroadcastNewTransactionEvent struct {
	Tx Transaction
}

// BroadcastConsensusVoteEvent asks the orchestrator to publish a
// consensus vote to the network.
type BroadcastConsensusVoteEvent struct {
	Vote ConsensusVote
}

// GossipsubMessageReportEvent reports the validation outcome of a
// previously received gossip message back to the p2p service.
type GossipsubMessageReportEvent struct {
	MessageID []byte
	PeerID    []byte
	Verdict   Verdict
}

// StopEvent requests that the orchestrator's event loop terminate.
type StopEvent struct{}

func (RequestBlockEvent) isRequestEvent()            {}
func (BroadcastNewBlockEvent) isRequestEvent()       {}
func (BroadcastNewTransactionEvent) isRequestEvent() {}
func (BroadcastConsensusVoteEvent) isRequestEvent()  {}
func (GossipsubMessageReportEvent) isRequestEvent()  {}
func (StopEvent) isRequestEvent()                    {}
