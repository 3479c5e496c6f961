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

// Package gossip carries the provenance wrapper and typed request events
// exchanged between the orchestrator and the rest of a node: a gossip
// payload paired with the peer and message id it arrived with, and the
// RequestEvent variants other components send to the orchestrator.
package gossip

// Envelope wraps a gossip payload with the peer and message id it
// travelled with. The payload is single-consume: once TakeData returns
// it, the envelope holds nothing thereafter.
type Envelope[T any] struct {
	data      *T
	peerID    []byte
	messageID []byte
}

// NewEnvelope builds an Envelope around data, tagged with the peer and
// message id it was received from.
func NewEnvelope[T any](data T, peerID, messageID []byte) *Envelope[T] {
	return &Envelope[T]{data: &data, peerID: peerID, messageID: messageID}
}

// TakeData returns the current payload and clears it. A second call
// returns nil.
func (e *Envelope[T]) TakeData() *T {
	d := e.data
	e.data = nil
	return d
}

// PeerID returns the originating peer id.
func (e *Envelope[T]) PeerID() []byte { return e.peerID }

// MessageID returns the gossip message id.
func (e *Envelope[T]) MessageID() []byte { return e.messageID }
