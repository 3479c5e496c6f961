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

// Package orchestrator implements the P2P Network Orchestrator: an event
// loop that mediates between a p2p service and the rest of the node, and
// the ServiceHandle lifecycle controller that starts, stops and restarts
// it.
package orchestrator

// P2PConfig configures the p2p service that the caller constructs and
// passes to New; a PNO keeps a copy but does not build the service
// itself. It is a plain struct loaded from TOML by the demo binary; the
// p2p service itself is an external collaborator (§6) and out of scope
// here.
type P2PConfig struct {
	ListenAddresses []string
	BootstrapNodes  []string
	MaxBlockSize    uint64
	MaxPeers        int
}
