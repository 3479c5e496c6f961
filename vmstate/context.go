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

// Package vmstate implements the Contract State Range Engine: the
// per-contract, 256-bit-keyed state map backing a VM's block execution
// context, exposed as the VmDatabase façade.
package vmstate

import "github.com/chainvm/corevm/common"

// ExecutionContext is the immutable block context a VmDatabase is created
// with. It is fixed for the lifetime of one VmDatabase instance — one per
// transaction or per-block execution.
type ExecutionContext struct {
	Height    uint32
	Timestamp common.Tai64
	Coinbase  common.Address
}
