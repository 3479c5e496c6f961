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

// Package common holds the fixed-size identifiers shared by the contract
// state range engine and the p2p orchestrator.
package common

import (
	"encoding/hex"
	"fmt"
)

// Length in bytes of every identifier in this package. The engine keys its
// entire keyspace off 32-byte quantities: contract ids, slot values, block
// hashes and the block-producer address are all the same width.
const IdentifierLength = 32

// ContractId is the opaque 32-byte identity of a contract and the physical
// scan prefix of its state in the ContractsState column.
type ContractId [IdentifierLength]byte

// Value256 is an opaque 32-byte slot value.
type Value256 [IdentifierLength]byte

// Bytes32 is a generic 32-byte quantity: block ids and Merkle roots.
type Bytes32 [IdentifierLength]byte

// Address is the 32-byte address credited with block production rewards.
type Address [IdentifierLength]byte

// BytesToContractId sets b to a ContractId, cropping on the left if b is
// longer than IdentifierLength and zero-padding on the left if shorter.
func BytesToContractId(b []byte) ContractId {
	var id ContractId
	setBytes(id[:], b)
	return id
}

// BytesToValue256 converts a byte slice to a Value256.
func BytesToValue256(b []byte) Value256 {
	var v Value256
	setBytes(v[:], b)
	return v
}

// BytesToBytes32 converts a byte slice to a Bytes32.
func BytesToBytes32(b []byte) Bytes32 {
	var v Bytes32
	setBytes(v[:], b)
	return v
}

// BytesToAddress converts a byte slice to an Address.
func BytesToAddress(b []byte) Address {
	var a Address
	setBytes(a[:], b)
	return a
}

func setBytes(dst, src []byte) {
	if len(src) > len(dst) {
		src = src[len(src)-len(dst):]
	}
	copy(dst[len(dst)-len(src):], src)
}

func (id ContractId) Bytes() []byte { return id[:] }
func (v Value256) Bytes() []byte    { return v[:] }
func (b Bytes32) Bytes() []byte     { return b[:] }
func (a Address) Bytes() []byte     { return a[:] }

func (id ContractId) Hex() string { return hex.EncodeToString(id[:]) }
func (v Value256) Hex() string    { return hex.EncodeToString(v[:]) }
func (b Bytes32) Hex() string     { return hex.EncodeToString(b[:]) }
func (a Address) Hex() string     { return hex.EncodeToString(a[:]) }

func (id ContractId) String() string { return fmt.Sprintf("0x%s", id.Hex()) }
func (v Value256) String() string    { return fmt.Sprintf("0x%s", v.Hex()) }
func (b Bytes32) String() string     { return fmt.Sprintf("0x%s", b.Hex()) }
func (a Address) String() string     { return fmt.Sprintf("0x%s", a.Hex()) }

// IsZero reports whether b is the all-zero Bytes32, the canonical value
// returned by block_hash for the genesis and future/self height queries.
func (b Bytes32) IsZero() bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}
