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

// Package keyspace implements checked arithmetic over the 256-bit unsigned
// keyspace that indexes a contract's storage slots, plus the big-endian
// wire codec used everywhere a Key256 crosses the store boundary.
package keyspace

import (
	"github.com/holiman/uint256"

	"github.com/chainvm/corevm/common"
)

// Increase returns k+1, or common.ErrKeyspaceOverflow if k is already the
// maximum representable U256 (2^256-1). It is the sole mechanism for
// advancing the expected-key cursor during range operations: any overflow
// here must abort the calling operation before it emits further output.
func Increase(k *uint256.Int) (*uint256.Int, error) {
	next := new(uint256.Int)
	if next.AddOverflow(k, uint256.NewInt(1)) {
		return nil, common.ErrKeyspaceOverflow
	}
	return next, nil
}

// AddUint64Checked returns start+n, or common.ErrKeyspaceOverflow if the
// sum does not fit in 256 bits (is 2^256 or more). Used as the preflight
// check on insert/read ranges, applied to the range's last key, before any
// side effect becomes observable.
func AddUint64Checked(start *uint256.Int, n uint64) (*uint256.Int, error) {
	sum := new(uint256.Int)
	if sum.AddOverflow(start, uint256.NewInt(n)) {
		return nil, common.ErrKeyspaceOverflow
	}
	return sum, nil
}

// ToBE32 renders k as its canonical big-endian 32-byte encoding.
func ToBE32(k *uint256.Int) [32]byte {
	return k.Bytes32()
}

// FromBE32 parses a 32-byte big-endian encoding into a U256.
func FromBE32(b [32]byte) *uint256.Int {
	return new(uint256.Int).SetBytes32(b[:])
}
