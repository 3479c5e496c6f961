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

// Package storage defines the PrefixedStore contract CSRE is built on top
// of (spec §6: "the generic column-family key/value store is out of
// scope, specified only by interface"), and ships one concrete
// implementation of it backed by goleveldb for tests and the demo binary.
package storage

import "github.com/chainvm/corevm/common"

// Column identifies one of the store's column families. CSRE only ever
// addresses ContractsState directly; the remaining columns back the host
// queries in vmstate (block_time, block_hash, root).
type Column byte

const (
	ColumnContractsState Column = iota
	ColumnBlockTimes
	ColumnBlockIds
	ColumnContractRoots
)

// Direction selects which way a prefix scan walks the keyspace.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Iterator is a lazy, finite, non-restartable cursor over (physical key,
// value) pairs, ascending or descending by big-endian key order within a
// fixed prefix. Call Next before the first Key/Value access; Release must
// be called exactly once when done.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

// PrefixedStore is the external collaborator CSRE is built against. It is
// not implemented by the engine itself (spec.md Non-goal: "implementing
// the underlying key/value engine") — callers supply one, typically the
// LevelDBStore in this package.
type PrefixedStore interface {
	// Get returns the value at key in column, and whether it was present.
	Get(column Column, key []byte) (value []byte, ok bool, err error)

	// ContainsKey reports whether key is present in column.
	ContainsKey(column Column, key []byte) (bool, error)

	// Insert writes value at key, returning the prior value (if any).
	Insert(column Column, key, value []byte) (prior []byte, hadPrior bool, err error)

	// Remove deletes key, returning the prior value (if any). Deleting an
	// absent key is not an error.
	Remove(column Column, key []byte) (prior []byte, hadPrior bool, err error)

	// IterAll opens a scan over column restricted to physical keys with
	// the given prefix, seeking forward or backward to start.
	IterAll(column Column, prefix, start []byte, dir Direction) Iterator

	// BlockTime returns the TAI64 timestamp recorded for height, or
	// common.ErrNotFound if no such block is known.
	BlockTime(height uint32) (common.Tai64, error)

	// GetBlockID returns the block id recorded for height, if any.
	GetBlockID(height uint32) (common.Bytes32, bool, error)

	// Root returns the Merkle root recorded for a contract's state.
	Root(contractID common.ContractId) (common.Bytes32, error)
}
