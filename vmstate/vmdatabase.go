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

package vmstate

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/chainvm/corevm/common"
	"github.com/chainvm/corevm/keyspace"
	"github.com/chainvm/corevm/storage"
)

// VmDatabase is the façade exposed to the VM: an execution context paired
// with a PrefixedStore handle. It is created per-transaction or per-block
// execution and discarded when execution ends; it is never shared across
// concurrent executions.
type VmDatabase struct {
	ctx   ExecutionContext
	store storage.PrefixedStore
}

// New builds a VmDatabase over store, fixed to ctx for its whole lifetime.
func New(ctx ExecutionContext, store storage.PrefixedStore) *VmDatabase {
	return &VmDatabase{ctx: ctx, store: store}
}

// StateRange reads n consecutive slots starting at startKey. Slot i of the
// result is Some(value) if the slot is initialized, else None (nil).
// Fails with common.ErrKeyspaceOverflow if start+n would exceed 2^256,
// without any observable side effect.
func (db *VmDatabase) StateRange(contractID common.ContractId, startKey [32]byte, n uint64) ([]*common.Value256, error) {
	start := keyspace.FromBE32(startKey)
	// The last slot read is start+n-1; it must fit in 256 bits.
	if n > 0 {
		if _, err := keyspace.AddUint64Checked(start, n-1); err != nil {
			return nil, err
		}
	}

	out := make([]*common.Value256, 0, n)
	expected := start

	it := db.store.IterAll(storage.ColumnContractsState, contractID.Bytes(), multiKey(contractID, startKey), storage.Forward)
	defer it.Release()

	for uint64(len(out)) < n && it.Next() {
		physKey := it.Key()
		if len(physKey) != 64 {
			log.Error("vmstate: malformed physical key in ContractsState scan", "len", len(physKey))
			continue
		}
		var actualBE [32]byte
		copy(actualBE[:], physKey[32:])
		actual := keyspace.FromBE32(actualBE)

		for expected.Cmp(actual) <= 0 && uint64(len(out)) < n {
			if expected.Cmp(actual) == 0 {
				v := common.BytesToValue256(it.Value())
				out = append(out, &v)
			} else {
				out = append(out, nil)
			}
			if uint64(len(out)) == n {
				break
			}
			next, err := keyspace.Increase(expected)
			if err != nil {
				return nil, err
			}
			expected = next
		}
	}
	if err := it.Error(); err != nil {
		return nil, err
	}

	for uint64(len(out)) < n {
		out = append(out, nil)
		if uint64(len(out)) == n {
			break
		}
		next, err := keyspace.Increase(expected)
		if err != nil {
			return nil, err
		}
		expected = next
	}

	return out, nil
}

// StateInsertRange writes len(values) consecutive slots starting at
// startKey. Fails with common.ErrKeyspaceOverflow before any write if the
// range would exceed 2^256.
func (db *VmDatabase) StateInsertRange(contractID common.ContractId, startKey [32]byte, values []common.Value256) (InsertResult, error) {
	start := keyspace.FromBE32(startKey)
	// The last slot written is start+len(values)-1; it must fit in 256 bits.
	if len(values) > 0 {
		if _, err := keyspace.AddUint64Checked(start, uint64(len(values)-1)); err != nil {
			return SomeNew, err
		}
	}

	allOverwritten := true
	cursor := start
	for i, v := range values {
		physKey := multiKey(contractID, keyspace.ToBE32(cursor))
		_, hadPrior, err := db.store.Insert(storage.ColumnContractsState, physKey, v.Bytes())
		if err != nil {
			return SomeNew, err
		}
		allOverwritten = allOverwritten && hadPrior

		if i == len(values)-1 {
			break
		}
		next, err := keyspace.Increase(cursor)
		if err != nil {
			return SomeNew, err
		}
		cursor = next
	}
	return InsertResult(allOverwritten), nil
}

// StateRemoveRange deletes n consecutive slots starting at startKey.
// Deleting an absent slot is not an error; it only flips the result flag.
func (db *VmDatabase) StateRemoveRange(contractID common.ContractId, startKey [32]byte, n uint64) (RemoveResult, error) {
	start := keyspace.FromBE32(startKey)
	allRemoved := true
	cursor := start
	for i := uint64(0); i < n; i++ {
		physKey := multiKey(contractID, keyspace.ToBE32(cursor))
		_, hadPrior, err := db.store.Remove(storage.ColumnContractsState, physKey)
		if err != nil {
			return SomeAbsent, err
		}
		allRemoved = allRemoved && hadPrior

		if i == n-1 {
			break
		}
		next, err := keyspace.Increase(cursor)
		if err != nil {
			return SomeAbsent, err
		}
		cursor = next
	}
	return RemoveResult(allRemoved), nil
}

// BlockHeight returns the context's block height.
func (db *VmDatabase) BlockHeight() uint32 {
	return db.ctx.Height
}

// Timestamp returns the TAI64 timestamp for height h. h must not exceed
// the context's current height.
func (db *VmDatabase) Timestamp(h uint32) (common.Tai64, error) {
	if h > db.ctx.Height {
		return 0, common.ErrHeightOutOfRange
	}
	if h == db.ctx.Height {
		return db.ctx.Timestamp, nil
	}
	return db.store.BlockTime(h)
}

// BlockHash returns the block id recorded at height h. It returns the
// all-zero hash for the genesis block (h == 0) and for any height at or
// after the context's current height, since neither has a recorded parent
// hash to report via this path.
func (db *VmDatabase) BlockHash(h uint32) (common.Bytes32, error) {
	if h == 0 || h >= db.ctx.Height {
		return common.Bytes32{}, nil
	}
	id, ok, err := db.store.GetBlockID(h)
	if err != nil {
		return common.Bytes32{}, err
	}
	if !ok {
		return common.Bytes32{}, common.ErrNotFound
	}
	return id, nil
}

// Coinbase returns the address credited with block production for the
// current block.
func (db *VmDatabase) Coinbase() common.Address {
	return db.ctx.Coinbase
}

// Root forwards to the store's per-contract Merkle root accessor
// unchanged (spec §6).
func (db *VmDatabase) Root(contractID common.ContractId) (common.Bytes32, error) {
	return db.store.Root(contractID)
}
