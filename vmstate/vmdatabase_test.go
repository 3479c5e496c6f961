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
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/chainvm/corevm/common"
	"github.com/chainvm/corevm/storage"
)

func key(n uint64) [32]byte {
	var b [32]byte
	v := uint256.NewInt(n)
	copy(b[:], v.Bytes32()[:])
	return b
}

func maxKey() [32]byte {
	max := new(uint256.Int).Sub(uint256.NewInt(0), uint256.NewInt(1))
	return max.Bytes32()
}

func value(b byte) common.Value256 {
	var v common.Value256
	for i := range v {
		v[i] = b
	}
	return v
}

func newTestDB(t *testing.T) (*VmDatabase, *storage.LevelDBStore) {
	t.Helper()
	s, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	ctx := ExecutionContext{Height: 10, Timestamp: common.Tai64FromUnix(1700000000), Coinbase: common.BytesToAddress([]byte{0xC0})}
	return New(ctx, s), s
}

var contract0 = common.BytesToContractId(nil)

// S1
func TestStateRangeEmptyStoreReturnsNone(t *testing.T) {
	db, _ := newTestDB(t)
	out, err := db.StateRange(contract0, key(0), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] != nil {
		t.Fatalf("expected [None], got %v", out)
	}
}

// S2
func TestStateRangeSingleInitializedSlot(t *testing.T) {
	db, s := newTestDB(t)
	s.Insert(storage.ColumnContractsState, multiKey(contract0, key(0)), value(0).Bytes())

	out, err := db.StateRange(contract0, key(0), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0] == nil || *out[0] != value(0) {
		t.Fatalf("expected [Some(0)], got %v", out)
	}
}

// S3
func TestStateRangeGapBeforeTwoSlots(t *testing.T) {
	db, s := newTestDB(t)
	s.Insert(storage.ColumnContractsState, multiKey(contract0, key(1)), value(1).Bytes())
	s.Insert(storage.ColumnContractsState, multiKey(contract0, key(2)), value(2).Bytes())

	out, err := db.StateRange(contract0, key(0), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != nil || *out[1] != value(1) || *out[2] != value(2) {
		t.Fatalf("unexpected result: %v %v %v", out[0], out[1], out[2])
	}
}

// S4
func TestStateRangeStopsBeforeRevealingLaterSlot(t *testing.T) {
	db, s := newTestDB(t)
	s.Insert(storage.ColumnContractsState, multiKey(contract0, key(0)), value(0).Bytes())
	s.Insert(storage.ColumnContractsState, multiKey(contract0, key(2)), value(2).Bytes())

	out, err := db.StateRange(contract0, key(0), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *out[0] != value(0) || out[1] != nil {
		t.Fatalf("unexpected result: %v %v", out[0], out[1])
	}
}

// S5
func TestStateRangeOverflowFailsBeforeAnyRead(t *testing.T) {
	db, _ := newTestDB(t)
	_, err := db.StateRange(contract0, maxKey(), 2)
	if !errors.Is(err, common.ErrKeyspaceOverflow) {
		t.Fatalf("expected ErrKeyspaceOverflow, got %v", err)
	}
}

// S6
func TestStateInsertRangeThenRead(t *testing.T) {
	db, _ := newTestDB(t)
	res, err := db.StateInsertRange(contract0, key(0), []common.Value256{value(1), value(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != SomeNew {
		t.Fatalf("expected SomeNew on empty store, got %v", res)
	}

	out, err := db.StateRange(contract0, key(0), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *out[0] != value(1) || *out[1] != value(2) {
		t.Fatalf("unexpected range after insert: %v %v", out[0], out[1])
	}
}

func TestStateInsertRangeAllOverwritten(t *testing.T) {
	db, _ := newTestDB(t)
	db.StateInsertRange(contract0, key(0), []common.Value256{value(1), value(2)})

	res, err := db.StateInsertRange(contract0, key(0), []common.Value256{value(3), value(4)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != AllOverwritten {
		t.Fatalf("expected AllOverwritten, got %v", res)
	}
}

// S7
func TestStateInsertRangeOverflowLeavesStoreUnchanged(t *testing.T) {
	db, _ := newTestDB(t)
	_, err := db.StateInsertRange(contract0, maxKey(), []common.Value256{value(1), value(2)})
	if !errors.Is(err, common.ErrKeyspaceOverflow) {
		t.Fatalf("expected ErrKeyspaceOverflow, got %v", err)
	}

	out, err := db.StateRange(contract0, maxKey(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != nil {
		t.Fatalf("expected store unchanged, got %v", out[0])
	}
}

// S8
func TestStateRemoveRangeAllRemoved(t *testing.T) {
	db, _ := newTestDB(t)
	db.StateInsertRange(contract0, key(0), []common.Value256{value(1), value(2), value(3)})

	res, err := db.StateRemoveRange(contract0, key(0), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != AllRemoved {
		t.Fatalf("expected AllRemoved, got %v", res)
	}

	out, err := db.StateRange(contract0, key(0), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0] != nil || out[1] != nil {
		t.Fatalf("expected both slots absent, got %v %v", out[0], out[1])
	}
}

func TestStateRemoveRangeIdempotentSecondCall(t *testing.T) {
	db, _ := newTestDB(t)
	db.StateInsertRange(contract0, key(0), []common.Value256{value(1), value(2)})
	db.StateRemoveRange(contract0, key(0), 2)

	res, err := db.StateRemoveRange(contract0, key(0), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != SomeAbsent {
		t.Fatalf("expected SomeAbsent on second removal, got %v", res)
	}
}

func TestTimestampCurrentHeight(t *testing.T) {
	db, _ := newTestDB(t)
	ts, err := db.Timestamp(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts != common.Tai64FromUnix(1700000000) {
		t.Errorf("unexpected timestamp: %d", ts)
	}
}

func TestTimestampFutureHeightFails(t *testing.T) {
	db, _ := newTestDB(t)
	_, err := db.Timestamp(11)
	if !errors.Is(err, common.ErrHeightOutOfRange) {
		t.Fatalf("expected ErrHeightOutOfRange, got %v", err)
	}
}

func TestTimestampPastHeightQueriesStore(t *testing.T) {
	db, s := newTestDB(t)
	want := common.Tai64FromUnix(1600000000)
	s.PutBlockTime(5, want)

	got, err := db.Timestamp(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

// Invariant 9 (block_hash edge cases)
func TestBlockHashZeroAtGenesisAndCurrentHeight(t *testing.T) {
	db, s := newTestDB(t)
	s.PutBlockID(5, common.BytesToBytes32([]byte{0xAB}))

	h0, err := db.BlockHash(0)
	if err != nil || !h0.IsZero() {
		t.Fatalf("expected zero hash for height 0, got %v err=%v", h0, err)
	}

	hCurrent, err := db.BlockHash(10)
	if err != nil || !hCurrent.IsZero() {
		t.Fatalf("expected zero hash for current height, got %v err=%v", hCurrent, err)
	}
}

func TestBlockHashPastHeightQueriesStore(t *testing.T) {
	db, s := newTestDB(t)
	want := common.BytesToBytes32([]byte{0xAB})
	s.PutBlockID(5, want)

	got, err := db.BlockHash(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBlockHashMissingPastHeightFails(t *testing.T) {
	db, _ := newTestDB(t)
	_, err := db.BlockHash(3)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCoinbaseAndBlockHeight(t *testing.T) {
	db, _ := newTestDB(t)
	if db.BlockHeight() != 10 {
		t.Errorf("expected height 10, got %d", db.BlockHeight())
	}
	if db.Coinbase() != common.BytesToAddress([]byte{0xC0}) {
		t.Errorf("unexpected coinbase: %v", db.Coinbase())
	}
}
