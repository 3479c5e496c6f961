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

package keyspace

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/chainvm/corevm/common"
)

func TestIncreaseOrdinary(t *testing.T) {
	got, err := Increase(uint256.NewInt(41))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Uint64() != 42 {
		t.Errorf("expected 42, got %d", got.Uint64())
	}
}

func TestIncreaseOverflow(t *testing.T) {
	max := new(uint256.Int).Sub(uint256.NewInt(0), uint256.NewInt(1)) // 2^256-1
	_, err := Increase(max)
	if !errors.Is(err, common.ErrKeyspaceOverflow) {
		t.Fatalf("expected ErrKeyspaceOverflow, got %v", err)
	}
}

func TestAddUint64CheckedOverflow(t *testing.T) {
	max := new(uint256.Int).Sub(uint256.NewInt(0), uint256.NewInt(1))
	_, err := AddUint64Checked(max, 2)
	if !errors.Is(err, common.ErrKeyspaceOverflow) {
		t.Fatalf("expected ErrKeyspaceOverflow, got %v", err)
	}
}

func TestAddUint64CheckedOrdinary(t *testing.T) {
	sum, err := AddUint64Checked(uint256.NewInt(10), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Uint64() != 15 {
		t.Errorf("expected 15, got %d", sum.Uint64())
	}
}

func TestBE32RoundTrip(t *testing.T) {
	k := uint256.NewInt(123456789)
	got := FromBE32(ToBE32(k))
	if got.Cmp(k) != 0 {
		t.Errorf("round trip mismatch: got %s want %s", got, k)
	}
}
