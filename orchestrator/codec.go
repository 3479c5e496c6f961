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

package orchestrator

import (
	"fmt"

	"github.com/golang/snappy"
)

// blockCodec is the wire codec spec.md §4.7 step 1 describes as
// "parameterized by max_block_size": blocks are snappy-compressed before
// being handed to the p2p transport, and oversized blocks are rejected
// up front rather than silently truncated.
type blockCodec struct {
	maxBlockSize uint64
}

func newBlockCodec(maxBlockSize uint64) *blockCodec {
	return &blockCodec{maxBlockSize: maxBlockSize}
}

func (c *blockCodec) encode(block []byte) ([]byte, error) {
	if uint64(len(block)) > c.maxBlockSize {
		return nil, fmt.Errorf("block of %d bytes exceeds max_block_size %d", len(block), c.maxBlockSize)
	}
	return snappy.Encode(nil, block), nil
}

func (c *blockCodec) decode(wire []byte) ([]byte, error) {
	block, err := snappy.Decode(nil, wire)
	if err != nil {
		return nil, fmt.Errorf("decode block: %w", err)
	}
	if uint64(len(block)) > c.maxBlockSize {
		return nil, fmt.Errorf("decoded block of %d bytes exceeds max_block_size %d", len(block), c.maxBlockSize)
	}
	return block, nil
}
