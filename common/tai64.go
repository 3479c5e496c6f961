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

package common

import "encoding/binary"

// tai64Epoch is the offset TAI64 labels add to a Unix timestamp so that the
// encoding stays a monotonically increasing unsigned integer across the
// 1970 epoch. This is the standard TAI64 convention (2^62 seconds).
const tai64Epoch = uint64(1) << 62

// Tai64 is a block timestamp: seconds since 1970-01-01 UTC, encoded in the
// TAI64 label space. It is a plain fixed-width integer, not wall-clock time
// with leap-second correction — the engine never interprets it, only
// stores and returns it.
type Tai64 uint64

// Tai64FromUnix converts a Unix timestamp (seconds since epoch) to Tai64.
func Tai64FromUnix(sec int64) Tai64 {
	return Tai64(uint64(sec) + tai64Epoch)
}

// Unix converts a Tai64 timestamp back to seconds since the Unix epoch.
func (t Tai64) Unix() int64 {
	return int64(uint64(t) - tai64Epoch)
}

// Bytes encodes t as its canonical 8-byte big-endian TAI64 label.
func (t Tai64) Bytes() [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(t))
	return b
}

// Tai64FromBytes decodes an 8-byte big-endian TAI64 label.
func Tai64FromBytes(b [8]byte) Tai64 {
	return Tai64(binary.BigEndian.Uint64(b[:]))
}
