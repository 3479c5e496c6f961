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

// InsertResult reports whether every slot targeted by state_insert_range
// already held a value before the call.
type InsertResult bool

const (
	AllOverwritten InsertResult = true
	SomeNew        InsertResult = false
)

// RemoveResult reports whether every slot targeted by state_remove_range
// was previously set.
type RemoveResult bool

const (
	AllRemoved  RemoveResult = true
	SomeAbsent  RemoveResult = false
)
