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

import "github.com/chainvm/corevm/common"

// multiKey builds the physical ContractsState key: contract_id ‖ key256,
// 64 bytes, with the contract id acting as the scan prefix.
func multiKey(contractID common.ContractId, key [32]byte) []byte {
	mk := make([]byte, 64)
	copy(mk[:32], contractID.Bytes())
	copy(mk[32:], key[:])
	return mk
}
