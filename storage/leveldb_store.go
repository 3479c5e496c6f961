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

package storage

import (
	"encoding/binary"

	"github.com/VictoriaMetrics/fastcache"
	lru "github.com/hashicorp/golang-lru"
	"github.com/syndtr/goleveldb/leveldb"
	ldbstorage "github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/chainvm/corevm/common"
)

// blockMetaCacheSize bounds the LRU used for block_time/block_id lookups;
// a node only ever asks about recent heights during execution.
const blockMetaCacheSize = 2048

// valueCacheBytes bounds the fastcache fronting ContractsState reads.
const valueCacheBytes = 32 * 1024 * 1024

// LevelDBStore is a PrefixedStore backed by a single goleveldb database.
// Column families are emulated by tagging every physical key with a
// one-byte column id, the same flat-keyspace-with-prefixes convention the
// teacher repo's rawdb accessors use for preimages, code and trie nodes.
type LevelDBStore struct {
	db     *leveldb.DB
	values *fastcache.Cache
	meta   *lru.Cache
}

// Open creates or opens a LevelDBStore at the given filesystem path.
func Open(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return newStore(db)
}

// OpenInMemory creates a LevelDBStore over an in-memory storage backend,
// used by tests and the demo binary's ephemeral mode.
func OpenInMemory() (*LevelDBStore, error) {
	db, err := leveldb.Open(ldbstorage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return newStore(db)
}

func newStore(db *leveldb.DB) (*LevelDBStore, error) {
	meta, err := lru.New(blockMetaCacheSize)
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{
		db:     db,
		values: fastcache.New(valueCacheBytes),
		meta:   meta,
	}, nil
}

// Close releases the underlying database handle.
func (s *LevelDBStore) Close() error {
	s.values.Reset()
	return s.db.Close()
}

func physicalKey(column Column, key []byte) []byte {
	pk := make([]byte, 1+len(key))
	pk[0] = byte(column)
	copy(pk[1:], key)
	return pk
}

func heightKey(height uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], height)
	return b[:]
}

func (s *LevelDBStore) Get(column Column, key []byte) ([]byte, bool, error) {
	pk := physicalKey(column, key)
	if column == ColumnContractsState {
		if v, ok := s.values.HasGet(nil, pk); ok {
			return v, true, nil
		}
	}
	v, err := s.db.Get(pk, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if column == ColumnContractsState {
		s.values.Set(pk, v)
	}
	return v, true, nil
}

func (s *LevelDBStore) ContainsKey(column Column, key []byte) (bool, error) {
	return s.db.Has(physicalKey(column, key), nil)
}

func (s *LevelDBStore) Insert(column Column, key, value []byte) ([]byte, bool, error) {
	prior, hadPrior, err := s.Get(column, key)
	if err != nil {
		return nil, false, err
	}
	pk := physicalKey(column, key)
	if err := s.db.Put(pk, value, nil); err != nil {
		return nil, false, err
	}
	if column == ColumnContractsState {
		s.values.Set(pk, value)
	}
	return prior, hadPrior, nil
}

func (s *LevelDBStore) Remove(column Column, key []byte) ([]byte, bool, error) {
	prior, hadPrior, err := s.Get(column, key)
	if err != nil {
		return nil, false, err
	}
	pk := physicalKey(column, key)
	if err := s.db.Delete(pk, nil); err != nil {
		return nil, false, err
	}
	if column == ColumnContractsState {
		s.values.Del(pk)
	}
	return prior, hadPrior, nil
}

func (s *LevelDBStore) IterAll(column Column, prefix, start []byte, dir Direction) Iterator {
	physPrefix := physicalKey(column, prefix)
	physStart := physicalKey(column, start)
	inner := s.db.NewIterator(util.BytesPrefix(physPrefix), nil)
	return &levelDBIterator{inner: inner, start: physStart, dir: dir}
}

func (s *LevelDBStore) BlockTime(height uint32) (common.Tai64, error) {
	cacheKey := "t:" + string(heightKey(height))
	if v, ok := s.meta.Get(cacheKey); ok {
		return v.(common.Tai64), nil
	}
	raw, ok, err := s.Get(ColumnBlockTimes, heightKey(height))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, common.ErrNotFound
	}
	var arr [8]byte
	copy(arr[:], raw)
	ts := common.Tai64FromBytes(arr)
	s.meta.Add(cacheKey, ts)
	return ts, nil
}

func (s *LevelDBStore) GetBlockID(height uint32) (common.Bytes32, bool, error) {
	cacheKey := "i:" + string(heightKey(height))
	if v, ok := s.meta.Get(cacheKey); ok {
		return v.(common.Bytes32), true, nil
	}
	raw, ok, err := s.Get(ColumnBlockIds, heightKey(height))
	if err != nil || !ok {
		return common.Bytes32{}, ok, err
	}
	id := common.BytesToBytes32(raw)
	s.meta.Add(cacheKey, id)
	return id, true, nil
}

func (s *LevelDBStore) Root(contractID common.ContractId) (common.Bytes32, error) {
	raw, ok, err := s.Get(ColumnContractRoots, contractID.Bytes())
	if err != nil {
		return common.Bytes32{}, err
	}
	if !ok {
		return common.Bytes32{}, nil
	}
	return common.BytesToBytes32(raw), nil
}

// PutBlockTime seeds the block_time(height) host query. Not part of the
// PrefixedStore contract — a real deployment populates this column as
// blocks are imported, outside CSRE's scope.
func (s *LevelDBStore) PutBlockTime(height uint32, ts common.Tai64) error {
	b := ts.Bytes()
	_, _, err := s.Insert(ColumnBlockTimes, heightKey(height), b[:])
	return err
}

// PutBlockID seeds the block_hash(height) host query.
func (s *LevelDBStore) PutBlockID(height uint32, id common.Bytes32) error {
	_, _, err := s.Insert(ColumnBlockIds, heightKey(height), id.Bytes())
	return err
}

// PutRoot seeds a contract's Merkle root.
func (s *LevelDBStore) PutRoot(contractID common.ContractId, root common.Bytes32) error {
	_, _, err := s.Insert(ColumnContractRoots, contractID.Bytes(), root.Bytes())
	return err
}

type levelDBIterator struct {
	inner  iteratorLike
	start  []byte
	dir    Direction
	began  bool
}

// iteratorLike is the subset of goleveldb's iterator.Iterator this package
// depends on, named locally so the field above stays readable without an
// extra import alias at every call site.
type iteratorLike interface {
	Next() bool
	Prev() bool
	Last() bool
	Seek(key []byte) bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

func (it *levelDBIterator) Next() bool {
	if !it.began {
		it.began = true
		if it.dir == Backward {
			if len(it.start) == 0 {
				return it.inner.Last()
			}
			return it.inner.Seek(it.start)
		}
		return it.inner.Seek(it.start)
	}
	if it.dir == Backward {
		return it.inner.Prev()
	}
	return it.inner.Next()
}

func (it *levelDBIterator) Key() []byte {
	k := it.inner.Key()
	cp := make([]byte, len(k)-1)
	copy(cp, k[1:])
	return cp
}

func (it *levelDBIterator) Value() []byte {
	v := it.inner.Value()
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp
}

func (it *levelDBIterator) Error() error { return it.inner.Error() }
func (it *levelDBIterator) Release()     { it.inner.Release() }
