package store

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// Sum64 hashes b with the selected algorithm.
func (t HashType) Sum64(b []byte) uint64 {
	switch t {
	case HashMurmur3_64:
		return murmur3.Sum64(b)
	default:
		return xxhash.Sum64(b)
	}
}

// internalKey builds the on-disk key: an 8-byte big-endian hash prefix
// followed by the user key. The prefix spreads keys evenly across
// BadgerDB's keyspace regardless of user key distribution.
func (t HashType) internalKey(key []byte) []byte {
	ik := make([]byte, 8+len(key))
	binary.BigEndian.PutUint64(ik, t.Sum64(key))
	copy(ik[8:], key)
	return ik
}
