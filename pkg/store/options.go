// Package store implements the persistent key-value storage engine on
// BadgerDB. Keys are namespaced by a 64-bit hash prefix and values may
// be lz4-compressed, both selected by validated configuration modes.
package store

// CompressionType selects the value compression algorithm.
type CompressionType int

const (
	CompressionNone CompressionType = iota
	CompressionLZ4
)

// HashType selects the key hashing algorithm. The choice is part of the
// on-disk layout: changing it on an existing database makes previously
// written keys unreachable.
type HashType int

const (
	HashXXHash64 HashType = iota
	HashMurmur3_64
)

// WriteBufferMode controls write durability. Direct syncs every write to
// disk before acknowledging; adaptive lets the engine batch syncs.
type WriteBufferMode int

const (
	WriteBufferDirect WriteBufferMode = iota
	WriteBufferAdaptive
)

// Options are the validated, typed storage engine options.
type Options struct {
	Path            string
	CreateIfMissing bool
	ErrorIfExists   bool
	Compression     CompressionType
	Hashing         HashType
	WriteBufferMode WriteBufferMode
	WriteBufferSize uint64
}
