package store

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// Value encoding markers. The first byte of every stored value says how
// the rest is encoded; this is part of the data format.
const (
	markerRaw byte = 0x0
	markerLZ4 byte = 0x1
)

// Values below this size are stored raw even when compression is on;
// the lz4 framing would cost more than it saves.
const compressionThreshold = 64

// maxDecodedSize bounds the original-length header of a compressed
// record, so a corrupted header cannot demand an arbitrary allocation.
const maxDecodedSize = 1 << 30

// encodeValue serializes a user value per the compression mode.
// Incompressible values fall back to raw storage.
func encodeValue(ct CompressionType, value []byte) []byte {
	if ct != CompressionLZ4 || len(value) < compressionThreshold {
		return append([]byte{markerRaw}, value...)
	}

	var compressor lz4.Compressor
	dst := make([]byte, lz4.CompressBlockBound(len(value)))
	n, err := compressor.CompressBlock(value, dst)
	if err != nil || n == 0 || n >= len(value) {
		return append([]byte{markerRaw}, value...)
	}

	encoded := make([]byte, 0, 1+binary.MaxVarintLen64+n)
	encoded = append(encoded, markerLZ4)
	encoded = binary.AppendUvarint(encoded, uint64(len(value)))
	return append(encoded, dst[:n]...)
}

// decodeValue reverses encodeValue. Decoding does not depend on the
// configured compression mode, so a database written with compression
// enabled stays readable after it is disabled.
func decodeValue(encoded []byte) ([]byte, error) {
	if len(encoded) == 0 {
		return nil, fmt.Errorf("empty stored value")
	}

	switch encoded[0] {
	case markerRaw:
		value := make([]byte, len(encoded)-1)
		copy(value, encoded[1:])
		return value, nil
	case markerLZ4:
		origLen, n := binary.Uvarint(encoded[1:])
		if n <= 0 {
			return nil, fmt.Errorf("corrupt compressed value header")
		}
		if origLen > maxDecodedSize {
			return nil, fmt.Errorf("corrupt compressed value header: claimed size %d", origLen)
		}
		value := make([]byte, origLen)
		written, err := lz4.UncompressBlock(encoded[1+n:], value)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress value: %w", err)
		}
		return value[:written], nil
	default:
		return nil, fmt.Errorf("unknown value encoding marker 0x%x", encoded[0])
	}
}
