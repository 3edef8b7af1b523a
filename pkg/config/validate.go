package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/caskdb/caskdb/internal/logger"
	"github.com/caskdb/caskdb/pkg/store"
)

var structValidate = validator.New(validator.WithRequiredStructEnabled())

// Closed sets of enumerated option literals, each mapped to its typed
// engine mode. Adding a literal here is the only step needed to accept a
// new value.
var (
	compressionModes = map[string]store.CompressionType{
		"disabled": store.CompressionNone,
		"lz4":      store.CompressionLZ4,
	}
	hashingModes = map[string]store.HashType{
		"xxhash-64":      store.HashXXHash64,
		"murmurhash3-64": store.HashMurmur3_64,
	}
	writeBufferModes = map[string]store.WriteBufferMode{
		"direct":   store.WriteBufferDirect,
		"adaptive": store.WriteBufferAdaptive,
	}
)

// enumValue resolves an enumerated literal against its closed set.
func enumValue[T any](param, value string, allowed map[string]T) (T, error) {
	mode, ok := allowed[value]
	if !ok {
		var zero T
		return zero, &ValidationError{Param: param, Value: value}
	}
	return mode, nil
}

// Validate checks every enumerated option against its closed set, runs
// the range checks declared on the option structs, and materializes the
// typed storage engine options. The log level is validated by delegating
// to the logger's own parser.
func Validate(o *Options) (*store.Options, error) {
	if _, err := logger.ParseLevel(o.Database.LogLevel); err != nil {
		return nil, &ValidationError{Param: ParamLogLevel, Value: o.Database.LogLevel}
	}

	compression, err := enumValue(ParamCompression, o.Database.CompressionAlgorithm, compressionModes)
	if err != nil {
		return nil, err
	}
	hashing, err := enumValue(ParamHashing, o.Database.HashingAlgorithm, hashingModes)
	if err != nil {
		return nil, err
	}
	writeBuffer, err := enumValue(ParamWriteBuffer, o.Database.WriteBufferMode, writeBufferModes)
	if err != nil {
		return nil, err
	}

	if err := structValidate.Struct(o); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &store.Options{
		Path:            o.General.DBPath,
		CreateIfMissing: o.Database.CreateIfMissing,
		ErrorIfExists:   o.Database.ErrorIfExists,
		Compression:     compression,
		Hashing:         hashing,
		WriteBufferMode: writeBuffer,
		WriteBufferSize: o.Database.WriteBufferSize.Uint64(),
	}, nil
}
