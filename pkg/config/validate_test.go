package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caskdb/caskdb/pkg/store"
)

func validOptions() *Options {
	o := NewOptions()
	o.General.DBPath = "/var/lib/caskdb"
	return o
}

func TestValidateDefaults(t *testing.T) {
	storeOpts, err := Validate(validOptions())
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/caskdb", storeOpts.Path)
	assert.True(t, storeOpts.CreateIfMissing)
	assert.False(t, storeOpts.ErrorIfExists)
	assert.Equal(t, store.CompressionLZ4, storeOpts.Compression)
	assert.Equal(t, store.HashXXHash64, storeOpts.Hashing)
	assert.Equal(t, store.WriteBufferAdaptive, storeOpts.WriteBufferMode)
	assert.EqualValues(t, 32*1024*1024, storeOpts.WriteBufferSize)
}

func TestValidateCompressionValues(t *testing.T) {
	o := validOptions()

	o.Database.CompressionAlgorithm = "disabled"
	storeOpts, err := Validate(o)
	require.NoError(t, err)
	assert.Equal(t, store.CompressionNone, storeOpts.Compression)

	o.Database.CompressionAlgorithm = "snappy"
	_, err = Validate(o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snappy")
	assert.Contains(t, err.Error(), ParamCompression)
}

func TestValidateHashingValues(t *testing.T) {
	o := validOptions()

	o.Database.HashingAlgorithm = "murmurhash3-64"
	storeOpts, err := Validate(o)
	require.NoError(t, err)
	assert.Equal(t, store.HashMurmur3_64, storeOpts.Hashing)

	o.Database.HashingAlgorithm = "crc32"
	_, err = Validate(o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crc32")
	assert.Contains(t, err.Error(), ParamHashing)
}

func TestValidateWriteBufferValues(t *testing.T) {
	o := validOptions()

	o.Database.WriteBufferMode = "direct"
	storeOpts, err := Validate(o)
	require.NoError(t, err)
	assert.Equal(t, store.WriteBufferDirect, storeOpts.WriteBufferMode)

	o.Database.WriteBufferMode = "buffered"
	_, err = Validate(o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buffered")
	assert.Contains(t, err.Error(), ParamWriteBuffer)
}

func TestValidateLogLevelDelegation(t *testing.T) {
	o := validOptions()

	// "warning" is an alias the logger's parser accepts.
	o.Database.LogLevel = "warning"
	_, err := Validate(o)
	require.NoError(t, err)

	o.Database.LogLevel = "verbose"
	_, err = Validate(o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
	assert.Contains(t, err.Error(), ParamLogLevel)
}

func TestValidatePortRange(t *testing.T) {
	o := validOptions()
	o.Server.Port = 70000
	_, err := Validate(o)
	require.Error(t, err)

	o = validOptions()
	o.Server.Port = 0
	_, err = Validate(o)
	require.Error(t, err)
}

func TestValidateRejectsZeroSizes(t *testing.T) {
	o := validOptions()
	o.Database.WriteBufferSize = 0
	_, err := Validate(o)
	require.Error(t, err)

	o = validOptions()
	o.Server.NumThreads = 0
	_, err = Validate(o)
	require.Error(t, err)
}
