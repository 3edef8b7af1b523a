package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caskdb/caskdb/internal/bytesize"
)

func TestRegistryDefaultsApplied(t *testing.T) {
	r := NewRegistry()
	var name string
	var count int
	var size bytesize.ByteSize

	r.AddString("name", "default-name", &name, false, "")
	r.AddInt("count", 42, &count, "")
	r.AddSize("size", "4KB", &size, "")

	assert.Equal(t, "default-name", name)
	assert.Equal(t, 42, count)
	assert.EqualValues(t, 4096, size)
}

func TestRegistryDuplicateNamePanics(t *testing.T) {
	r := NewRegistry()
	var a, b string
	r.AddString("dup", "", &a, false, "")

	assert.Panics(t, func() {
		r.AddString("dup", "", &b, false, "")
	})
}

func TestRegistrySetDefaultRetunes(t *testing.T) {
	r := NewRegistry()
	var mode string
	r.AddString("mode", "direct", &mode, false, "")

	r.SetDefault("mode", "adaptive")
	assert.Equal(t, "adaptive", mode)

	// A value applied from a source still wins over the retuned default.
	require.NoError(t, r.Apply("mode", "direct"))
	assert.Equal(t, "direct", mode)
}

func TestRegistrySetDefaultUnknownPanics(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() {
		r.SetDefault("nope", "x")
	})
}

func TestRegistryApplyTracksFound(t *testing.T) {
	r := NewRegistry()
	var path string
	r.AddString("db.path", "", &path, true, "")

	assert.Equal(t, []string{"db.path"}, r.MissingMandatory())

	require.NoError(t, r.Apply("db.path", "/tmp/db"))
	assert.Equal(t, "/tmp/db", path)
	assert.Empty(t, r.MissingMandatory())
}

func TestRegistryApplyUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Apply("ghost", "x"))
}

func TestRegistryMissingMandatoryOrder(t *testing.T) {
	r := NewRegistry()
	var a, b, c string
	r.AddString("first", "", &a, true, "")
	r.AddString("second", "", &b, false, "")
	r.AddString("third", "", &c, true, "")

	assert.Equal(t, []string{"first", "third"}, r.MissingMandatory())
}

func TestRegistryBindFlags(t *testing.T) {
	r := NewRegistry()
	var name string
	var on bool
	var count int
	var size bytesize.ByteSize
	r.AddString("name", "", &name, false, "")
	r.AddFlag("on", &on, "")
	r.AddInt("count", 1, &count, "")
	r.AddSize("size", "1KB", &size, "")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	r.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--name", "cask", "--on", "--count", "7", "--size", "2MB",
	}))
	r.MarkChanged(fs)

	assert.Equal(t, "cask", name)
	assert.True(t, on)
	assert.Equal(t, 7, count)
	assert.EqualValues(t, 2*1024*1024, size)
	assert.Empty(t, r.MissingMandatory())
}

func TestBoolValueLiterals(t *testing.T) {
	r := NewRegistry()
	var v bool
	r.AddBool("flag", false, &v, "")

	require.NoError(t, r.Apply("flag", "true"))
	assert.True(t, v)
	require.NoError(t, r.Apply("flag", "0"))
	assert.False(t, v)
	require.NoError(t, r.Apply("flag", "1"))
	assert.True(t, v)
	assert.Error(t, r.Apply("flag", "maybe"))
}
