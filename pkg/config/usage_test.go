package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	NewOptions().Registry().PrintUsage(&buf)
	out := buf.String()

	assert.Contains(t, out, "--db.path=<value> (mandatory)")
	assert.Contains(t, out, "--foreground\n")
	assert.Contains(t, out, "(default: lz4)")
	assert.Contains(t, out, "--help")
	assert.Contains(t, out, "--generate-doc")
	// The retuned default is what the listing shows.
	assert.Contains(t, out, "--write-buffer.mode=<value> (default: adaptive)")
}

func TestGenerateDoc(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOptions().Registry().GenerateDoc(&buf))

	var docs []paramDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &docs))
	require.NotEmpty(t, docs)

	byName := make(map[string]paramDoc, len(docs))
	index := make(map[string]int, len(docs))
	for i, d := range docs {
		byName[d.Name] = d
		index[d.Name] = i
	}

	assert.True(t, byName[ParamDBPath].Mandatory)
	assert.True(t, byName[ParamForeground].Flag)
	assert.Equal(t, "adaptive", byName[ParamWriteBuffer].Default)
	assert.NotEmpty(t, byName[ParamCompression].Description)

	// Registration order is preserved in the dump.
	assert.Less(t, index[ParamConfigFile], index[ParamDBPath])
	assert.Less(t, index[ParamDBPath], index["server.port"])
}
