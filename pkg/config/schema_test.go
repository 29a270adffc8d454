package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "sharefs configuration", doc["title"])

	raw := string(data)
	for _, key := range []string{`"share"`, `"max_read_size"`, `"jwt_secret"`, `"shutdown_timeout"`, `"profile_types"`} {
		assert.Contains(t, raw, key)
	}
	assert.Contains(t, raw, "Go duration")
	assert.Contains(t, raw, "Byte size")
}
