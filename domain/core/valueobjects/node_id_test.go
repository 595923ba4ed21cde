package valueobjects

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeIDJSONEscapesSpecialCharacters(t *testing.T) {
	// Upstream IDs are opaque strings and may carry quotes or backslashes.
	id, err := NewNodeID(`concept "pricing"\v2`)
	require.NoError(t, err)

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.True(t, json.Valid(data), "marshaled NodeID must be valid JSON: %s", data)

	var decoded NodeID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, id.Equals(decoded))
}

func TestNodeIDUnmarshalRejectsNonString(t *testing.T) {
	var id NodeID
	assert.Error(t, json.Unmarshal([]byte(`42`), &id))

	require.NoError(t, json.Unmarshal([]byte(`null`), &id))
	assert.True(t, id.IsZero())
}
