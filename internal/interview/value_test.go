package interview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueJSONShapes(t *testing.T) {
	data, err := json.Marshal(StringValue("Yes"))
	require.NoError(t, err)
	assert.JSONEq(t, `"Yes"`, string(data))

	data, err = json.Marshal(SetValue("B", "A", "A"))
	require.NoError(t, err)
	assert.JSONEq(t, `["A","B"]`, string(data))

	var v Value
	require.NoError(t, json.Unmarshal([]byte(`"free text"`), &v))
	assert.False(t, v.IsSet())
	assert.Equal(t, "free text", v.Text())

	require.NoError(t, json.Unmarshal([]byte(`["X","Y"]`), &v))
	assert.True(t, v.IsSet())
	assert.Equal(t, []string{"X", "Y"}, v.Members())

	assert.Error(t, json.Unmarshal([]byte(`42`), &v))
}

func TestValueBlankness(t *testing.T) {
	assert.True(t, StringValue("").Blank())
	assert.False(t, StringValue("x").Blank())
	// An empty set is a recorded answer.
	assert.False(t, SetValue().Blank())
}
