package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(sample{Name: "repo", Count: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"repo","count":3}`, string(data))
}

func TestUnmarshalJSON(t *testing.T) {
	result, err := UnmarshalJSON[sample]([]byte(`{"name":"repo","count":3}`))
	require.NoError(t, err)
	assert.Equal(t, "repo", result.Name)
	assert.Equal(t, 3, result.Count)
}

func TestUnmarshalJSON_Invalid(t *testing.T) {
	_, err := UnmarshalJSON[sample]([]byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal JSON")
}

func TestUnmarshalJSON_Slice(t *testing.T) {
	result, err := UnmarshalJSON[[]sample]([]byte(`[{"name":"a"},{"name":"b"}]`))
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "b", result[1].Name)
}

func TestPrettyPrint(t *testing.T) {
	out, err := PrettyPrint(sample{Name: "repo"})
	require.NoError(t, err)
	assert.Contains(t, out, "\n")
	assert.Contains(t, out, `"name": "repo"`)
}
