package email_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/randalmurphal/parlay/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTool_Spec(t *testing.T) {
	st := email.NewSearchTool(loadTestStore(t))

	spec := st.Spec()
	assert.Equal(t, "email_search", spec.Name)
	assert.Contains(t, spec.Description, "lexical search")

	var schema map[string]any
	require.NoError(t, json.Unmarshal(spec.Parameters, &schema))
	props := schema["properties"].(map[string]any)
	assert.Contains(t, props, "query")
	assert.Contains(t, props, "after")
	assert.Contains(t, props, "before")
}

func TestSearchTool_Call(t *testing.T) {
	st := email.NewSearchTool(loadTestStore(t))

	out, err := st.Call(context.Background(), json.RawMessage(`{"query":"invoice"}`))
	require.NoError(t, err)

	results, ok := out.([]email.Email)
	require.True(t, ok)
	require.NotEmpty(t, results)
	assert.Contains(t, results[0].Subject, "invoice")
}

func TestSearchTool_Call_NoMatchesReturnsEmptyList(t *testing.T) {
	st := email.NewSearchTool(loadTestStore(t))

	out, err := st.Call(context.Background(), json.RawMessage(`{"query":"zeppelin"}`))
	require.NoError(t, err)

	results, ok := out.([]email.Email)
	require.True(t, ok)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchTool_Call_BadArguments(t *testing.T) {
	st := email.NewSearchTool(loadTestStore(t))

	_, err := st.Call(context.Background(), json.RawMessage(`{"query":`))
	assert.Error(t, err)

	_, err = st.Call(context.Background(), json.RawMessage(`{"query":"x","before":"bogus"}`))
	assert.Error(t, err)
}
