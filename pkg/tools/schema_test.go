package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchemaCalculator(t *testing.T) {
	schema := GenerateSchema[calculatorInput]()

	assert.Equal(t, "object", schema["type"])
	assert.NotContains(t, schema, "$schema")
	assert.NotContains(t, schema, "$ref")
	assert.Equal(t, false, schema["additionalProperties"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "properties missing: %#v", schema)
	require.Contains(t, props, "a")
	require.Contains(t, props, "b")

	a := props["a"].(map[string]any)
	assert.Equal(t, "number", a["type"])
	assert.Equal(t, "First number to add.", a["description"])

	assert.ElementsMatch(t, []any{"a", "b"}, schema["required"])
}

func TestGenerateSchemaSayHello(t *testing.T) {
	schema := GenerateSchema[sayHelloInput]()

	props := schema["properties"].(map[string]any)
	name := props["name"].(map[string]any)
	assert.Equal(t, "string", name["type"])
	assert.ElementsMatch(t, []any{"name"}, schema["required"])
}

func TestBuiltinsDescribeThemselves(t *testing.T) {
	for _, s := range Builtins() {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Description, s.Name)
		assert.NotNil(t, s.Parameters, s.Name)
		assert.NotNil(t, s.Handler, s.Name)
	}
}
