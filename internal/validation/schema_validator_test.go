package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A trimmed-down copy of the catalog schema, enough to exercise the
// shapes the real config uses: nested arrays, enums, and numeric bounds.
const boxSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["version", "boxes"],
	"properties": {
		"version": {"type": "string"},
		"boxes": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name", "ticket_cost", "items"],
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"ticket_cost": {"type": "integer", "minimum": 0},
					"items": {
						"type": "array",
						"minItems": 1,
						"items": {
							"type": "object",
							"required": ["name", "rarity", "drop_weight"],
							"properties": {
								"name": {"type": "string", "minLength": 1},
								"rarity": {"type": "string", "enum": ["common", "rare", "epic", "legendary", "mythic"]},
								"drop_weight": {"type": "number", "exclusiveMinimum": 0}
							}
						}
					}
				}
			}
		}
	}
}`

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "box.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t, boxSchema)

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "valid catalog",
			data: `{"version": "1", "boxes": [{"name": "Copper Box", "ticket_cost": 10,
				"items": [{"name": "copper coin", "rarity": "common", "drop_weight": 90}]}]}`,
		},
		{
			name:    "missing boxes",
			data:    `{"version": "1"}`,
			wantErr: "required",
		},
		{
			name: "unknown rarity",
			data: `{"version": "1", "boxes": [{"name": "Copper Box", "ticket_cost": 10,
				"items": [{"name": "copper coin", "rarity": "shiny", "drop_weight": 90}]}]}`,
			wantErr: "enum",
		},
		{
			name: "zero drop weight",
			data: `{"version": "1", "boxes": [{"name": "Copper Box", "ticket_cost": 10,
				"items": [{"name": "copper coin", "rarity": "common", "drop_weight": 0}]}]}`,
			wantErr: "exclusiveMinimum",
		},
		{
			name: "negative ticket cost",
			data: `{"version": "1", "boxes": [{"name": "Copper Box", "ticket_cost": -1,
				"items": [{"name": "copper coin", "rarity": "common", "drop_weight": 90}]}]}`,
			wantErr: "minimum",
		},
		{
			name:    "empty box pool",
			data:    `{"version": "1", "boxes": [{"name": "Copper Box", "ticket_cost": 10, "items": []}]}`,
			wantErr: "minItems",
		},
		{
			name:    "malformed JSON",
			data:    `{"version": "1", "boxes": }`,
			wantErr: "parse JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateBytes([]byte(tt.data), schemaPath)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeSchema(t, boxSchema)

	dataPath := filepath.Join(t.TempDir(), "catalog.json")
	data := `{"version": "1", "boxes": [{"name": "Copper Box", "ticket_cost": 10,
		"items": [{"name": "copper coin", "rarity": "common", "drop_weight": 90}]}]}`
	require.NoError(t, os.WriteFile(dataPath, []byte(data), 0o644))

	assert.NoError(t, v.ValidateFile(dataPath, schemaPath))

	err := v.ValidateFile(filepath.Join(t.TempDir(), "missing.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestSchemaValidator_MissingSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), "nonexistent.schema.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load schema")
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator().(*validator)
	schemaPath := writeSchema(t, boxSchema)

	data := []byte(`{"version": "1", "boxes": [{"name": "Copper Box", "ticket_cost": 10,
		"items": [{"name": "copper coin", "rarity": "common", "drop_weight": 90}]}]}`)

	require.NoError(t, v.ValidateBytes(data, schemaPath))
	assert.Len(t, v.compiled, 1)

	require.NoError(t, v.ValidateBytes(data, schemaPath))
	assert.Len(t, v.compiled, 1)
}

func TestSchemaValidator_ResolvesRepoRelativePaths(t *testing.T) {
	// The shipped catalog schema is addressed relative to the module
	// root; validation must find it from a package directory too.
	v := NewSchemaValidator()

	data := `{"version": "1", "boxes": [{"name": "Copper Box", "ticket_cost": 10, "active": true,
		"items": [{"name": "copper coin", "rarity": "common", "base_points": 1, "drop_weight": 90}]}]}`
	assert.NoError(t, v.ValidateBytes([]byte(data), "configs/schemas/catalog.schema.json"))
}
