package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagg-dev/swagg/oaserrors"
	"go.yaml.in/yaml/v4"
)

const petstore = `
openapi: 3.0.3
info:
  title: Pet Store
  description: Sells pets.
  termsOfService: https://example.com/terms
  version: 1.0.0
paths:
  /pets:
    post:
      operationId: createPet
      responses:
        "201":
          description: created
    get:
      operationId: listPets
      parameters:
        - $ref: '#/components/parameters/Limit'
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
        default:
          description: error
  /pets/{id}:
    get:
      operationId: getPet
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "404":
          description: missing
components:
  parameters:
    Limit:
      name: limit
      in: query
      schema:
        type: integer
        format: int32
  schemas:
    Zebra:
      type: string
    Pet:
      type: object
      required: [name]
      properties:
        name:
          type: string
        tag:
          type: string
          x-go-type: github.com/google/uuid.UUID
`

func TestParseKeepsDocumentOrder(t *testing.T) {
	doc, err := Parse([]byte(petstore))
	require.NoError(t, err)

	assert.Equal(t, "Pet Store", doc.Info.Title)
	assert.Equal(t, "https://example.com/terms", doc.Info.TermsOfService)
	assert.Equal(t, []string{"/pets", "/pets/{id}"}, doc.Paths.Keys())
	assert.Equal(t, []string{"Zebra", "Pet"}, doc.Components.Schemas.Keys())

	pet, ok := doc.Components.Schemas.Get("Pet")
	require.True(t, ok)
	assert.Equal(t, []string{"name", "tag"}, pet.Properties.Keys())
	assert.True(t, pet.IsRequired("name"))
	assert.False(t, pet.IsRequired("tag"))

	tag, _ := pet.Properties.Get("tag")
	assert.Equal(t, "github.com/google/uuid.UUID", tag.GoType())

	pets, _ := doc.Paths.Get("/pets")
	require.NotNil(t, pets.Operation("GET"))
	assert.Equal(t, "listPets", pets.Operation("get").OperationID)
	assert.Nil(t, pets.Operation("delete"))

	entries := pets.Get.Responses.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "200", entries[0].Status)
	assert.Equal(t, "default", entries[1].Status)
}

func TestResponsesKeepDuplicateStatus(t *testing.T) {
	src := `
"200":
  description: first
"200":
  description: second
  x-variant-name: Cached
x-internal: true
`
	var r Responses
	require.NoError(t, yaml.Unmarshal([]byte(src), &r))
	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Response.Description)
	assert.Equal(t, "", entries[0].Response.VariantName())
	assert.Equal(t, "Cached", entries[1].Response.VariantName())
	assert.Equal(t, true, r.Extra["x-internal"])
	assert.Equal(t, "first", r.Get("200").Description)
}

func TestResponsesRejectInvalidStatus(t *testing.T) {
	var r Responses
	err := yaml.Unmarshal([]byte(`"99": {description: nope}`), &r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status code '99'")
}

func TestOrderedMap(t *testing.T) {
	t.Run("rejects duplicate keys", func(t *testing.T) {
		var m OrderedMap[int]
		err := yaml.Unmarshal([]byte("a: 1\nb: 2\na: 3\n"), &m)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate key "a"`)
	})

	t.Run("set keeps first position", func(t *testing.T) {
		m := NewOrderedMap[string]()
		m.Set("b", "1")
		m.Set("a", "2")
		m.Set("b", "3")
		assert.Equal(t, []string{"b", "a"}, m.Keys())
		v, _ := m.Get("b")
		assert.Equal(t, "3", v)

		var seen []string
		for k, v := range m.All() {
			seen = append(seen, k+"="+v)
		}
		assert.Equal(t, []string{"b=3", "a=2"}, seen)
	})

	t.Run("nil map reads as empty", func(t *testing.T) {
		var m *OrderedMap[string]
		assert.Equal(t, 0, m.Len())
		assert.Nil(t, m.Keys())
		_, ok := m.Get("x")
		assert.False(t, ok)
		for range m.All() {
			t.Fatal("nil map should not yield")
		}
	})

	t.Run("keys are copied", func(t *testing.T) {
		m := NewOrderedMap[int]()
		m.Set("a", 1)
		keys := m.Keys()
		keys[0] = "z"
		assert.Equal(t, []string{"a"}, m.Keys())
	})
}

func TestSchemaTypes(t *testing.T) {
	tests := []struct {
		name    string
		typ     any
		want    string
		wantErr bool
	}{
		{name: "string", typ: "string", want: "string"},
		{name: "absent", typ: nil, want: ""},
		{name: "nullable 3.1 form", typ: []any{"integer", "null"}, want: "integer"},
		{name: "union", typ: []any{"integer", "string"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := (&Schema{Type: tt.typ}).TypeName()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "empty", input: "  \n", message: "document is empty"},
		{name: "swagger 2", input: "swagger: '2.0'\ninfo: {title: t, version: '1'}\n", message: "missing openapi version field"},
		{name: "wrong version", input: "openapi: 2.0.0\n", message: `unsupported openapi version "2.0.0"`},
		{name: "bad yaml", input: "openapi: [3.0\n", message: "invalid document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrParse))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseWithOptionsSources(t *testing.T) {
	t.Run("requires exactly one source", func(t *testing.T) {
		_, err := ParseWithOptions()
		require.Error(t, err)
		_, err = ParseWithOptions(WithBytes([]byte("x")), WithFilePath("y"))
		require.Error(t, err)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "api.yaml")
		require.NoError(t, os.WriteFile(path, []byte(petstore), 0o600))
		res, err := ParseWithOptions(WithFilePath(path))
		require.NoError(t, err)
		assert.Equal(t, path, res.SourcePath)
		assert.Equal(t, "3.0.3", res.Version)
	})

	t.Run("reader with source name", func(t *testing.T) {
		res, err := ParseWithOptions(WithReader(strings.NewReader(petstore)), WithSourceName("inline"))
		require.NoError(t, err)
		assert.Equal(t, "inline", res.SourcePath)
	})

	t.Run("file size limit", func(t *testing.T) {
		_, err := ParseWithOptions(WithReader(strings.NewReader(petstore)), WithMaxFileSize(10))
		require.Error(t, err)
		assert.True(t, errors.Is(err, oaserrors.ErrResourceLimit))
	})

	t.Run("json input", func(t *testing.T) {
		doc, err := Parse([]byte(`{"openapi":"3.1.0","info":{"title":"J","version":"1"},"paths":{"/b":{},"/a":{}}}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"/b", "/a"}, doc.Paths.Keys())
	})
}

func TestValidateStructure(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		_, err := ParseWithOptions(WithBytes([]byte(petstore)), WithValidateStructure(true))
		require.NoError(t, err)
	})

	t.Run("missing info", func(t *testing.T) {
		err := ValidateStructure([]byte("openapi: 3.0.3\npaths: {}\n"))
		require.Error(t, err)
	})
}
