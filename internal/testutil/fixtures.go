// Package testutil provides fixtures and helpers for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/swagg-dev/swagg/internal/fileutil"
	"github.com/swagg-dev/swagg/parser"
)

// SessionYAML is the smallest document exercising every pipeline phase:
// one schema, one path with two operations and a response with a payload.
const SessionYAML = `
openapi: 3.0.3
info:
  title: Session API
  description: Manages the current session.
  version: 1.0.0
paths:
  /session:
    get:
      operationId: getSession
      responses:
        "200":
          description: ok
        "404":
          description: no session
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/SessionUser'
    post:
      operationId: createSession
      responses:
        "201":
          description: created
components:
  schemas:
    SessionUser:
      type: object
      required: [firstName, lastName]
      properties:
        firstName:
          type: string
        lastName:
          type: string
        age:
          type: integer
`

// PetStoreYAML covers parameters, request bodies, nested promotion, enums,
// passthrough types and inline operation bodies.
const PetStoreYAML = `
openapi: 3.0.3
info:
  title: Pet Store
  description: Sells pets.
  termsOfService: https://example.com/terms
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      summary: List pets
      parameters:
        - $ref: '#/components/parameters/Limit'
        - $ref: '#/components/parameters/Status'
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
          description: unexpected error
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
    post:
      operationId: createPet
      requestBody:
        $ref: '#/components/requestBodies/NewPet'
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
        "400":
          $ref: '#/components/responses/BadRequest'
  /pets/{petId}:
    parameters:
      - name: petId
        in: path
        required: true
        schema:
          type: string
    get:
      operationId: getPet
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
        "404":
          description: not found
    patch:
      operationId: updatePet
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                name:
                  type: string
      responses:
        "200":
          description: updated
          content:
            application/json:
              schema:
                type: object
                required: [updated]
                properties:
                  updated:
                    type: boolean
components:
  parameters:
    Limit:
      name: limit
      in: query
      description: Page size.
      schema:
        type: integer
        format: int32
    Status:
      name: status
      in: query
      schema:
        type: string
        enum: [available, pending, sold]
  requestBodies:
    NewPet:
      description: A pet to add.
      required: true
      content:
        application/json:
          schema:
            $ref: '#/components/schemas/Pet'
  responses:
    BadRequest:
      description: invalid input
      content:
        application/json:
          schema:
            $ref: '#/components/schemas/Error'
  securitySchemes:
    ApiKey:
      type: apiKey
      name: X-API-Key
      in: header
  schemas:
    Pet:
      type: object
      description: A pet for sale.
      required: [id, name]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
        tag:
          type: string
          x-go-type: github.com/google/uuid.UUID
        born_at:
          type: string
          format: date-time
        owner:
          type: object
          properties:
            email:
              type: string
        tags:
          type: array
          items:
            type: object
            properties:
              label:
                type: string
        kind:
          type: string
          enum: [cat, dog]
    Error:
      type: object
      required: [message]
      properties:
        message:
          type: string
`

// OneOfYAML holds one supported and one unsupported schema.
const OneOfYAML = `
openapi: 3.0.3
info: {title: Shapes, version: "1"}
paths: {}
components:
  schemas:
    Circle:
      type: object
      properties:
        radius: {type: number}
    Shape:
      oneOf:
        - $ref: '#/components/schemas/Circle'
`

// MustParse parses src and fails the test on error.
func MustParse(t testing.TB, src string) *parser.Document {
	t.Helper()
	doc, err := parser.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

// WriteSpec writes src to name in a fresh temporary directory and returns
// the file path.
func WriteSpec(t testing.TB, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), fileutil.OwnerReadWrite); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// NewSimpleDocument returns a minimal document with no paths or components.
func NewSimpleDocument() *parser.Document {
	return &parser.Document{
		OpenAPI: "3.0.3",
		Info: &parser.Info{
			Title:   "Test API",
			Version: "1.0.0",
		},
		Paths: parser.NewOrderedMap[*parser.PathItem](),
	}
}
