package emit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagg-dev/swagg/binder"
	"github.com/swagg-dev/swagg/highway"
	"github.com/swagg-dev/swagg/internal/testutil"
	"github.com/swagg-dev/swagg/oaserrors"
)

func emitDoc(t *testing.T, src string) *Tree {
	t.Helper()
	doc := testutil.MustParse(t, src)
	g, _, err := highway.Build(doc)
	require.NoError(t, err)
	ops, _, err := binder.Bind(doc, g)
	require.NoError(t, err)
	tree, err := Emit(g, ops, Meta{
		Title:          doc.Info.Title,
		Description:    doc.Info.Description,
		TermsOfService: doc.Info.TermsOfService,
		Version:        doc.Info.Version,
	})
	require.NoError(t, err)
	return tree
}

func moduleNames(tree *Tree) []string {
	var out []string
	for _, m := range tree.Modules {
		out = append(out, m.Name)
	}
	return out
}

func TestEmitSession(t *testing.T) {
	tree := emitDoc(t, testutil.SessionYAML)

	assert.Equal(t, DefaultPackage, tree.Package)
	assert.Equal(t, DefaultRuntime, tree.Runtime)
	assert.Equal(t, []string{
		ModuleParameters, ModuleRequestBodies, ModuleResponses, ModuleSchemas, ModulePaths, ModuleAPI,
	}, moduleNames(tree))
	assert.Equal(t, Doc{
		"Package api is generated from the OpenAPI description of Session API.",
		"",
		"Manages the current session.",
		"",
		"API version: 1.0.0",
	}, tree.Doc)

	schemas := tree.Module(ModuleSchemas)
	require.Len(t, schemas.Decls, 1)
	user, ok := schemas.Decls[0].(*StructDecl)
	require.True(t, ok)
	assert.Equal(t, "SessionUser", user.Name)
	assert.Equal(t, []Field{
		{Name: "FirstName", Type: Builtin("string"), Attributes: []Attribute{{Key: "json", Value: "firstName"}}},
		{Name: "LastName", Type: Builtin("string"), Attributes: []Attribute{{Key: "json", Value: "lastName"}}},
		{Name: "Age", Type: PointerTo(Builtin("int64")), Attributes: []Attribute{{Key: "json", Value: "age,omitempty"}}},
	}, user.Fields)

	paths := tree.Module(ModulePaths)
	require.Len(t, paths.Decls, 1)
	scope, ok := paths.Decls[0].(*ScopeDecl)
	require.True(t, ok)
	assert.Equal(t, "/session", scope.Path)
	require.Len(t, scope.Decls, 2)

	get, ok := scope.Decls[0].(*UnionDecl)
	require.True(t, ok)
	assert.Equal(t, "GetSessionResponse", get.Name)
	assert.Equal(t, "isGetSessionResponse", get.Marker)
	require.Len(t, get.Variants, 2)
	assert.Equal(t, "GetSessionResponseOk", get.Variants[0].Name)
	assert.Equal(t, 200, get.Variants[0].Status)
	assert.Nil(t, get.Variants[0].Payload)
	assert.Equal(t, "GetSessionResponseNotFound", get.Variants[1].Name)
	require.NotNil(t, get.Variants[1].Payload)
	assert.Equal(t, Named("SessionUser"), *get.Variants[1].Payload)
	assert.Equal(t, "application/json", get.Variants[1].ContentType)
	assert.Equal(t, "CreateSessionResponse", scope.Decls[1].DeclName())

	api := tree.Module(ModuleAPI)
	require.Len(t, api.Decls, 1)
	svc, ok := api.Decls[0].(*ServiceDecl)
	require.True(t, ok)
	assert.Equal(t, "SessionAPI", svc.Name)
	assert.Equal(t, "NewSessionAPI", svc.Constructor)
	require.Len(t, svc.Methods, 2)
	assert.Equal(t, "BindGetSession", svc.Methods[0].Name)
	assert.Equal(t, Route{Method: "GET", Pattern: "/session", Response: Named("GetSessionResponse")}, svc.Methods[0].Route)
	assert.Equal(t, "BindCreateSession", svc.Methods[1].Name)
}

func TestEmitPetStore(t *testing.T) {
	tree := emitDoc(t, testutil.PetStoreYAML)

	var names []string
	for _, d := range tree.Decls() {
		names = append(names, d.DeclName())
	}
	assert.Equal(t, []string{
		"Limit", "Status",
		"NewPet", "UpdatePetBody",
		"BadRequest", "ListPetsOk", "UpdatePetOk",
		"Pet", "PetOwner", "PetTagsItem", "PetKind", "Error",
		"ListPetsResponse", "ListPetsQuery", "CreatePetResponse",
		"GetPetResponse", "UpdatePetResponse",
		"PetStore",
	}, names)

	limit := tree.Module(ModuleParameters).Decls[0].(*AliasDecl)
	assert.Equal(t, Builtin("int32"), limit.Target)
	assert.Equal(t, Doc{"Page size."}, limit.Doc)

	status := tree.Module(ModuleParameters).Decls[1].(*EnumDecl)
	assert.Equal(t, []EnumValue{
		{Name: "StatusAvailable", Value: "available"},
		{Name: "StatusPending", Value: "pending"},
		{Name: "StatusSold", Value: "sold"},
	}, status.Values)

	newPet := tree.Module(ModuleRequestBodies).Decls[0].(*AliasDecl)
	assert.Equal(t, Named("Pet"), newPet.Target)

	list := tree.Module(ModuleResponses).Decls[1].(*SliceDecl)
	assert.Equal(t, Named("Pet"), list.Elem)

	pet := tree.Module(ModuleSchemas).Decls[0].(*StructDecl)
	assert.Equal(t, Doc{"A pet for sale."}, pet.Doc)
	byName := make(map[string]Field)
	for _, f := range pet.Fields {
		byName[f.Name] = f
	}
	assert.Equal(t, Builtin("int64"), byName["ID"].Type)
	assert.Equal(t, []Attribute{{Key: "json", Value: "id"}}, byName["ID"].Attributes)
	assert.Equal(t, PointerTo(Qualified("github.com/google/uuid", "UUID")), byName["Tag"].Type)
	assert.Equal(t, PointerTo(Qualified("time", "Time")), byName["BornAt"].Type)
	assert.Equal(t, []Attribute{{Key: "json", Value: "born_at,omitempty"}}, byName["BornAt"].Attributes)
	assert.Equal(t, PointerTo(Named("PetOwner")), byName["Owner"].Type)
	assert.Equal(t, SliceOf(Named("PetTagsItem")), byName["Tags"].Type)
	assert.Equal(t, PointerTo(Named("PetKind")), byName["Kind"].Type)

	query := tree.Module(ModulePaths).Decls[0].(*ScopeDecl).Decls[1].(*StructDecl)
	assert.Equal(t, []Field{
		{Name: "Limit", Type: PointerTo(Named("Limit")), Doc: Doc{"Page size."}, Attributes: []Attribute{{Key: "query", Value: "limit"}}},
		{Name: "Status", Type: PointerTo(Named("Status")), Attributes: []Attribute{{Key: "query", Value: "status"}}},
	}, query.Fields)

	svc := tree.Module(ModuleAPI).Decls[0].(*ServiceDecl)
	assert.Equal(t, "PetStore", svc.Name)
	require.Len(t, svc.Methods, 4)
	listRoute := svc.Methods[0].Route
	require.NotNil(t, listRoute.Query)
	assert.Equal(t, Named("ListPetsQuery"), *listRoute.Query)
	assert.Nil(t, listRoute.Body)
	assert.Equal(t, Doc{"BindListPets registers the handler of GET /pets.", "", "List pets"}, svc.Methods[0].Doc)

	create := svc.Methods[1].Route
	require.NotNil(t, create.Body)
	assert.Equal(t, Named("NewPet"), *create.Body)
	assert.True(t, create.BodyRequired)
	assert.Equal(t, "json", create.BodyKind)
	assert.Equal(t, "/pets/{petId}", svc.Methods[2].Route.Pattern)
	assert.Equal(t, "PATCH", svc.Methods[3].Route.Method)
}

func TestEmitIsDeterministic(t *testing.T) {
	first := emitDoc(t, testutil.PetStoreYAML)
	second := emitDoc(t, testutil.PetStoreYAML)
	assert.Equal(t, first, second)
}

func TestEmitOptionalArrays(t *testing.T) {
	tree := emitDoc(t, `
openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Names:
      type: array
      items: {type: string}
    MoreNames:
      $ref: '#/components/schemas/Names'
    Holder:
      type: object
      properties:
        names: {$ref: '#/components/schemas/Names'}
        more: {$ref: '#/components/schemas/MoreNames'}
        raw: {type: string, format: byte}
        extra: {type: string, x-go-type: 'map[string]any'}
`)
	holder := tree.Module(ModuleSchemas).Decls[2].(*StructDecl)
	require.Len(t, holder.Fields, 4)
	assert.Equal(t, Named("Names"), holder.Fields[0].Type)
	assert.Equal(t, Named("MoreNames"), holder.Fields[1].Type)
	assert.Equal(t, Builtin("[]byte"), holder.Fields[2].Type)
	assert.Equal(t, Builtin("map[string]any"), holder.Fields[3].Type)
}

func TestEmitFieldTags(t *testing.T) {
	tests := []struct {
		property string
		required bool
		name     string
		tag      string
	}{
		{property: "名前", required: true, name: "X名前", tag: "名前"},
		{property: "名前", name: "X名前", tag: "名前,omitempty"},
		{property: "x-request-id", required: true, name: "XRequestID", tag: "x-request-id"},
		{property: "Total", required: true, name: "Total"},
		{property: "total", name: "Total", tag: "total,omitempty"},
	}
	for _, tt := range tests {
		t.Run(tt.property, func(t *testing.T) {
			required := "[]"
			if tt.required {
				required = fmt.Sprintf("[%q]", tt.property)
			}
			tree := emitDoc(t, fmt.Sprintf(`
openapi: 3.0.3
info: {title: t, version: "1"}
paths: {}
components:
  schemas:
    Thing:
      type: object
      required: %s
      properties:
        %q: {type: string}
`, required, tt.property))
			thing := tree.Module(ModuleSchemas).Decls[0].(*StructDecl)
			require.Len(t, thing.Fields, 1)
			field := thing.Fields[0]
			assert.Equal(t, tt.name, field.Name)
			if tt.tag == "" {
				assert.Empty(t, field.Attributes)
			} else {
				assert.Equal(t, []Attribute{{Key: "json", Value: tt.tag}}, field.Attributes)
			}
		})
	}
}

func TestEmitDeprecation(t *testing.T) {
	tree := emitDoc(t, `
openapi: 3.0.3
info: {title: t, version: "1"}
paths:
  /old:
    get:
      operationId: old
      deprecated: true
      responses:
        "200": {description: ok}
components:
  schemas:
    Thing:
      type: object
      properties:
        legacy: {type: string, deprecated: true, description: Kept for old clients.}
`)
	thing := tree.Module(ModuleSchemas).Decls[0].(*StructDecl)
	assert.Equal(t, Doc{"Kept for old clients.", "", "Deprecated: marked as deprecated in the API description."}, thing.Fields[0].Doc)
	assert.Equal(t, Doc{"Thing is generated from components.schemas.Thing."}, thing.Doc)

	svc := tree.Module(ModuleAPI).Decls[0].(*ServiceDecl)
	assert.Equal(t, "T", svc.Name)
	doc := svc.Methods[0].Doc
	assert.Equal(t, "Deprecated: marked as deprecated in the API description.", doc[len(doc)-1])
}

func TestEmitServiceNameCollision(t *testing.T) {
	doc := testutil.MustParse(t, `
openapi: 3.0.3
info: {title: pet, version: "1"}
paths: {}
components:
  schemas:
    Pet: {type: string}
`)
	g, _, err := highway.Build(doc)
	require.NoError(t, err)

	_, err = Emit(g, nil, Meta{Title: doc.Info.Title})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrNameCollision))

	var buildErr *oaserrors.BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, "Pet", buildErr.Proposed)
}

func TestEmitNoTitle(t *testing.T) {
	tree, err := Emit(highwayEmpty(t), nil, Meta{Package: "petstore", Runtime: "example.com/rt"})
	require.NoError(t, err)
	assert.Equal(t, "petstore", tree.Package)
	assert.Equal(t, "example.com/rt", tree.Runtime)
	assert.Equal(t, "API", tree.Module(ModuleAPI).Decls[0].DeclName())
	assert.Empty(t, tree.Module(ModulePaths).Decls)
}

func highwayEmpty(t *testing.T) *highway.Graph {
	t.Helper()
	g, _, err := highway.Build(testutil.NewSimpleDocument())
	require.NoError(t, err)
	return g
}
