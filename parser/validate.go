package parser

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidateStructure checks raw document bytes against the OpenAPI 3 object
// model using kin-openapi. It catches structural mistakes (missing info,
// malformed parameters, dangling refs) that the order-preserving model
// accepts silently. External references are rejected.
func ValidateStructure(data []byte) error {
	return ValidateStructureContext(context.Background(), data)
}

// ValidateStructureContext is ValidateStructure with a caller supplied context.
func ValidateStructureContext(ctx context.Context, data []byte) error {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	loader.Context = ctx

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}
