package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/path/to/file.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "parse error in /path/to/file.yaml at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrParse only", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrReference) {
			t.Error("ParseError should not match ErrReference")
		}
	})

	t.Run("As extracts ParseError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &ParseError{Path: "test.yaml", Line: 5})
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatal("errors.As should succeed")
		}
		if parseErr.Line != 5 {
			t.Errorf("unexpected line: %d", parseErr.Line)
		}
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("Error message for missing target", func(t *testing.T) {
		err := &ReferenceError{
			Kind:     RefNotFound,
			Ref:      "#/components/schemas/Pet",
			ItemKind: "schemas",
			Name:     "Pet",
		}
		expected := `schemas "Pet" not found: #/components/schemas/Pet`
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message for wrong namespace", func(t *testing.T) {
		err := &ReferenceError{
			Kind:     RefWrongNamespace,
			Ref:      "#/components/responses/Pet",
			ItemKind: "schemas",
		}
		expected := "reference outside #/components/schemas/: #/components/responses/Pet"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message for cycle", func(t *testing.T) {
		err := &ReferenceError{
			Kind:  RefCycleDetected,
			Ref:   "#/components/schemas/Node",
			Depth: 33,
		}
		expected := "circular reference: #/components/schemas/Node (depth 33)"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrCircularReference only for cycles", func(t *testing.T) {
		cycle := &ReferenceError{Kind: RefCycleDetected}
		if !errors.Is(cycle, ErrReference) {
			t.Error("cycle should match ErrReference")
		}
		if !errors.Is(cycle, ErrCircularReference) {
			t.Error("cycle should match ErrCircularReference")
		}
		missing := &ReferenceError{Kind: RefNotFound}
		if errors.Is(missing, ErrCircularReference) {
			t.Error("missing target should not match ErrCircularReference")
		}
	})

	t.Run("Kind String", func(t *testing.T) {
		if RefWrongNamespace.String() != "wrong namespace" {
			t.Errorf("unexpected kind name: %s", RefWrongNamespace)
		}
		if RefErrorKind(99).String() != "unknown" {
			t.Error("unknown kind should print as unknown")
		}
	})
}

func TestBuildError(t *testing.T) {
	t.Run("NameCollision message and sentinels", func(t *testing.T) {
		err := &BuildError{
			Kind:     BuildNameCollision,
			Proposed: "UserAddress",
			Existing: "schema UserAddress",
		}
		expected := `name collision: "UserAddress" is already used by schema UserAddress`
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
		if !errors.Is(err, ErrBuild) || !errors.Is(err, ErrNameCollision) {
			t.Error("collision should match ErrBuild and ErrNameCollision")
		}
	})

	t.Run("UnnamedParameterSchema message", func(t *testing.T) {
		err := &BuildError{
			Kind:      BuildUnnamedParameterSchema,
			Parameter: "limit",
			Operation: "listPets",
			Path:      "paths./pets.get",
		}
		expected := `query parameter "limit" must reference a component in #/components/parameters/ (operation listPets) at paths./pets.get`
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
		if errors.Is(err, ErrNameCollision) {
			t.Error("unnamed parameter should not match ErrNameCollision")
		}
	})
}

func TestDuplicateStatusError(t *testing.T) {
	err := &DuplicateStatusError{Operation: "getSession", Status: "200"}
	if err.Error() != "duplicate status 200 in operation getSession" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrDuplicateStatus) {
		t.Error("should match ErrDuplicateStatus")
	}
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with context", func(t *testing.T) {
		cause := &DuplicateStatusError{Operation: "getSession", Status: "200"}
		err := &GenerationError{
			Phase:     "bind",
			Operation: "getSession",
			Path:      "/session",
			Cause:     cause,
		}
		expected := "generation failed during bind (operation getSession, at /session): duplicate status 200 in operation getSession"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap reaches the cause", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", &GenerationError{
			Phase: "build",
			Cause: &ReferenceError{Kind: RefCycleDetected},
		})
		if !errors.Is(err, ErrGeneration) {
			t.Error("should match ErrGeneration")
		}
		if !errors.Is(err, ErrCircularReference) {
			t.Error("should match the wrapped cycle")
		}
		var refErr *ReferenceError
		if !errors.As(err, &refErr) {
			t.Fatal("errors.As should find the ReferenceError")
		}
	})

	t.Run("Error message without context", func(t *testing.T) {
		err := &GenerationError{}
		if err.Error() != "generation failed" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "array depth", Limit: 8, Actual: 9}
	if err.Error() != "resource limit exceeded: array depth (limit: 8, actual: 9)" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrResourceLimit) {
		t.Error("should match ErrResourceLimit")
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("bad value")
	err := &ConfigError{Option: "package", Value: "1x", Message: "not an identifier", Cause: cause}
	if err.Error() != "configuration error for package (value: 1x): not an identifier: bad value" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("should match ErrConfig")
	}
	if !errors.Is(err, cause) {
		t.Error("should unwrap to cause")
	}
}
