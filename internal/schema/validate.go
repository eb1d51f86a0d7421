// Package schema provides JSON schema validation for gradecheck exercise files.
package schema

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/gradecheck/schema"
)

const exerciseSchemaFile = "exercise.schema.json"

var (
	exerciseSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// compileSchemas compiles the embedded schema once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		data, err := schemafs.FS.ReadFile(exerciseSchemaFile)
		if err != nil {
			compileErr = fmt.Errorf("read exercise schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal exercise schema: %w", err)
			return
		}

		if err := compiler.AddResource(exerciseSchemaFile, doc); err != nil {
			compileErr = fmt.Errorf("add exercise schema resource: %w", err)
			return
		}

		exerciseSchema, err = compiler.Compile(exerciseSchemaFile)
		if err != nil {
			compileErr = fmt.Errorf("compile exercise schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateExercise validates JSON data against the exercise schema.
func ValidateExercise(data []byte) error {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return ValidateExerciseValue(v)
}

// ValidateExerciseValue validates an already decoded document against the
// exercise schema. Objects must be map[string]any and arrays []any; numbers
// may be any Go integer or float type.
func ValidateExerciseValue(v any) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	if err := exerciseSchema.Validate(v); err != nil {
		return fmt.Errorf("exercise validation failed: %w", err)
	}

	return nil
}
