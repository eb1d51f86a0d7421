package exercise

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	gcerrors "github.com/AndreyAkinshin/gradecheck/internal/errors"
	"github.com/AndreyAkinshin/gradecheck/internal/schema"
)

// Load reads, validates and decodes an exercise file. The format is selected
// by extension. $file references are resolved relative to the file.
func Load(path string) (*Exercise, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(Extensions, ext) {
		return nil, gcerrors.Load(path, fmt.Errorf("unsupported file extension %q (want .yaml, .yml or .json)", ext))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gcerrors.Load(path, err)
	}

	doc, err := decode(data, ext)
	if err != nil {
		return nil, gcerrors.Load(path, err)
	}

	if err := schema.ValidateExerciseValue(doc); err != nil {
		return nil, gcerrors.Validation(path, err)
	}

	doc, err = resolveFileRefs(doc, filepath.Dir(path))
	if err != nil {
		return nil, gcerrors.Load(path, err)
	}

	ex := build(doc.(map[string]any))
	ex.Path = path
	return ex, nil
}

// decode parses data into plain JSON-compatible values: map[string]any, []any,
// string, bool, nil, int64 or float64.
func decode(data []byte, ext string) (any, error) {
	switch ext {
	case ".json":
		return decodeJSON(data)
	default:
		return decodeYAML(data)
	}
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid JSON: unexpected data after top-level value")
	}
	return plain(v)
}

func decodeYAML(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return plain(v)
}

// plain converts decoder output to JSON-compatible values.
func plain(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			p, err := plain(val)
			if err != nil {
				return nil, err
			}
			out[key] = p
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			k, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("mapping key %v is not a string", key)
			}
			p, err := plain(val)
			if err != nil {
				return nil, err
			}
			out[k] = p
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			p, err := plain(val)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %s: %w", v, err)
		}
		return f, nil
	case int:
		return int64(v), nil
	case uint64:
		if v > uint64(1<<63-1) {
			return float64(v), nil
		}
		return int64(v), nil
	default:
		return value, nil
	}
}

// resolveFileRefs recursively replaces {"$file": path} objects with the
// content of the referenced file.
func resolveFileRefs(value any, baseDir string) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		if ref, ok := v["$file"].(string); ok && len(v) == 1 {
			return loadFileRef(ref, baseDir)
		}

		result := make(map[string]any, len(v))
		for key, val := range v {
			resolved, err := resolveFileRefs(val, baseDir)
			if err != nil {
				return nil, err
			}
			result[key] = resolved
		}
		return result, nil

	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			resolved, err := resolveFileRefs(val, baseDir)
			if err != nil {
				return nil, err
			}
			result[i] = resolved
		}
		return result, nil

	default:
		return value, nil
	}
}

// loadFileRef loads a file referenced by $file. JSON and YAML files are
// decoded; anything else is returned as a string.
func loadFileRef(ref, baseDir string) (any, error) {
	if filepath.IsAbs(ref) {
		return nil, fmt.Errorf("$file path must be relative: %s", ref)
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(filepath.Join(baseDir, ref))
	if err != nil {
		return nil, err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("$file path escapes exercise directory: %s", ref)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("$file %q: %w", ref, err)
	}

	switch strings.ToLower(filepath.Ext(ref)) {
	case ".yaml", ".yml":
		v, err := decodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("$file %q: %w", ref, err)
		}
		return v, nil
	case ".json":
		v, err := decodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("$file %q: %w", ref, err)
		}
		return v, nil
	default:
		return string(data), nil
	}
}

// build maps a validated document onto Exercise.
func build(doc map[string]any) *Exercise {
	ex := &Exercise{}
	ex.Name, _ = doc["exercise"].(string)
	ex.Phrase, _ = doc["phrase"].(string)
	if b, ok := doc["bindings"].(map[string]any); ok {
		ex.Bindings = b
	}

	tests, _ := doc["tests"].([]any)
	ex.Tests = make([]Test, 0, len(tests))
	for _, raw := range tests {
		m, _ := raw.(map[string]any)
		t := Test{
			Actual:   m["actual"],
			Expected: m["expected"],
		}
		t.Message, _ = m["message"].(string)
		t.Mode, _ = m["mode"].(string)
		if c, ok := m["compare"].(map[string]any); ok {
			t.Compare = buildCompare(c)
		}
		ex.Tests = append(ex.Tests, t)
	}
	return ex
}

func buildCompare(m map[string]any) *Compare {
	c := &Compare{}
	c.Kind, _ = m["kind"].(string)
	c.ToleranceMode, _ = m["tolerance_mode"].(string)
	c.ArrayOrder, _ = m["array_order"].(string)
	c.Expr, _ = m["expr"].(string)

	switch p := m["places"].(type) {
	case int64:
		places := int(p)
		c.Places = &places
	case float64:
		places := int(p)
		c.Places = &places
	}

	switch tol := m["tolerance"].(type) {
	case int64:
		f := float64(tol)
		c.Tolerance = &f
	case float64:
		c.Tolerance = &tol
	}

	if nan, ok := m["nan_equals_nan"].(bool); ok {
		c.NaNEqualsNaN = &nan
	}
	return c
}

// ParseValue parses a single YAML value, as given on the command line.
// Unquoted numbers and booleans are typed; anything else is a string.
func ParseValue(s string) (any, error) {
	v, err := decodeYAML([]byte(s))
	if err != nil {
		return nil, err
	}
	if v == nil && s != "" && s != "null" && s != "~" {
		return s, nil
	}
	return v, nil
}
