// Package schema is a small declarative validator for decoded JSON documents.
//
// A Schema describes the expected shape; Validate walks a value produced by
// encoding/json (map[string]any, []any, float64, string, bool, nil) and returns
// every violation it finds rather than stopping at the first. The same Schema
// marshals to a JSON-Schema-compatible document so it can be sent to generation
// providers as a response contract.
package schema

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Type is a JSON value type.
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// Schema describes one JSON value.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Object builds an object schema. Required names must be keys of props.
func Object(props map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: TypeObject, Properties: props, Required: required}
}

// Array builds an array schema.
func Array(items *Schema) *Schema {
	return &Schema{Type: TypeArray, Items: items}
}

// String builds a string schema, optionally restricted to values.
func String(values ...string) *Schema {
	return &Schema{Type: TypeString, Enum: values}
}

// Number builds a number schema.
func Number() *Schema { return &Schema{Type: TypeNumber} }

// Integer builds an integer schema.
func Integer() *Schema { return &Schema{Type: TypeInteger} }

// Boolean builds a boolean schema.
func Boolean() *Schema { return &Schema{Type: TypeBoolean} }

// Describe sets the description and returns s.
func (s *Schema) Describe(text string) *Schema {
	s.Description = text
	return s
}

// Validate returns one "path: message" entry per violation, in a deterministic order.
// An empty result means value conforms.
func (s *Schema) Validate(value any) []string {
	var v validator
	v.walk(s, value, "")
	return v.violations
}

type validator struct {
	violations []string
}

func (v *validator) addf(path, format string, args ...any) {
	if path == "" {
		path = "(root)"
	}
	v.violations = append(v.violations, path+": "+fmt.Sprintf(format, args...))
}

func (v *validator) walk(s *Schema, value any, path string) {
	if s == nil {
		return
	}
	switch s.Type {
	case TypeObject:
		obj, ok := value.(map[string]any)
		if !ok {
			v.addf(path, "expected object, got %s", typeName(value))
			return
		}
		for _, name := range s.Required {
			if _, present := obj[name]; !present {
				v.addf(join(path, name), "required")
			}
		}
		for _, name := range sortedKeys(s.Properties) {
			field, present := obj[name]
			if !present {
				continue
			}
			v.walk(s.Properties[name], field, join(path, name))
		}
	case TypeArray:
		arr, ok := value.([]any)
		if !ok {
			v.addf(path, "expected array, got %s", typeName(value))
			return
		}
		for i, item := range arr {
			v.walk(s.Items, item, fmt.Sprintf("%s[%d]", path, i))
		}
	case TypeString:
		str, ok := value.(string)
		if !ok {
			v.addf(path, "expected string, got %s", typeName(value))
			return
		}
		if len(s.Enum) > 0 && !contains(s.Enum, str) {
			v.addf(path, "invalid value %q, expected one of %s", str, strings.Join(s.Enum, ", "))
		}
	case TypeNumber:
		if _, ok := value.(float64); !ok {
			v.addf(path, "expected number, got %s", typeName(value))
		}
	case TypeInteger:
		n, ok := value.(float64)
		if !ok || n != math.Trunc(n) {
			v.addf(path, "expected integer, got %s", typeName(value))
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			v.addf(path, "expected boolean, got %s", typeName(value))
		}
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func contains(values []string, want string) bool {
	for _, value := range values {
		if value == want {
			return true
		}
	}
	return false
}
