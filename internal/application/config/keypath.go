package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/recspec/internal/domain"
)

// ParseYAMLValue parses a string value as YAML, falling back to literal string
func ParseYAMLValue(input string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil || parsed == nil {
		return input
	}
	return parsed
}

// SetNestedMapValue sets a value in a nested map using a key path
// Returns true if successful, false otherwise
func SetNestedMapValue(root map[string]interface{}, keyPath []string, value interface{}) bool {
	if len(keyPath) == 0 {
		return false
	}

	current := root
	for _, key := range keyPath[:len(keyPath)-1] {
		child, ok := current[key].(map[string]interface{})
		if !ok {
			child = map[string]interface{}{}
			current[key] = child
		}
		current = child
	}

	current[keyPath[len(keyPath)-1]] = value
	return true
}

// TraverseNestedMap retrieves a value from a nested map using a key path
// Returns the value and true if found, nil and false otherwise
func TraverseNestedMap(data interface{}, keyPath []string) (interface{}, bool) {
	if len(keyPath) == 0 {
		return data, true
	}

	node, ok := data.(map[string]interface{})
	if !ok {
		return nil, false
	}
	next, exists := node[keyPath[0]]
	if !exists {
		return nil, false
	}
	return TraverseNestedMap(next, keyPath[1:])
}

// ToMap renders cfg as the generic map used for key-path lookups. Keys follow the
// persisted JSON names.
func ToMap(cfg domain.Config) (map[string]interface{}, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("unmarshal config map: %w", err)
	}
	return generic, nil
}

// IsCredentialKey reports whether a dotted key path addresses stored API keys.
func IsCredentialKey(keyPath string) bool {
	keys := strings.Split(strings.TrimSpace(keyPath), ".")
	return len(keys) >= 2 && keys[0] == "llm" && keys[1] == "apiKeys"
}

// isProviderKeyPath matches llm.apiKeys.<provider>, whose value is a secret taken verbatim.
func isProviderKeyPath(keys []string) bool {
	return len(keys) == 3 && keys[0] == "llm" && keys[1] == "apiKeys"
}

// PatchFromKeyPath turns "llm.apiKeys.google" = "..." style input into a ConfigPatch.
// The value is parsed as YAML, so "false" becomes a boolean,
// except for a provider key, which is kept verbatim. Unknown keys and type
// mismatches are reported as a ValidationError.
func PatchFromKeyPath(keyPath, value string) (domain.ConfigPatch, error) {
	keys := strings.Split(strings.TrimSpace(keyPath), ".")
	for _, k := range keys {
		if k == "" {
			return domain.ConfigPatch{}, domain.NewValidationError("invalid key",
				[]string{fmt.Sprintf("%q: empty path segment", keyPath)})
		}
	}

	var parsed interface{} = value
	if !isProviderKeyPath(keys) {
		parsed = ParseYAMLValue(value)
	}
	sparse := map[string]interface{}{}
	SetNestedMapValue(sparse, keys, parsed)

	raw, err := yaml.Marshal(sparse)
	if err != nil {
		return domain.ConfigPatch{}, fmt.Errorf("marshal patch: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var patch domain.ConfigPatch
	if err := dec.Decode(&patch); err != nil {
		return domain.ConfigPatch{}, domain.NewValidationError("invalid key",
			[]string{fmt.Sprintf("%s: %v", keyPath, err)})
	}
	if patch.IsEmpty() {
		return domain.ConfigPatch{}, domain.NewValidationError("invalid key",
			[]string{fmt.Sprintf("%s: not a settable configuration key", keyPath)})
	}
	return patch, nil
}
