// Package extract pulls the generation payload out of raw provider responses.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonrepair"
)

var (
	fenceMu    sync.Mutex
	fenceCache = map[string]*regexp.Regexp{}
)

func fencePattern(tag string) *regexp.Regexp {
	fenceMu.Lock()
	defer fenceMu.Unlock()
	if re, ok := fenceCache[tag]; ok {
		return re
	}
	re := regexp.MustCompile("(?s)```" + regexp.QuoteMeta(tag) + "[ \\t]*\\r?\\n(.*?)```")
	fenceCache[tag] = re
	return re
}

// FencedBlock returns the trimmed interior of the first ```tag fenced block in text.
// When text has no such block the trimmed text itself is returned. An empty tag
// matches untagged fences only.
func FencedBlock(text, tag string) string {
	if m := fencePattern(tag).FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}

// ErrNoJSON is returned when a response holds nothing that looks like a JSON object.
var ErrNoJSON = errors.New("response contains no JSON object")

// JSON extracts a JSON object from a model response. Fences are stripped, prose around
// the outermost braces is discarded, and malformed output is repaired when possible.
func JSON(text string) (json.RawMessage, error) {
	candidate := strings.TrimSpace(text)
	if m := fencePattern("json").FindStringSubmatch(candidate); m != nil {
		candidate = strings.TrimSpace(m[1])
	} else if m := fencePattern("").FindStringSubmatch(candidate); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	start := strings.Index(candidate, "{")
	if start == -1 {
		return nil, ErrNoJSON
	}
	if end := strings.LastIndex(candidate, "}"); end > start {
		candidate = candidate[start : end+1]
	} else {
		// Truncated output: keep the tail and let the repair close it.
		candidate = candidate[start:]
	}

	if json.Valid([]byte(candidate)) {
		return json.RawMessage(candidate), nil
	}

	repaired, err := jsonrepair.JSONRepair(candidate)
	if err != nil {
		return nil, fmt.Errorf("repair JSON: %w", err)
	}
	if !json.Valid([]byte(repaired)) {
		return nil, fmt.Errorf("repaired output is still not valid JSON")
	}
	return json.RawMessage(repaired), nil
}
