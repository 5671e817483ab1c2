// Package jsonwalk visits every member of a JSON document in document order.
package jsonwalk

import (
	"strings"

	"github.com/tidwall/gjson"
)

// MaxDepth bounds object and array nesting. Parse rejects deeper documents
// and Walk does not descend past it.
const MaxDepth = 64

// Visitor is called for every object member and array element. Key is the
// member name, or empty for array elements. Returning false stops the walk.
type Visitor func(key string, value gjson.Result) bool

// Parse validates raw JSON and returns its root. Malformed, empty or too
// deeply nested input reports ok=false so callers can treat the document as absent.
func Parse(raw string) (gjson.Result, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || nestedBeyond(raw, MaxDepth) || !gjson.Valid(raw) {
		return gjson.Result{}, false
	}
	return gjson.Parse(raw), true
}

// nestedBeyond reports whether raw opens more than limit containers at once.
// It stops at the first violation.
func nestedBeyond(raw string, limit int) bool {
	depth := 0
	inString := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > limit {
				return true
			}
		case '}', ']':
			depth--
		}
	}
	return false
}

// Walk descends depth-first through root, calling visit for each value before
// descending into it. Containers nested deeper than MaxDepth are visited but
// not entered. It reports whether the walk ran to completion.
func Walk(root gjson.Result, visit Visitor) bool {
	return walk(root, visit, 1)
}

func walk(root gjson.Result, visit Visitor, depth int) bool {
	if !root.IsObject() && !root.IsArray() || depth > MaxDepth {
		return true
	}

	object := root.IsObject()
	completed := true
	root.ForEach(func(key, value gjson.Result) bool {
		name := ""
		if object {
			name = key.String()
		}
		if !visit(name, value) || !walk(value, visit, depth+1) {
			completed = false
			return false
		}
		return true
	})
	return completed
}

// CollectStrings returns every string value accepted by match, in document order.
func CollectStrings(root gjson.Result, match func(string) bool) []string {
	var out []string
	Walk(root, func(_ string, value gjson.Result) bool {
		if value.Type == gjson.String && match(value.Str) {
			out = append(out, value.Str)
		}
		return true
	})
	return out
}

// FindString returns the first string value stored under key that is accepted by match.
func FindString(root gjson.Result, key string, match func(string) bool) (string, bool) {
	var (
		found string
		ok    bool
	)
	Walk(root, func(name string, value gjson.Result) bool {
		if name == key && value.Type == gjson.String && match(value.Str) {
			found, ok = value.Str, true
			return false
		}
		return true
	})
	return found, ok
}
