// Package ident extracts item identifiers from category files and decides
// whether an identifier is referenced by a body of text.
package ident

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseError reports a category file whose root is not a JSON object.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return "invalid category document: " + e.Reason
	}
	return fmt.Sprintf("invalid category file %s: %s", e.Path, e.Reason)
}

// Keys returns the top-level keys of a category document. Each key is an item
// identifier whose value is that item's definition.
func Keys(path string, data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: path, Reason: "malformed JSON"}
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, &ParseError{Path: path, Reason: fmt.Sprintf("root is %s, not an object", describe(doc))}
	}

	keys := make([]string, 0)
	doc.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys, nil
}

func describe(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "an array"
	case r.Type == gjson.String:
		return "a string"
	case r.Type == gjson.Number:
		return "a number"
	case r.Type == gjson.True, r.Type == gjson.False:
		return "a boolean"
	default:
		return "null"
	}
}
