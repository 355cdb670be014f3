package fileutil

import (
	"path/filepath"
	"sort"
	"strings"
)

func DedupeStrings(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func MapKeysSorted(values map[string]bool) []string {
	out := make([]string, 0, len(values))
	for key := range values {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// FoldSet builds a case-insensitive membership set.
func FoldSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		set[strings.ToLower(item)] = true
	}
	return set
}

// EnsureJSONExt appends ".json" to names given without an extension.
func EnsureJSONExt(name string) string {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(filepath.Ext(name), ".json") {
		return name
	}
	return name + ".json"
}
