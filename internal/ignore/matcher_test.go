package ignore

import (
	"path/filepath"
	"testing"
)

func TestMatcher_ExcludedDirectoriesBySubstring(t *testing.T) {
	root := filepath.Join("mods", "Example", "db")
	m := NewMatcher([]string{
		filepath.Join(root, "Items"),
		filepath.Join(root, "Images"),
		filepath.Join(root, "locales"),
	}, nil)

	cases := []struct {
		dir      string
		excluded bool
	}{
		{dir: filepath.Join(root, "Items"), excluded: true},
		{dir: filepath.Join(root, "ITEMS"), excluded: true},
		{dir: filepath.Join(root, "Images", "icons"), excluded: true},
		{dir: filepath.Join(root, "Locales", "en"), excluded: true},
		{dir: filepath.Join(root, "Items2"), excluded: true},
		{dir: filepath.Join(root, "Quests"), excluded: false},
		{dir: root, excluded: false},
	}

	for _, tc := range cases {
		got := m.ExcludesDir(tc.dir)
		if got != tc.excluded {
			t.Fatalf("dir %s: expected excluded=%v, got %v", tc.dir, tc.excluded, got)
		}
	}
}

func TestMatcher_UserPatterns(t *testing.T) {
	m := NewMatcher(nil, []string{
		"**/*.bak.json",
		"# comment",
		"",
		"Quests/drafts/**",
		"[", // invalid, dropped
	})

	cases := []struct {
		path     string
		excluded bool
	}{
		{path: "Quests/q1.bak.json", excluded: true},
		{path: "Quests/drafts/q2.json", excluded: true},
		{path: "./Quests/drafts/deep/q3.json", excluded: true},
		{path: "Quests/q1.json", excluded: false},
	}

	for _, tc := range cases {
		got := m.ExcludesFile(tc.path)
		if got != tc.excluded {
			t.Fatalf("path %s: expected excluded=%v, got %v", tc.path, tc.excluded, got)
		}
	}
}

func TestMatcher_NilIsPermissive(t *testing.T) {
	var m *Matcher
	if m.ShouldIgnore("any", "any.json") {
		t.Fatalf("expected nil matcher to exclude nothing")
	}
}
