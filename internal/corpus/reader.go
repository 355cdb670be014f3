// Package corpus enumerates and reads the JSON documents of a mod's content
// database and writes mutated documents back.
package corpus

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/morozRed/refprune/internal/fileutil"
	"github.com/morozRed/refprune/internal/ignore"
)

const (
	// FlatJSON matches JSON files directly inside the queried directory.
	FlatJSON = "*.json"
	// DeepJSON matches JSON files at any depth below the queried directory.
	DeepJSON = "**/*.json"

	DefaultCacheSize = 512
)

// Query selects a set of files below Dir.
type Query struct {
	Dir             string
	Pattern         string
	ExcludeDirs     []string
	ExcludeFiles    []string
	ExcludePatterns []string
}

type Options struct {
	CacheSize int
	// DryRun keeps writes in memory. Later reads observe them; disk is untouched.
	DryRun bool
}

// Reader serves file contents from an LRU cache so documents shared between
// phases are read from disk once. Writes go through the cache.
type Reader struct {
	cache   *lru.Cache[string, []byte]
	dryRun  bool
	overlay map[string][]byte
	written []string
}

func NewReader(opts Options) (*Reader, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create content cache: %w", err)
	}
	return &Reader{
		cache:   cache,
		dryRun:  opts.DryRun,
		overlay: make(map[string][]byte),
	}, nil
}

// Files returns the absolute paths selected by q in lexical order. A directory
// that cannot be enumerated is an error.
func (r *Reader) Files(q Query) ([]string, error) {
	info, err := os.Stat(q.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", q.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to enumerate %s: not a directory", q.Dir)
	}

	pattern := q.Pattern
	if pattern == "" {
		pattern = FlatJSON
	}
	matches, err := doublestar.Glob(os.DirFS(q.Dir), pattern,
		doublestar.WithFailOnIOErrors(),
		doublestar.WithFilesOnly(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", q.Dir, err)
	}

	matcher := ignore.NewMatcher(q.ExcludeDirs, q.ExcludePatterns)
	excludedNames := fileutil.FoldSet(q.ExcludeFiles)

	files := make([]string, 0, len(matches))
	for _, rel := range matches {
		if excludedNames[strings.ToLower(path.Base(rel))] {
			continue
		}
		dir := filepath.Join(q.Dir, filepath.FromSlash(path.Dir(rel)))
		if matcher.ShouldIgnore(dir, rel) {
			continue
		}
		files = append(files, filepath.Join(q.Dir, filepath.FromSlash(rel)))
	}
	sort.Strings(files)
	return files, nil
}

// Blob concatenates the raw content of every file selected by q.
func (r *Reader) Blob(q Query) (string, error) {
	files, err := r.Files(q)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, file := range files {
		data, err := r.Read(file)
		if err != nil {
			return "", err
		}
		b.Write(data)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// Read returns the current content of file.
func (r *Reader) Read(file string) ([]byte, error) {
	if data, ok := r.overlay[file]; ok {
		return data, nil
	}
	if data, ok := r.cache.Get(file); ok {
		return data, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	r.cache.Add(file, data)
	return data, nil
}

// Write replaces file with data. The previous content is discarded.
func (r *Reader) Write(file string, data []byte) error {
	if r.dryRun {
		r.overlay[file] = data
	} else {
		if err := fileutil.WriteAtomic(file, data); err != nil {
			return err
		}
		r.cache.Add(file, data)
	}
	r.written = append(r.written, file)
	return nil
}

// Written lists files written so far, in write order.
func (r *Reader) Written() []string {
	return fileutil.DedupeStrings(r.written)
}

func (r *Reader) DryRun() bool {
	return r.dryRun
}
