// Package prune removes attachment definitions no weapon uses anymore and
// cleans up the records elsewhere in the corpus that still point at removed
// identifiers.
//
// Whether an identifier is used is decided by text containment over raw file
// content (see package ident), not by following a reference graph. Files are
// rewritten in place without a backup.
package prune

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/morozRed/refprune/internal/corpus"
	"github.com/morozRed/refprune/internal/ident"
	"github.com/morozRed/refprune/internal/jsontree"
	"github.com/morozRed/refprune/internal/layout"
)

const DefaultIndent = "  "

type Options struct {
	Policy ident.Policy
	Indent string
	// ExcludePatterns are extra glob patterns, relative to the scanned folder,
	// that are never treated as references.
	ExcludePatterns []string
	Reporter        Reporter
}

type Pruner struct {
	layout   layout.Layout
	reader   *corpus.Reader
	policy   ident.Policy
	indent   string
	exclude  []string
	reporter Reporter
}

func New(l layout.Layout, reader *corpus.Reader, opts Options) *Pruner {
	p := &Pruner{
		layout:   l,
		reader:   reader,
		policy:   opts.Policy,
		indent:   opts.Indent,
		exclude:  opts.ExcludePatterns,
		reporter: opts.Reporter,
	}
	if p.policy == "" {
		p.policy = ident.PolicySubstring
	}
	if p.indent == "" {
		p.indent = DefaultIndent
	}
	if p.reporter == nil {
		p.reporter = Discard
	}
	return p
}

func (p *Pruner) emit(e Event) {
	if e.File != "" {
		e.File = p.layout.Rel(e.File)
	}
	p.reporter.Report(e)
}

// otherContent is every JSON file under the content root outside the item,
// image, and locale folders.
func (p *Pruner) otherContent() (*ident.Text, error) {
	blob, err := p.reader.Blob(corpus.Query{
		Dir:             p.layout.ContentRoot,
		Pattern:         corpus.DeepJSON,
		ExcludeDirs:     p.layout.NonReferentialDirs(),
		ExcludePatterns: p.exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read reference corpus: %w", err)
	}
	return ident.NewText(blob, p.policy), nil
}

// itemFiles maps the lower-cased names of the JSON files directly under Items
// to their paths, so configured names match regardless of case.
func (p *Pruner) itemFiles() (map[string]string, error) {
	files, err := p.reader.Files(corpus.Query{Dir: p.layout.ItemsPath(), Pattern: corpus.FlatJSON})
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(files))
	for _, file := range files {
		byName[strings.ToLower(filepath.Base(file))] = file
	}
	return byName, nil
}

func (p *Pruner) write(file string, tree *jsontree.Node) error {
	if err := p.reader.Write(file, jsontree.Encode(tree, p.indent)); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", p.layout.Rel(file), err)
	}
	return nil
}
