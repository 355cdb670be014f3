package prune

import (
	"fmt"
	"strings"

	"github.com/morozRed/refprune/internal/corpus"
	"github.com/morozRed/refprune/internal/ident"
	"github.com/morozRed/refprune/internal/jsontree"
)

// NodeRemoval is one record detached from a reference file.
type NodeRemoval struct {
	File string `json:"file"`
	ID   string `json:"id"`
	Path string `json:"path"`
}

type CascadeResult struct {
	Removed []NodeRemoval `json:"removed,omitempty"`
	Skipped []NodeRemoval `json:"skipped,omitempty"`
	Files   []string      `json:"files,omitempty"`
}

// RecordOf returns the record that owns a matched string: the object holding
// the member whose value is the string. A string inside an array has no
// record. In a model with explicit property nodes this is the grandparent of
// the value (value, property, object).
func RecordOf(match *jsontree.Node) *jsontree.Node {
	parent := match.Parent()
	if parent == nil || parent.Kind != jsontree.KindObject {
		return nil
	}
	return parent
}

// Cascade removes, from every file under the reference folders, each record
// holding a string value equal (case-insensitively) to one of the dead ids.
// Files that do not mention any dead id are not parsed or rewritten.
func (p *Pruner) Cascade(dead []string) (*CascadeResult, error) {
	result := &CascadeResult{}
	if len(dead) == 0 {
		return result, nil
	}
	if err := p.layout.CheckReferenceDirs(); err != nil {
		return nil, err
	}

	for _, dir := range p.layout.ReferencePaths() {
		files, err := p.reader.Files(corpus.Query{
			Dir:             dir,
			Pattern:         corpus.DeepJSON,
			ExcludePatterns: p.exclude,
		})
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			p.emit(Event{Phase: PhaseCascade, Kind: EventFileScanned, File: file})
			removed, skipped, err := p.cascadeFile(file, dead)
			if err != nil {
				return nil, err
			}
			result.Skipped = append(result.Skipped, skipped...)
			if len(removed) == 0 {
				continue
			}
			result.Removed = append(result.Removed, removed...)
			result.Files = append(result.Files, p.layout.Rel(file))
		}
	}
	return result, nil
}

func (p *Pruner) cascadeFile(file string, dead []string) ([]NodeRemoval, []NodeRemoval, error) {
	data, err := p.reader.Read(file)
	if err != nil {
		return nil, nil, err
	}
	if !ident.ContainsAny(string(data), dead) {
		return nil, nil, nil
	}

	rel := p.layout.Rel(file)
	tree, err := jsontree.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", rel, err)
	}

	var removed, skipped []NodeRemoval
	seen := make(map[*jsontree.Node]bool)
	for _, id := range dead {
		matches := jsontree.FindStrings(tree, func(value string) bool {
			return strings.EqualFold(value, id)
		})
		for _, match := range matches {
			if !match.AttachedTo(tree) {
				continue
			}
			record := RecordOf(match)
			if record == nil || seen[record] {
				continue
			}
			seen[record] = true

			entry := NodeRemoval{File: rel, ID: id, Path: record.Path()}
			if !record.Detach() {
				skipped = append(skipped, entry)
				p.emit(Event{Phase: PhaseCascade, Kind: EventNodeSkipped, File: file, ID: id, Path: entry.Path,
					Message: "record is the document root"})
				continue
			}
			removed = append(removed, entry)
			p.emit(Event{Phase: PhaseCascade, Kind: EventNodeRemoved, File: file, ID: id, Path: entry.Path})
		}
	}

	if len(removed) == 0 {
		return nil, skipped, nil
	}
	if err := p.write(file, tree); err != nil {
		return nil, nil, err
	}
	p.emit(Event{Phase: PhaseCascade, Kind: EventFileChanged, File: file})
	return removed, skipped, nil
}
