package prune

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/morozRed/refprune/internal/corpus"
	"github.com/morozRed/refprune/internal/fileutil"
	"github.com/morozRed/refprune/internal/ident"
	"github.com/morozRed/refprune/internal/jsontree"
)

// FileRemoval lists the identifiers removed from one category file.
type FileRemoval struct {
	File string   `json:"file"`
	IDs  []string `json:"ids"`
}

type AttachmentResult struct {
	Pruned []FileRemoval `json:"pruned,omitempty"`
	// Dangling are pruned ids still mentioned outside the item folders.
	Dangling []string `json:"dangling,omitempty"`
}

// PruneAttachments removes every attachment id that no surviving weapon file
// mentions. Weapon files named in removals do not count as surviving.
// Category names match files under Items case-insensitively; categories
// missing from disk are skipped.
func (p *Pruner) PruneAttachments(categories, removals []string) (*AttachmentResult, error) {
	excluded := make([]string, 0, len(categories)+len(removals))
	for _, name := range categories {
		excluded = append(excluded, fileutil.EnsureJSONExt(name))
	}
	for _, name := range removals {
		excluded = append(excluded, fileutil.EnsureJSONExt(name))
	}

	weaponBlob, err := p.reader.Blob(corpus.Query{
		Dir:          p.layout.ItemsPath(),
		Pattern:      corpus.FlatJSON,
		ExcludeFiles: excluded,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read weapon corpus: %w", err)
	}
	weapons := ident.NewText(weaponBlob, p.policy)

	items, err := p.itemFiles()
	if err != nil {
		return nil, err
	}

	result := &AttachmentResult{}
	var dead []string
	for _, name := range categories {
		name = fileutil.EnsureJSONExt(name)
		if name == "" {
			continue
		}
		file, ok := items[strings.ToLower(name)]
		if !ok {
			p.emit(Event{Phase: PhaseAttachments, Kind: EventFileMissing, File: p.layout.ItemFile(name)})
			continue
		}
		removed, err := p.pruneCategory(file, weapons)
		if err != nil {
			return nil, err
		}
		if len(removed) > 0 {
			result.Pruned = append(result.Pruned, FileRemoval{File: p.layout.Rel(file), IDs: removed})
			dead = append(dead, removed...)
		}
	}

	if len(dead) == 0 {
		p.emit(Event{Phase: PhaseAttachments, Kind: EventNothingToDo, Message: "no unused attachments"})
		return result, nil
	}

	other, err := p.otherContent()
	if err != nil {
		return nil, err
	}
	for _, id := range fileutil.DedupeStrings(dead) {
		if !other.References(id) {
			continue
		}
		result.Dangling = append(result.Dangling, id)
		p.emit(Event{Phase: PhaseAttachments, Kind: EventIDDangling, ID: id})
	}
	return result, nil
}

func (p *Pruner) pruneCategory(file string, weapons *ident.Text) ([]string, error) {
	data, err := p.reader.Read(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.emit(Event{Phase: PhaseAttachments, Kind: EventFileMissing, File: file})
			return nil, nil
		}
		return nil, err
	}

	ids, err := ident.Keys(p.layout.Rel(file), data)
	if err != nil {
		return nil, err
	}

	var unused []string
	for _, id := range ids {
		if !weapons.References(id) {
			unused = append(unused, id)
		}
	}
	unused = fileutil.DedupeStrings(unused)
	if len(unused) == 0 {
		p.emit(Event{Phase: PhaseAttachments, Kind: EventFileUnchanged, File: file})
		return nil, nil
	}

	tree, err := jsontree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", p.layout.Rel(file), err)
	}
	for _, id := range unused {
		tree.Delete(id)
		p.emit(Event{Phase: PhaseAttachments, Kind: EventIDRemoved, File: file, ID: id})
	}
	if err := p.write(file, tree); err != nil {
		return nil, err
	}
	p.emit(Event{Phase: PhaseAttachments, Kind: EventFileChanged, File: file})
	return unused, nil
}
