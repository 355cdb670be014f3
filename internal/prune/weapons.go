package prune

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/morozRed/refprune/internal/corpus"
	"github.com/morozRed/refprune/internal/fileutil"
	"github.com/morozRed/refprune/internal/ident"
)

// ResolveWeapons returns the ids defined by the weapon files in removals that
// are still mentioned outside the item folders. The weapon files themselves
// are left on disk.
func (p *Pruner) ResolveWeapons(removals []string) ([]string, error) {
	wanted := make(map[string]string, len(removals))
	for _, name := range removals {
		name = fileutil.EnsureJSONExt(name)
		if name == "" {
			continue
		}
		wanted[strings.ToLower(name)] = name
	}
	if len(wanted) == 0 {
		p.emit(Event{Phase: PhaseWeapons, Kind: EventNothingToDo, Message: "no weapons removed"})
		return nil, nil
	}

	files, err := p.reader.Files(corpus.Query{Dir: p.layout.ItemsPath(), Pattern: corpus.FlatJSON})
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, file := range files {
		key := strings.ToLower(filepath.Base(file))
		if _, ok := wanted[key]; ok {
			matched = append(matched, file)
			delete(wanted, key)
		}
	}
	missing := make([]string, 0, len(wanted))
	for _, name := range wanted {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	for _, name := range missing {
		p.emit(Event{Phase: PhaseWeapons, Kind: EventFileMissing, File: p.layout.ItemFile(name)})
	}
	if len(matched) == 0 {
		p.emit(Event{Phase: PhaseWeapons, Kind: EventNothingToDo, Message: "no weapons removed"})
		return nil, nil
	}

	other, err := p.otherContent()
	if err != nil {
		return nil, err
	}

	var dangling []string
	for _, file := range matched {
		data, err := p.reader.Read(file)
		if err != nil {
			return nil, err
		}
		ids, err := ident.Keys(p.layout.Rel(file), data)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if !other.References(id) {
				continue
			}
			dangling = append(dangling, id)
			p.emit(Event{Phase: PhaseWeapons, Kind: EventIDDangling, File: file, ID: id})
		}
	}

	dangling = fileutil.DedupeStrings(dangling)
	if len(dangling) == 0 {
		p.emit(Event{Phase: PhaseWeapons, Kind: EventNothingToDo, Message: "no removed weapon ids referenced elsewhere"})
	}
	return dangling, nil
}
