package layout

import (
	"os"
	"path/filepath"
	"sort"
)

// Inspection lists what a layout is missing for a prune run.
type Inspection struct {
	ReferenceDirs  map[string]bool `json:"reference_dirs"`
	Attachments    map[string]bool `json:"attachments"`
	Removals       map[string]bool `json:"removals,omitempty"`
	Missing        []string        `json:"missing,omitempty"`
	WeaponFiles    int             `json:"weapon_files"`
	ItemsDirExists bool            `json:"items_dir"`
}

// Healthy is true when nothing required by a run is missing.
func (i Inspection) Healthy() bool {
	return len(i.Missing) == 0
}

// Inspect checks the folders and files a run needs without reading content.
func (l Layout) Inspect(attachments, removals []string) Inspection {
	result := Inspection{
		ReferenceDirs: make(map[string]bool, len(ReferenceDirs)),
		Attachments:   make(map[string]bool, len(attachments)),
		Removals:      make(map[string]bool, len(removals)),
	}

	result.ItemsDirExists = isDir(l.ItemsPath())
	if !result.ItemsDirExists {
		result.Missing = append(result.Missing, ItemsDir+"/")
	}

	for _, dir := range ReferenceDirs {
		ok := isDir(filepath.Join(l.ContentRoot, dir))
		result.ReferenceDirs[dir] = ok
		if !ok {
			result.Missing = append(result.Missing, dir+"/")
		}
	}

	attachmentSet := make(map[string]bool, len(attachments))
	for _, name := range attachments {
		attachmentSet[name] = true
		ok := isFile(l.ItemFile(name))
		result.Attachments[name] = ok
		if !ok {
			result.Missing = append(result.Missing, ItemsDir+"/"+name)
		}
	}
	for _, name := range removals {
		ok := isFile(l.ItemFile(name))
		result.Removals[name] = ok
		if !ok {
			result.Missing = append(result.Missing, ItemsDir+"/"+name)
		}
	}

	if entries, err := os.ReadDir(l.ItemsPath()); err == nil {
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" || attachmentSet[entry.Name()] {
				continue
			}
			result.WeaponFiles++
		}
	}

	sort.Strings(result.Missing)
	return result
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
