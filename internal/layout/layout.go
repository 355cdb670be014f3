// Package layout describes the fixed folder structure of a mod's content
// database and validates that a directory is a usable mod root.
package layout

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultContentDir = "db"
	DefaultMarkerFile = "package.json"

	ItemsDir   = "Items"
	ImagesDir  = "Images"
	LocalesDir = "locales"
)

// ReferenceDirs are scanned recursively when dead identifiers are cleaned up.
var ReferenceDirs = []string{
	"CustomAssortSchemes",
	"CustomLootspawnService",
	"CustomWeaponPresets",
	"Quests",
}

// DefaultAttachmentCategories lists the attachment category files under Items.
var DefaultAttachmentCategories = []string{
	"Barrels.json",
	"ChargingHandles.json",
	"Foregrips.json",
	"GasBlocks.json",
	"Handguards.json",
	"Magazines.json",
	"Mounts.json",
	"MuzzleDevices.json",
	"PistolGrips.json",
	"Receivers.json",
	"Scopes.json",
	"Stocks.json",
	"TacticalDevices.json",
}

var ErrInvalidRoot = errors.New("invalid mod root")

// ConfigError explains why a root was rejected. It wraps ErrInvalidRoot.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrInvalidRoot, e.Path, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidRoot
}

// Layout holds the resolved locations for one run.
type Layout struct {
	Root        string
	ContentRoot string
	MarkerFile  string
}

// Resolve validates root and returns its layout. The root must exist, contain
// markerFile, and contain the content directory.
func Resolve(root, contentDir, markerFile string) (Layout, error) {
	if contentDir == "" {
		contentDir = DefaultContentDir
	}
	if markerFile == "" {
		markerFile = DefaultMarkerFile
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to resolve path %q: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return Layout{}, &ConfigError{Path: absRoot, Reason: "directory does not exist"}
		}
		return Layout{}, fmt.Errorf("failed to access path %q: %w", absRoot, err)
	}
	if !info.IsDir() {
		return Layout{}, &ConfigError{Path: absRoot, Reason: "not a directory"}
	}

	if _, err := os.Stat(filepath.Join(absRoot, markerFile)); err != nil {
		if os.IsNotExist(err) {
			return Layout{}, &ConfigError{Path: absRoot, Reason: fmt.Sprintf("missing marker file %s", markerFile)}
		}
		return Layout{}, fmt.Errorf("failed to access marker file: %w", err)
	}

	contentRoot := contentDir
	if !filepath.IsAbs(contentRoot) {
		contentRoot = filepath.Join(absRoot, contentDir)
	}
	info, err = os.Stat(contentRoot)
	if err != nil || !info.IsDir() {
		return Layout{}, &ConfigError{Path: absRoot, Reason: fmt.Sprintf("missing content directory %s", contentDir)}
	}

	return Layout{Root: absRoot, ContentRoot: contentRoot, MarkerFile: markerFile}, nil
}

func (l Layout) ItemsPath() string {
	return filepath.Join(l.ContentRoot, ItemsDir)
}

func (l Layout) ItemFile(name string) string {
	return filepath.Join(l.ItemsPath(), name)
}

// NonReferentialDirs are definitional or non-semantic folders that never count
// as references: item definitions, images, and locale strings.
func (l Layout) NonReferentialDirs() []string {
	return []string{
		filepath.Join(l.ContentRoot, ItemsDir),
		filepath.Join(l.ContentRoot, ImagesDir),
		filepath.Join(l.ContentRoot, LocalesDir),
	}
}

func (l Layout) ReferencePaths() []string {
	paths := make([]string, 0, len(ReferenceDirs))
	for _, dir := range ReferenceDirs {
		paths = append(paths, filepath.Join(l.ContentRoot, dir))
	}
	return paths
}

// CheckReferenceDirs fails with a *ConfigError naming the first fixed
// reference folder that is missing below the content root.
func (l Layout) CheckReferenceDirs() error {
	for _, dir := range ReferenceDirs {
		if !isDir(filepath.Join(l.ContentRoot, dir)) {
			return &ConfigError{Path: l.Root, Reason: fmt.Sprintf("missing reference folder %s", dir)}
		}
	}
	return nil
}

// Rel returns path relative to the content root, falling back to path itself.
func (l Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.ContentRoot, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
