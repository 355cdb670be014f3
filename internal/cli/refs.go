package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/morozRed/refprune/internal/corpus"
	"github.com/morozRed/refprune/internal/ident"
	"github.com/morozRed/refprune/internal/layout"
)

// RunRefs lists the content files whose text references one identifier, using
// the same heuristic as prune. Item definitions are included so weapon usage
// of an attachment shows up; images and locales are not.
func RunRefs(cmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])
	if id == "" {
		return fmt.Errorf("identifier must not be empty")
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, args[1:])
	if err != nil {
		return err
	}
	l, err := resolveLayout(cfg)
	if err != nil {
		return err
	}

	reader, err := corpus.NewReader(corpus.Options{CacheSize: cfg.CacheSize})
	if err != nil {
		return err
	}
	files, err := reader.Files(corpus.Query{
		Dir:     l.ContentRoot,
		Pattern: corpus.DeepJSON,
		ExcludeDirs: []string{
			filepath.Join(l.ContentRoot, layout.ImagesDir),
			filepath.Join(l.ContentRoot, layout.LocalesDir),
		},
		ExcludePatterns: cfg.Exclude,
	})
	if err != nil {
		return fmt.Errorf("failed to list content files: %w", err)
	}

	policy := policyFor(cfg)
	summary := RefsSummary{
		Mode:     "refs",
		ID:       id,
		RootPath: l.Root,
		Policy:   string(policy),
		Scanned:  len(files),
		Files:    []string{},
	}
	for _, file := range files {
		data, err := reader.Read(file)
		if err != nil {
			return err
		}
		if ident.NewText(string(data), policy).References(id) {
			summary.Files = append(summary.Files, l.Rel(file))
		}
	}

	return PrintRefsSummary(cmd.OutOrStdout(), summary, asJSON)
}
