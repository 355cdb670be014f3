package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/morozRed/refprune/internal/config"
	"github.com/morozRed/refprune/internal/fileutil"
	"github.com/morozRed/refprune/internal/layout"
)

func RunDoctor(cmd *cobra.Command, args []string) error {
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	rootPath, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", cfg.Root, err)
	}
	summary := DoctorSummary{
		Mode:     "doctor",
		RootPath: rootPath,
	}

	l, err := layout.Resolve(cfg.Root, cfg.ContentDir, cfg.MarkerFile)
	if err != nil {
		var cfgErr *layout.ConfigError
		if !errors.As(err, &cfgErr) {
			return err
		}
		summary.Missing = append(summary.Missing, cfgErr.Reason)
		summary.Suggestions = append(summary.Suggestions, "point refprune at the mod folder that holds "+markerName(cfg))
		return PrintDoctorSummary(cmd.OutOrStdout(), summary, asJSON)
	}

	removals := make([]string, 0, len(cfg.Remove))
	for _, name := range cfg.Remove {
		if name = fileutil.EnsureJSONExt(name); name != "" {
			removals = append(removals, name)
		}
	}

	inspection := l.Inspect(cfg.Attachments, removals)
	summary.ContentRoot = l.ContentRoot
	summary.Inspection = &inspection
	summary.Missing = inspection.Missing
	summary.Healthy = inspection.Healthy()

	for _, dir := range fileutil.MapKeysSorted(inspection.ReferenceDirs) {
		if !inspection.ReferenceDirs[dir] {
			summary.Suggestions = append(summary.Suggestions, fmt.Sprintf("create %s/ (prune fails while it is missing)", dir))
		}
	}
	for _, name := range fileutil.MapKeysSorted(inspection.Removals) {
		if !inspection.Removals[name] {
			summary.Suggestions = append(summary.Suggestions, fmt.Sprintf("check --remove %s: no such weapon file under %s/", name, layout.ItemsDir))
		}
	}
	if !inspection.ItemsDirExists {
		summary.Suggestions = append(summary.Suggestions, fmt.Sprintf("check --content-dir: %s has no %s/ folder", l.ContentRoot, layout.ItemsDir))
	}

	return PrintDoctorSummary(cmd.OutOrStdout(), summary, asJSON)
}

func markerName(cfg *config.Config) string {
	if cfg.MarkerFile == "" {
		return layout.DefaultMarkerFile
	}
	return cfg.MarkerFile
}
