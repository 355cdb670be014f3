package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/morozRed/refprune/internal/fileutil"
	"github.com/morozRed/refprune/internal/layout"
	"github.com/morozRed/refprune/internal/prune"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

type RunSummary struct {
	Mode                string              `json:"mode"`
	RunID               string              `json:"run_id"`
	RootPath            string              `json:"root_path"`
	ContentRoot         string              `json:"content_root"`
	Policy              string              `json:"policy"`
	DryRun              bool                `json:"dry_run"`
	Remove              []string            `json:"remove,omitempty"`
	Pruned              []prune.FileRemoval `json:"pruned,omitempty"`
	AttachmentsDangling []string            `json:"attachments_dangling,omitempty"`
	WeaponsDangling     []string            `json:"weapons_dangling,omitempty"`
	Removed             []prune.NodeRemoval `json:"removed,omitempty"`
	Skipped             []prune.NodeRemoval `json:"skipped,omitempty"`
	Written             []string            `json:"written,omitempty"`
	Notes               []string            `json:"notes,omitempty"`
	DurationMS          int64               `json:"duration_ms"`
}

type DoctorSummary struct {
	Mode        string             `json:"mode"`
	RootPath    string             `json:"root_path"`
	ContentRoot string             `json:"content_root,omitempty"`
	Healthy     bool               `json:"healthy"`
	Inspection  *layout.Inspection `json:"inspection,omitempty"`
	Missing     []string           `json:"missing,omitempty"`
	Suggestions []string           `json:"suggestions,omitempty"`
}

type RefsSummary struct {
	Mode     string   `json:"mode"`
	ID       string   `json:"id"`
	RootPath string   `json:"root_path"`
	Policy   string   `json:"policy"`
	Scanned  int      `json:"scanned"`
	Files    []string `json:"files"`
}

func newRunSummary(runID string, l layout.Layout, result *prune.Result, notes []string) RunSummary {
	summary := RunSummary{
		Mode:            "prune",
		RunID:           runID,
		RootPath:        l.Root,
		ContentRoot:     l.ContentRoot,
		WeaponsDangling: result.WeaponsDangling,
		Removed:         result.Removed,
		Skipped:         result.Skipped,
		Written:         result.Written,
		Notes:           notes,
	}
	if result.Attachments != nil {
		summary.Pruned = result.Attachments.Pruned
		summary.AttachmentsDangling = result.Attachments.Dangling
	}
	return summary
}

func (s RunSummary) prunedCount() int {
	total := 0
	for _, file := range s.Pruned {
		total += len(file.IDs)
	}
	return total
}

func PrintRunSummary(w io.Writer, summary RunSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(w, summary)
	}

	mode := summary.Mode
	if summary.DryRun {
		mode += " (dry run, nothing written)"
	}
	fmt.Fprintf(w, "%s in %dms\n", headerStyle.Render(mode+" complete"), summary.DurationMS)
	fmt.Fprintf(w, "%s %s (policy=%s, run=%s)\n", labelStyle.Render("root:"), summary.RootPath, summary.Policy, summary.RunID)

	if len(summary.Pruned) == 0 {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("attachments:"), okStyle.Render("no unused attachments"))
	} else {
		fmt.Fprintf(w, "%s pruned=%d files=%d\n", labelStyle.Render("attachments:"), summary.prunedCount(), len(summary.Pruned))
		for _, file := range summary.Pruned {
			fmt.Fprintf(w, "  %s: %s\n", file.File, SummarizePaths(file.IDs, 8))
		}
		if len(summary.AttachmentsDangling) > 0 {
			fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("still referenced:"), SummarizePaths(summary.AttachmentsDangling, 8))
		}
	}

	switch {
	case len(summary.Remove) == 0:
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("weapons:"), okStyle.Render("no weapons removed"))
	case len(summary.WeaponsDangling) == 0:
		fmt.Fprintf(w, "%s removing %s, no ids referenced elsewhere\n", labelStyle.Render("weapons:"), SummarizePaths(summary.Remove, 8))
	default:
		fmt.Fprintf(w, "%s removing %s\n", labelStyle.Render("weapons:"), SummarizePaths(summary.Remove, 8))
		fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("still referenced:"), SummarizePaths(summary.WeaponsDangling, 8))
	}

	fmt.Fprintf(w, "%s removed=%d skipped=%d\n", labelStyle.Render("cascade:"), len(summary.Removed), len(summary.Skipped))
	for _, removal := range summary.Removed {
		fmt.Fprintf(w, "  %s %s %s\n", removal.File, removal.Path, dimStyle.Render("("+removal.ID+")"))
	}
	for _, skipped := range summary.Skipped {
		fmt.Fprintf(w, "  %s %s %s\n", warnStyle.Render("skipped"), skipped.File, dimStyle.Render("("+skipped.ID+", document root)"))
	}

	if len(summary.Written) > 0 {
		label := "rewritten"
		if summary.DryRun {
			label = "would rewrite"
		}
		fmt.Fprintf(w, "%s (%d): %s\n", labelStyle.Render(label), len(summary.Written), SummarizePaths(summary.Written, 8))
	}
	return nil
}

func PrintDoctorSummary(w io.Writer, summary DoctorSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(w, summary)
	}

	status := okStyle.Render("healthy")
	if !summary.Healthy {
		status = warnStyle.Render("needs attention")
	}
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render("doctor:"), status)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("root:"), summary.RootPath)
	if summary.ContentRoot != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("content:"), summary.ContentRoot)
	}
	if summary.Inspection != nil {
		fmt.Fprintf(w, "%s %d weapon files, %d attachment categories\n",
			labelStyle.Render("items:"), summary.Inspection.WeaponFiles, len(summary.Inspection.Attachments))
	}
	if len(summary.Missing) > 0 {
		fmt.Fprintf(w, "%s (%d): %s\n", warnStyle.Render("missing"), len(summary.Missing), strings.Join(summary.Missing, ", "))
	}
	for _, suggestion := range summary.Suggestions {
		fmt.Fprintf(w, "  %s %s\n", dimStyle.Render("->"), suggestion)
	}
	return nil
}

func PrintRefsSummary(w io.Writer, summary RefsSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(w, summary)
	}
	if len(summary.Files) == 0 {
		fmt.Fprintf(w, "%s is not referenced (%d files scanned, policy=%s)\n", summary.ID, summary.Scanned, summary.Policy)
		return nil
	}
	fmt.Fprintf(w, "%s referenced by %d of %d files (policy=%s)\n",
		headerStyle.Render(summary.ID), len(summary.Files), summary.Scanned, summary.Policy)
	for _, file := range summary.Files {
		fmt.Fprintf(w, "  %s\n", file)
	}
	return nil
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}
