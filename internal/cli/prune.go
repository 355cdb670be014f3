package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/morozRed/refprune/internal/corpus"
	"github.com/morozRed/refprune/internal/logging"
	"github.com/morozRed/refprune/internal/prune"
)

func RunPrune(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return err
	}
	verbose, err := OptionalBoolFlag(cmd, "verbose", false)
	if err != nil {
		return err
	}

	logger, closeLog := logging.New(logging.Options{
		Verbose: verbose,
		Quiet:   asJSON,
		LogFile: cfg.LogFile,
		Console: cmd.ErrOrStderr(),
	})
	defer closeLog()

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	l, err := resolveLayout(cfg)
	if err != nil {
		logger.Error("invalid mod root", "root", cfg.Root, "err", err)
		return err
	}

	reader, err := corpus.NewReader(corpus.Options{CacheSize: cfg.CacheSize, DryRun: cfg.DryRun})
	if err != nil {
		return err
	}

	progress := newScanProgressReporter("cascade", cmd.ErrOrStderr(), verbose || asJSON)
	reporter := newEventReporter(logger, progress)
	policy := policyFor(cfg)

	pruner := prune.New(l, reader, prune.Options{
		Policy:          policy,
		Indent:          cfg.IndentString(),
		ExcludePatterns: cfg.Exclude,
		Reporter:        reporter,
	})

	logger.Info("starting prune",
		"root", l.Root,
		"remove", cfg.Remove,
		"policy", string(policy),
		"dry_run", cfg.DryRun,
	)
	result, err := pruner.Run(prune.RunOptions{Attachments: cfg.Attachments, Remove: cfg.Remove})
	progress.Done()
	if err != nil {
		logger.Error("run aborted", "err", err)
		return fmt.Errorf("prune failed: %w", err)
	}

	summary := newRunSummary(runID, l, result, reporter.notes)
	summary.Policy = string(policy)
	summary.DryRun = reader.DryRun()
	summary.Remove = cfg.Remove
	summary.DurationMS = time.Since(start).Milliseconds()
	logger.Debug("run finished", "written", len(result.Written), "duration_ms", summary.DurationMS)

	return PrintRunSummary(cmd.OutOrStdout(), summary, asJSON)
}
