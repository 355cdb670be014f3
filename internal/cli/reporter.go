package cli

import (
	"log/slog"

	"github.com/morozRed/refprune/internal/prune"
)

// eventReporter renders core events as log records and remembers the
// "nothing to do" notes for the summary.
type eventReporter struct {
	logger   *slog.Logger
	progress *scanProgressReporter
	notes    []string
}

func newEventReporter(logger *slog.Logger, progress *scanProgressReporter) *eventReporter {
	return &eventReporter{logger: logger, progress: progress}
}

func (r *eventReporter) Report(e prune.Event) {
	attrs := []any{"phase", string(e.Phase), "kind", string(e.Kind)}
	if e.File != "" {
		attrs = append(attrs, "file", e.File)
	}
	if e.ID != "" {
		attrs = append(attrs, "id", e.ID)
	}
	if e.Path != "" {
		attrs = append(attrs, "path", e.Path)
	}

	if e.Kind == prune.EventFileScanned {
		r.progress.Update(e.File)
		r.logger.Debug("scanned reference file", attrs...)
		return
	}
	r.progress.Clear()

	switch e.Kind {
	case prune.EventFileUnchanged:
		r.logger.Info("unchanged", attrs...)
	case prune.EventFileChanged:
		r.logger.Info("changed", attrs...)
	case prune.EventFileMissing:
		r.logger.Warn("file not found, skipped", attrs...)
	case prune.EventIDRemoved:
		r.logger.Info("removed unused attachment", attrs...)
	case prune.EventIDDangling:
		r.logger.Info("still referenced elsewhere, cleanup needed", attrs...)
	case prune.EventNodeRemoved:
		r.logger.Info("removed record", attrs...)
	case prune.EventNodeSkipped:
		r.logger.Warn("record left in place", append(attrs, "reason", e.Message)...)
	case prune.EventNothingToDo:
		r.notes = append(r.notes, e.Message)
		r.logger.Info(e.Message, attrs...)
	default:
		r.logger.Debug(string(e.Kind), attrs...)
	}
}
