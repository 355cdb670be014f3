package prune

// Phase names the component that emitted an event.
type Phase string

const (
	PhaseAttachments Phase = "attachments"
	PhaseWeapons     Phase = "weapons"
	PhaseCascade     Phase = "cascade"
)

type EventKind string

const (
	EventFileScanned   EventKind = "file_scanned"
	EventFileChanged   EventKind = "file_changed"
	EventFileUnchanged EventKind = "file_unchanged"
	EventFileMissing   EventKind = "file_missing"
	EventIDRemoved     EventKind = "id_removed"
	EventIDDangling    EventKind = "id_dangling"
	EventNodeRemoved   EventKind = "node_removed"
	EventNodeSkipped   EventKind = "node_skipped"
	EventNothingToDo   EventKind = "nothing_to_do"
)

// Event is one observable step of a run. File is relative to the content root.
type Event struct {
	Phase   Phase     `json:"phase"`
	Kind    EventKind `json:"kind"`
	File    string    `json:"file,omitempty"`
	ID      string    `json:"id,omitempty"`
	Path    string    `json:"path,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Reporter receives events as they happen. The core never prints.
type Reporter interface {
	Report(Event)
}

type ReporterFunc func(Event)

func (f ReporterFunc) Report(e Event) {
	f(e)
}

// Discard drops every event.
var Discard Reporter = ReporterFunc(func(Event) {})

// Recorder keeps every event in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Report(e Event) {
	r.Events = append(r.Events, e)
}

// Filter returns the recorded events of the given kind.
func (r *Recorder) Filter(kind EventKind) []Event {
	var out []Event
	for _, e := range r.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
