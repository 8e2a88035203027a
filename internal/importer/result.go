package importer

// OutcomeKind classifies the effect of importing one descriptor.
type OutcomeKind string

const (
	OutcomeCreated OutcomeKind = "created"
	OutcomeUpdated OutcomeKind = "updated"
	OutcomeSkipped OutcomeKind = "skipped"
)

// FileResult records the outcome for a single descriptor.
type FileResult struct {
	Entry
	Outcome OutcomeKind
	UUID    string
	Err     error
}

// Result collects per-file outcomes of a Run in processing order.
type Result struct {
	Files []FileResult
}

func (r *Result) add(entry Entry, kind OutcomeKind, id string, err error) {
	r.Files = append(r.Files, FileResult{Entry: entry, Outcome: kind, UUID: id, Err: err})
}

// Count returns how many files ended with the given outcome.
func (r Result) Count(kind OutcomeKind) int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome == kind {
			n++
		}
	}
	return n
}
