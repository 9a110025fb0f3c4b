package main

// TemplateSource identifies the template repository to fetch
type TemplateSource struct {
	URL string
	// Ref is a branch or tag, empty for the remote's default branch
	Ref string
}

// Options is the resolved configuration for a single run
type Options struct {
	Template  TemplateSource
	Paths     []string
	HooksPath string
	Target    string
	Verbose   bool
}

// Status is what happened to a single copy list entry
type Status string

const (
	StatusCopied  Status = "copied"
	StatusSkipped Status = "skipped"
	StatusMissing Status = "missing"
	StatusFailed  Status = "failed"
)

// Outcome records the result of merging one copy list entry
type Outcome struct {
	Entry  string
	Status Status
	Err    error
}

// Result holds the outcomes of a run in copy list order
type Result struct {
	Outcomes []Outcome
}

// Count returns the number of outcomes with the given status
func (r *Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
