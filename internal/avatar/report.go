package avatar

import (
	"errors"
	"fmt"
	"time"
)

// Result is the outcome of one job. The job succeeded iff Err is nil.
type Result struct {
	ID    string `json:"id"`
	Path  string `json:"path,omitempty"`
	Bytes int    `json:"bytes"`
	Err   error  `json:"-"`
}

// OK reports whether the avatar was saved.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report collects the results of one run in job order.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Results    []Result  `json:"results"`
}

// Saved counts successful jobs.
func (r *Report) Saved() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed returns the failed results in job order.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Err summarizes failures, or returns nil if every job succeeded.
func (r *Report) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(failed))
	for _, res := range failed {
		errs = append(errs, fmt.Errorf("%s: %w", res.ID, res.Err))
	}
	return fmt.Errorf("%d of %d avatars failed: %w", len(failed), len(r.Results), errors.Join(errs...))
}
