package links

import (
	"fmt"
	"strings"
	"time"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/symlink"
)

// Report collects the outcome of one run over a list of pairs
type Report struct {
	RunID     string    `json:"run_id"`
	Command   string    `json:"command"`
	DryRun    bool      `json:"dry_run"`
	StartedAt time.Time `json:"started_at"`
	Results   []Entry   `json:"results"`
	Failed    int       `json:"failed"`
}

// Entry is the outcome for one pair: a Result on success, an error otherwise
type Entry struct {
	Pair
	Result *symlink.Result  `json:"result,omitempty"`
	Err    error            `json:"-"`
	Error  string           `json:"error,omitempty"`
	Code   errors.ErrorCode `json:"code,omitempty"`
}

// OK reports whether the pair was reconciled (or inspected) successfully
func (e Entry) OK() bool {
	return e.Err == nil
}

func (r *Report) add(pair Pair, result *symlink.Result, err error) {
	entry := Entry{Pair: pair, Result: result}
	if err != nil {
		entry.Result = nil
		entry.Err = err
		entry.Error = err.Error()
		entry.Code = errors.GetErrorCode(err)
		r.Failed++
	}
	r.Results = append(r.Results, entry)
}

// Counts tallies successful entries by action
func (r *Report) Counts() map[symlink.Action]int {
	counts := make(map[symlink.Action]int)
	for _, e := range r.Results {
		if e.Result != nil {
			counts[e.Result.Action]++
		}
	}
	return counts
}

// Changed returns the number of links created or replaced
func (r *Report) Changed() int {
	n := 0
	for _, e := range r.Results {
		if e.Result != nil && e.Result.Changed() {
			n++
		}
	}
	return n
}

// Err returns nil if every pair succeeded. Otherwise it wraps the first
// failure, keeping its error code.
func (r *Report) Err() error {
	if r.Failed == 0 {
		return nil
	}
	for _, e := range r.Results {
		if e.Err != nil {
			return errors.Wrapf(e.Err, errors.GetErrorCode(e.Err),
				"%d of %d links failed", r.Failed, len(r.Results)).
				WithDetail("failed", r.Failed)
		}
	}
	return nil
}

// Label is the one-word outcome of an entry: the action for link runs, the
// state for status runs, "failed" on error
func (r *Report) Label(e Entry) string {
	if e.Err != nil || e.Result == nil {
		return "failed"
	}
	if r.Command == "status" {
		return string(e.Result.State)
	}
	return string(e.Result.Action)
}

var summaryOrder = []string{
	string(symlink.ActionCreated),
	string(symlink.ActionReplaced),
	string(symlink.ActionAlreadyLinked),
	string(symlink.ActionRaceSatisfied),
	string(symlink.StateLinked),
	string(symlink.StateMissing),
	string(symlink.StateWrongTarget),
	string(symlink.StateDangling),
	string(symlink.StateNotSymlink),
	"failed",
}

// Summary renders label counts, e.g. "2 created, 1 failed"
func (r *Report) Summary() string {
	if len(r.Results) == 0 {
		return "no links configured"
	}
	counts := make(map[string]int)
	for _, e := range r.Results {
		counts[r.Label(e)]++
	}
	var parts []string
	for _, label := range summaryOrder {
		if n := counts[label]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ReplaceAll(label, "_", " ")))
		}
	}
	return strings.Join(parts, ", ")
}
