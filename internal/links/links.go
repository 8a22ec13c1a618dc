package links

import (
	"errors"
	"fmt"
	"os"

	"github.com/linkfarm/linkfarm/internal/filesystem"
	"github.com/linkfarm/linkfarm/internal/logger"
	"github.com/linkfarm/linkfarm/internal/manifest"
)

// Called before an existing link is pointed somewhere else.
// Returning false leaves the link untouched.
type ConfirmFunc func(entry manifest.Entry, current string) (bool, error)

type ApplyOptions struct {
	DryRun  bool
	DirMode os.FileMode
	Confirm ConfirmFunc
}

type Action string

const (
	ActionCreated   Action = "created"
	ActionReplaced  Action = "replaced"
	ActionUnchanged Action = "unchanged"
	ActionSkipped   Action = "skipped"
	ActionFailed    Action = "failed"
)

type Result struct {
	Entry  manifest.Entry
	State  filesystem.LinkState
	Action Action
	Err    error
}

type Report struct {
	Results []Result
}

func (r *Report) Count(action Action) int {
	count := 0
	for _, result := range r.Results {
		if result.Action == action {
			count++
		}
	}
	return count
}

// Bring every entry in line with the manifest. Failures for one
// entry do not stop the rest from being processed; all of them are
// joined into the returned error.
func Apply(fsys filesystem.Filesystem, log logger.Logger, entries []manifest.Entry, opts ApplyOptions) (*Report, error) {
	dirMode := opts.DirMode
	if dirMode == 0 {
		dirMode = filesystem.DefaultDirMode
	}

	report := &Report{Results: make([]Result, 0, len(entries))}
	var errs []error

	for _, entry := range entries {
		result := applyEntry(fsys, log, entry, dirMode, opts)
		if result.Err != nil {
			log.Errorf("%v: %v", entry.Name, result.Err)
			errs = append(errs, result.Err)
		}
		report.Results = append(report.Results, result)
	}

	return report, errors.Join(errs...)
}

func applyEntry(fsys filesystem.Filesystem, log logger.Logger, entry manifest.Entry, dirMode os.FileMode, opts ApplyOptions) Result {
	result := Result{Entry: entry}

	state, current, err := filesystem.Inspect(fsys, entry.Path, entry.Target)
	result.State = state
	if err != nil {
		result.Action = ActionFailed
		result.Err = fmt.Errorf("failed to inspect %v: %w", entry.Path, err)
		return result
	}

	var action Action

	switch state {
	case filesystem.LinkOK:
		log.Debugf("%v already points to %v", entry.Name, entry.Target)
		result.Action = ActionUnchanged
		return result
	case filesystem.LinkConflict:
		result.Action = ActionFailed
		result.Err = &filesystem.LinkError{Op: "replace", Link: entry.Path, Target: entry.Target, Err: filesystem.ErrNotSymlink}
		return result
	case filesystem.LinkRetarget:
		if opts.Confirm != nil && !opts.DryRun {
			confirmed, err := opts.Confirm(entry, current)
			if err != nil {
				result.Action = ActionFailed
				result.Err = err
				return result
			}
			if !confirmed {
				log.Warnf("leaving %v pointing to %v", entry.Name, current)
				result.Action = ActionSkipped
				return result
			}
		}
		action = ActionReplaced
	case filesystem.LinkBroken:
		// Correct link, missing target.
		log.Warnf("%v points to %v, which does not exist", entry.Name, entry.Target)
		result.Action = ActionUnchanged
		return result
	default:
		action = ActionCreated
	}

	if opts.DryRun {
		log.Infof("would link %v -> %v (%v)", entry.Name, entry.Target, state)
		result.Action = ActionSkipped
		return result
	}

	if err := filesystem.AddSymbolicLinkWithMode(fsys, entry.Path, entry.Target, dirMode); err != nil {
		result.Action = ActionFailed
		result.Err = err
		return result
	}

	log.Infof("%v %v -> %v", action, entry.Name, entry.Target)
	result.Action = action

	return result
}

type EntryStatus struct {
	Entry   manifest.Entry       `json:"entry"`
	State   filesystem.LinkState `json:"state"`
	Current string               `json:"current,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func Status(fsys filesystem.Filesystem, entries []manifest.Entry) []EntryStatus {
	statuses := make([]EntryStatus, 0, len(entries))

	for _, entry := range entries {
		state, current, err := filesystem.Inspect(fsys, entry.Path, entry.Target)

		status := EntryStatus{
			Entry:   entry,
			State:   state,
			Current: current,
		}
		if err != nil {
			status.Error = err.Error()
		}

		statuses = append(statuses, status)
	}

	return statuses
}
