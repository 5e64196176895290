// Package flow implements mergeflow's merge-orchestration workflow:
// precondition checks, target-branch resolution, source-branch selection,
// an octopus merge attempt across the whole selection, and a sequential
// per-branch fallback with interactive conflict resolution.
//
// The workflow is strictly sequential: one blocking prompt or git call at a
// time, no background work. All repository mutation goes through the VCS
// interface; all user interaction goes through prompt.Prompter.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albertborsos/mergeflow/logger"
	"github.com/albertborsos/mergeflow/notification"
	"github.com/albertborsos/mergeflow/prompt"
)

// Options configures a Workflow. Ambient state is deliberately avoided:
// the working directory and remote are threaded through every call.
type Options struct {
	// WorkDir is the repository to operate in.
	WorkDir string

	// Remote is the remote whose branches are offered for merging.
	Remote string

	// BranchPrefix optionally restricts source candidates to branches
	// whose name starts with the prefix.
	BranchPrefix string

	// PrimaryBranches are the default-branch candidates used when a
	// colliding target branch is deleted and recreated.
	PrimaryBranches []string

	// DesktopNotifications sends a desktop notification when the run
	// completes successfully.
	DesktopNotifications bool
}

// Workflow drives one merge session from precondition checks to completion.
type Workflow struct {
	vcs    VCS
	prompt prompt.Prompter
	opts   Options
	log    *slog.Logger
}

// New creates a Workflow. Zero-value options get sensible defaults.
func New(vcs VCS, p prompt.Prompter, opts Options) *Workflow {
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	if opts.Remote == "" {
		opts.Remote = "origin"
	}
	if len(opts.PrimaryBranches) == 0 {
		opts.PrimaryBranches = []string{"main", "master"}
	}
	return &Workflow{
		vcs:    vcs,
		prompt: p,
		opts:   opts,
		log:    logger.WithComponent("flow"),
	}
}

// Run executes the whole workflow. It returns nil on success, ErrCancelled
// when the user backs out of a selection step, and a descriptive error for
// every fatal condition. Nothing is mutated before the precondition checks
// pass.
func (w *Workflow) Run(ctx context.Context) error {
	dir := w.opts.WorkDir

	if !w.vcs.IsRepository(ctx, dir) {
		return fmt.Errorf("%s is not a git repository", dir)
	}

	if inProgress, err := w.vcs.IsMergeInProgress(ctx, dir); err != nil {
		return err
	} else if inProgress {
		return errors.New("a merge is already in progress; resolve or abort it before running mergeflow")
	}

	clean, err := w.vcs.IsClean(ctx, dir)
	if err != nil {
		return err
	}
	if !clean {
		return errors.New("working directory is not clean; commit or stash your changes first")
	}

	w.prompt.Notify("Fetching", fmt.Sprintf("Updating refs from %s", w.opts.Remote))
	if err := w.vcs.Fetch(ctx, dir, w.opts.Remote); err != nil {
		return err
	}

	target, err := w.resolveTarget(ctx)
	if err != nil {
		return err
	}
	w.log.Info("target resolved", "target", target)

	sources, err := w.selectSources(ctx, target)
	if err != nil {
		return err
	}
	w.log.Info("sources selected", "sources", sources)

	if err := w.mergeAll(ctx, target, sources); err != nil {
		return err
	}

	w.prompt.Notify("Merge complete",
		fmt.Sprintf("All selected branches processed into %s. Review the result and push when ready.", target))
	if w.opts.DesktopNotifications {
		// Best-effort: a missing notification daemon never fails the run.
		_ = notification.MergeCompleted(target, len(sources))
	}
	return nil
}

// qualify turns a bare branch name into its remote-tracking ref.
func (w *Workflow) qualify(name string) string {
	return w.opts.Remote + "/" + name
}
