package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/albertborsos/mergeflow/prompt"
)

// Choice values for the conflict-resolution menu.
const (
	resolveContinue = "continue"
	resolveAbort    = "abort"
	resolveExit     = "exit"
)

// mergeAll merges the selected branches into target: first a single octopus
// attempt across the whole selection, then one branch at a time when the
// octopus attempt fails.
func (w *Workflow) mergeAll(ctx context.Context, target string, sources []string) error {
	dir := w.opts.WorkDir

	refs := make([]string, len(sources))
	for i, name := range sources {
		refs[i] = w.qualify(name)
	}

	w.prompt.Notify("Merging", fmt.Sprintf("Attempting combined merge of %d branch(es) into %s", len(refs), target))
	err := w.vcs.MergeOctopus(ctx, dir, refs)
	if err == nil {
		w.log.Info("octopus merge succeeded", "target", target, "refs", refs)
		return nil
	}

	w.log.Warn("octopus merge failed, falling back to sequential merges", "error", err)
	w.prompt.Notify("Combined merge failed", "Falling back to merging one branch at a time.")

	// The failed octopus attempt must be unwound before anything else
	// touches the tree. If even the abort fails the repository state is
	// ambiguous and no automatic recovery is safe.
	if aerr := w.vcs.AbortMerge(ctx, dir); aerr != nil {
		return fmt.Errorf("combined merge failed and could not be aborted; the repository needs manual attention: %w", aerr)
	}

	return w.mergeSequentially(ctx, target, sources)
}

// mergeSequentially merges each source into target in selection order,
// routing failures through the conflict-resolution loop.
func (w *Workflow) mergeSequentially(ctx context.Context, target string, sources []string) error {
	dir := w.opts.WorkDir

	for _, name := range sources {
		// Re-verify the checkout before every merge rather than trusting
		// that nothing moved HEAD since the last iteration.
		current, err := w.vcs.CurrentBranch(ctx, dir)
		if err != nil {
			return err
		}
		if current != target {
			return fmt.Errorf("expected to be on %q but HEAD is on %q; refusing to merge %s", target, current, name)
		}

		if err := w.vcs.Merge(ctx, dir, w.qualify(name)); err != nil {
			w.log.Info("sequential merge failed, entering conflict resolution", "branch", name, "error", err)
			if rerr := w.resolveConflict(ctx, target, name); rerr != nil {
				return rerr
			}
			continue
		}

		w.prompt.Notify("Merged", fmt.Sprintf("%s merged into %s", name, target))
	}

	return nil
}

// resolveConflict runs the interactive loop for one failed merge. The user
// edits conflicted files outside this tool; here they only declare what to
// do next. Returns nil when the merge was committed or aborted, and
// ErrExitRequested when the user wants the whole run to stop.
func (w *Workflow) resolveConflict(ctx context.Context, target, branch string) error {
	dir := w.opts.WorkDir

	options := []prompt.Option{
		{Label: "Continue: conflicts are resolved, commit the merge", Value: resolveContinue},
		{Label: "Abort: skip this branch and undo its merge", Value: resolveAbort},
		{Label: "Exit: stop the whole run now", Value: resolveExit},
	}

	for {
		choice, err := w.prompt.ChooseOne("Merge conflict",
			fmt.Sprintf("Merging %s into %s stopped on conflicts. Resolve the files in your editor, then choose how to proceed.", branch, target),
			options)
		if err != nil {
			if errors.Is(err, prompt.ErrCancelled) {
				continue // re-display the same menu
			}
			return err
		}

		switch choice {
		case resolveContinue:
			files, err := w.vcs.ConflictedFiles(ctx, dir)
			if err != nil {
				return err
			}
			if len(files) > 0 {
				w.prompt.Notify("Unresolved conflicts remain", strings.Join(files, "\n"))
				continue
			}
			if err := w.vcs.StageAll(ctx, dir); err != nil {
				return err
			}
			if err := w.vcs.CommitMerge(ctx, dir); err != nil {
				return err
			}
			w.prompt.Notify("Merged", fmt.Sprintf("%s merged into %s after conflict resolution", branch, target))
			return nil

		case resolveAbort:
			if err := w.vcs.AbortMerge(ctx, dir); err != nil {
				return fmt.Errorf("failed to abort merge of %s: %w", branch, err)
			}
			w.prompt.Notify("Skipped", fmt.Sprintf("%s was not merged", branch))
			return nil

		case resolveExit:
			return fmt.Errorf("%w: %s may be left in a mid-merge state", ErrExitRequested, target)

		default:
			continue
		}
	}
}
