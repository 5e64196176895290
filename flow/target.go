package flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/albertborsos/mergeflow/prompt"
)

// Choice values for the target-resolution menus.
const (
	targetExisting = "existing"
	targetNew      = "new"

	collisionDelete = "delete"
	collisionKeep   = "keep"
)

// resolveTarget determines the branch that receives the merges and leaves it
// checked out. It returns ErrCancelled when the user backs out.
func (w *Workflow) resolveTarget(ctx context.Context) (string, error) {
	mode, err := w.prompt.ChooseOne("Target branch",
		"Merge into an existing branch or create a new one?",
		[]prompt.Option{
			{Label: "Use an existing branch", Value: targetExisting},
			{Label: "Create a new branch", Value: targetNew},
		})
	if err != nil {
		return "", asCancelled(err)
	}

	var target string
	switch mode {
	case targetExisting:
		target, err = w.chooseExistingTarget(ctx)
	case targetNew:
		target, err = w.createNewTarget(ctx)
	default:
		return "", ErrCancelled
	}
	if err != nil {
		return "", err
	}

	// Never trust ambient checkout state: a silently failed checkout would
	// redirect every following merge into the wrong branch.
	current, err := w.vcs.CurrentBranch(ctx, w.opts.WorkDir)
	if err != nil {
		return "", err
	}
	if current != target {
		return "", fmt.Errorf("expected to be on %q after target resolution, but HEAD is on %q", target, current)
	}

	return target, nil
}

// chooseExistingTarget lets the user pick one of the local branches.
func (w *Workflow) chooseExistingTarget(ctx context.Context) (string, error) {
	branches, err := w.vcs.LocalBranches(ctx, w.opts.WorkDir)
	if err != nil {
		return "", err
	}
	if len(branches) == 0 {
		return "", errors.New("no local branches exist to merge into")
	}

	options := make([]prompt.Option, len(branches))
	for i, name := range branches {
		options[i] = prompt.Option{Label: name, Value: name}
	}

	target, err := w.prompt.ChooseOne("Target branch", "Select the branch to merge into.", options)
	if err != nil {
		return "", asCancelled(err)
	}

	if err := w.vcs.Checkout(ctx, w.opts.WorkDir, target); err != nil {
		return "", err
	}
	return target, nil
}

// createNewTarget asks for a branch name and creates it. A name collision is
// surfaced as an explicit delete/keep choice, never decided silently.
func (w *Workflow) createNewTarget(ctx context.Context) (string, error) {
	name, err := w.prompt.InputText("New target branch", "Name for the branch that receives the merges.", "integration")
	if err != nil {
		return "", asCancelled(err)
	}
	if name == "" {
		return "", ErrCancelled
	}

	if !w.vcs.BranchExists(ctx, w.opts.WorkDir, name) {
		if err := w.vcs.CreateBranch(ctx, w.opts.WorkDir, name); err != nil {
			return "", err
		}
		return name, nil
	}

	choice, err := w.prompt.ChooseOne("Branch exists",
		fmt.Sprintf("A local branch named %q already exists.", name),
		[]prompt.Option{
			{Label: "Delete it and start fresh from the primary branch", Value: collisionDelete},
			{Label: "Keep it and merge into it as-is", Value: collisionKeep},
		})
	if err != nil {
		return "", asCancelled(err)
	}

	switch choice {
	case collisionDelete:
		primary := w.vcs.DefaultBranch(ctx, w.opts.WorkDir, w.opts.Remote, w.opts.PrimaryBranches)
		if err := w.vcs.Checkout(ctx, w.opts.WorkDir, primary); err != nil {
			return "", err
		}
		if err := w.vcs.DeleteBranch(ctx, w.opts.WorkDir, name); err != nil {
			return "", err
		}
		if err := w.vcs.CreateBranch(ctx, w.opts.WorkDir, name); err != nil {
			return "", err
		}
	case collisionKeep:
		if err := w.vcs.Checkout(ctx, w.opts.WorkDir, name); err != nil {
			return "", err
		}
	default:
		return "", ErrCancelled
	}

	return name, nil
}

// asCancelled maps the prompt layer's cancellation into the workflow's.
func asCancelled(err error) error {
	if errors.Is(err, prompt.ErrCancelled) {
		return ErrCancelled
	}
	return err
}
