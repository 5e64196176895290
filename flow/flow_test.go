package flow

import (
	"context"
	"errors"
	"strings"
	"testing"
)

var ctx = context.Background()

func TestRun_NotARepository(t *testing.T) {
	vcs := newFakeVCS()
	vcs.isRepo = false
	sp := &scriptedPrompter{}

	err := newWorkflow(vcs, sp).Run(ctx)
	if err == nil {
		t.Fatal("expected error outside a repository")
	}
	if vcs.countCalls("fetch") != 0 {
		t.Error("nothing should be fetched when not in a repository")
	}
}

// Scenario C: a dirty working directory stops the run before any
// fetch, checkout, or merge call is made.
func TestRun_DirtyWorkingDirectory(t *testing.T) {
	vcs := newFakeVCS()
	vcs.dirty = true
	sp := &scriptedPrompter{}

	err := newWorkflow(vcs, sp).Run(ctx)
	if err == nil {
		t.Fatal("expected error for dirty working directory")
	}
	if !strings.Contains(err.Error(), "not clean") {
		t.Errorf("unexpected error: %v", err)
	}
	if len(vcs.calls) != 0 {
		t.Errorf("no git mutation should happen before the clean check, got %v", vcs.calls)
	}
}

func TestRun_MergeAlreadyInProgress(t *testing.T) {
	vcs := newFakeVCS()
	vcs.mergeInProgress = true
	sp := &scriptedPrompter{}

	err := newWorkflow(vcs, sp).Run(ctx)
	if err == nil {
		t.Fatal("expected error when a merge is already in progress")
	}
	if len(vcs.calls) != 0 {
		t.Errorf("no git mutation should happen, got %v", vcs.calls)
	}
}

func TestRun_FetchFailureIsFatal(t *testing.T) {
	vcs := newFakeVCS()
	vcs.fetchErr = errors.New("unable to access remote")
	sp := &scriptedPrompter{}

	err := newWorkflow(vcs, sp).Run(ctx)
	if err == nil {
		t.Fatal("expected fetch error to abort the run")
	}
	if len(sp.oneCalls) != 0 {
		t.Error("no target prompt should appear after a failed fetch")
	}
}

// Scenario A: target = existing branch "release", both selected branches
// merge cleanly in the octopus attempt. Exactly one combined merge call,
// zero sequential merges, success notice naming "release".
func TestRun_OctopusSuccess(t *testing.T) {
	vcs := newFakeVCS()
	vcs.localBranches = []string{"main", "release"}
	vcs.remoteRefs = []string{"origin/feat-a", "origin/feat-b", "origin/release"}
	sp := &scriptedPrompter{
		one: []promptResponse{
			{value: targetExisting},
			{value: "release"},
		},
		many: []promptResponse{
			{values: []string{"feat-a", "feat-b"}},
		},
	}

	if err := newWorkflow(vcs, sp).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if n := vcs.countCalls("octopus"); n != 1 {
		t.Errorf("expected exactly one combined merge, got %d", n)
	}
	if got := vcs.calls[vcs.callIndex("octopus")]; got != "octopus origin/feat-a origin/feat-b" {
		t.Errorf("unexpected octopus refs: %q", got)
	}
	if n := vcs.countCalls("merge "); n != 0 {
		t.Errorf("sequential fallback must not run after octopus success, got %d merges", n)
	}
	if n := vcs.countCalls("abort"); n != 0 {
		t.Errorf("no abort should happen on success, got %d", n)
	}
	if !sp.noticeContaining("release") {
		t.Errorf("success notice should name the target, notices: %v", sp.notices)
	}
}

// Scenario B: the octopus merge fails, is aborted exactly once, then
// feat-a merges cleanly and feat-b conflicts; after one resolution round
// both branches end up incorporated.
func TestRun_FallbackWithConflictResolution(t *testing.T) {
	vcs := newFakeVCS()
	vcs.localBranches = []string{"main", "release"}
	vcs.remoteRefs = []string{"origin/feat-a", "origin/feat-b"}
	vcs.octopusErr = errors.New("octopus merge failed")
	vcs.mergeErrs["origin/feat-b"] = errors.New("merge conflict")
	// First check still shows a conflicted file, second shows none.
	vcs.conflictQueue = [][]string{{"main.go"}, nil}

	sp := &scriptedPrompter{
		one: []promptResponse{
			{value: targetExisting},
			{value: "release"},
			{value: resolveContinue}, // unresolved files remain
			{value: resolveContinue}, // clean now, commit
		},
		many: []promptResponse{
			{values: []string{"feat-a", "feat-b"}},
		},
	}

	if err := newWorkflow(vcs, sp).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if n := vcs.countCalls("abort"); n != 1 {
		t.Errorf("expected exactly one abort after the failed octopus, got %d", n)
	}
	abortIdx := vcs.callIndex("abort")
	firstMergeIdx := vcs.callIndex("merge ")
	if firstMergeIdx < abortIdx {
		t.Errorf("abort must precede any sequential merge, calls: %v", vcs.calls)
	}
	if n := vcs.countCalls("merge "); n != 2 {
		t.Errorf("expected 2 sequential merges, got %d", n)
	}
	if n := vcs.countCalls("commit"); n != 1 {
		t.Errorf("expected exactly one conflict-resolution commit, got %d", n)
	}
	if !sp.noticeContaining("Unresolved conflicts remain") {
		t.Errorf("blocking notice expected while files were unresolved, notices: %v", sp.notices)
	}
}

func TestRun_CancelledTargetSelectionIsNoOp(t *testing.T) {
	vcs := newFakeVCS()
	sp := &scriptedPrompter{
		one: []promptResponse{{err: cancelledPromptErr()}},
	}

	err := newWorkflow(vcs, sp).Run(ctx)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if vcs.countCalls("octopus")+vcs.countCalls("merge ") != 0 {
		t.Error("no merge should happen after cancellation")
	}
}

func TestRun_ExitDuringResolutionFailsRun(t *testing.T) {
	vcs := newFakeVCS()
	vcs.localBranches = []string{"release"}
	vcs.remoteRefs = []string{"origin/feat-a", "origin/feat-b"}
	vcs.octopusErr = errors.New("octopus merge failed")
	vcs.mergeErrs["origin/feat-a"] = errors.New("merge conflict")

	sp := &scriptedPrompter{
		one: []promptResponse{
			{value: targetExisting},
			{value: "release"},
			{value: resolveExit},
		},
		many: []promptResponse{
			{values: []string{"feat-a", "feat-b"}},
		},
	}

	err := newWorkflow(vcs, sp).Run(ctx)
	if !errors.Is(err, ErrExitRequested) {
		t.Fatalf("expected ErrExitRequested, got %v", err)
	}
	// feat-b was never reached
	if n := vcs.countCalls("merge "); n != 1 {
		t.Errorf("run should stop immediately on exit, got %d merges", n)
	}
}
