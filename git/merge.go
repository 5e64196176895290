package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/albertborsos/mergeflow/logger"
)

// Merge merges a single ref into the current branch. History is always
// preserved (--no-ff) and the default merge message is used (--no-edit).
// On conflict the merge is left in progress for interactive resolution;
// the returned error carries git's output.
func (s *GitService) Merge(ctx context.Context, repoPath, ref string) error {
	log := logger.WithComponent("git")
	log.Info("merging", "ref", ref, "repoPath", repoPath)

	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "merge", "--no-ff", "--no-edit", ref)
	if err != nil {
		return fmt.Errorf("merge of %s failed: %s: %w", ref, strings.TrimSpace(string(output)), err)
	}
	return nil
}

// MergeOctopus merges all refs into the current branch in one combined
// operation. An octopus merge succeeds only when no pairwise conflict
// exists across any of the refs; otherwise git reports failure and the
// caller must abort before retrying branch by branch.
func (s *GitService) MergeOctopus(ctx context.Context, repoPath string, refs []string) error {
	if len(refs) == 0 {
		return fmt.Errorf("no refs to merge")
	}

	log := logger.WithComponent("git")
	log.Info("attempting octopus merge", "refs", refs, "repoPath", repoPath)

	args := append([]string{"merge", "--no-ff", "--no-edit"}, refs...)
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", args...)
	if err != nil {
		return fmt.Errorf("octopus merge failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// AbortMerge aborts an in-progress merge, restoring the pre-merge state.
func (s *GitService) AbortMerge(ctx context.Context, repoPath string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "merge", "--abort")
	if err != nil {
		return fmt.Errorf("failed to abort merge: %s - %w", string(output), err)
	}
	return nil
}
