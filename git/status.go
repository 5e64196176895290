package git

import (
	"context"
	"fmt"
	"strings"
)

// IsRepository reports whether repoPath is inside a git working tree.
func (s *GitService) IsRepository(ctx context.Context, repoPath string) bool {
	output, err := s.executor.Output(ctx, repoPath, "git", "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "true"
}

// IsClean reports whether the working tree has no staged or unstaged changes.
// Untracked files count as dirt: a merge could clobber them.
func (s *GitService) IsClean(ctx context.Context, repoPath string) (bool, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status failed: %w", err)
	}
	return strings.TrimSpace(string(output)) == "", nil
}

// ConflictedFiles returns the list of files with unresolved merge conflicts.
func (s *GitService) ConflictedFiles(ctx context.Context, repoPath string) ([]string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, fmt.Errorf("failed to get conflicted files: %w", err)
	}

	outputStr := strings.TrimSpace(string(output))
	if outputStr == "" {
		return nil, nil
	}

	return strings.Split(outputStr, "\n"), nil
}

// IsMergeInProgress checks if a merge is currently in progress in the repo.
// It returns true if MERGE_HEAD exists (meaning there's an ongoing merge).
func (s *GitService) IsMergeInProgress(ctx context.Context, repoPath string) (bool, error) {
	_, _, err := s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", "MERGE_HEAD")
	if err != nil {
		// MERGE_HEAD doesn't exist - no merge in progress
		return false, nil
	}
	return true, nil
}
