package git

import (
	"context"
	"fmt"

	"github.com/albertborsos/mergeflow/logger"
)

// StageAll stages every change in the working tree, including resolutions
// of previously conflicted files.
func (s *GitService) StageAll(ctx context.Context, repoPath string) error {
	if output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "add", "-A"); err != nil {
		return fmt.Errorf("git add failed: %s - %w", string(output), err)
	}
	return nil
}

// CommitMerge concludes an in-progress merge with the default merge message
// and no editor.
func (s *GitService) CommitMerge(ctx context.Context, repoPath string) error {
	logger.WithComponent("git").Info("committing merge", "repoPath", repoPath)

	if output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "commit", "--no-edit"); err != nil {
		return fmt.Errorf("git commit failed: %s - %w", string(output), err)
	}
	return nil
}
