package git

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/albertborsos/mergeflow/logger"
)

// Fetch updates remote-tracking refs from the given remote.
func (s *GitService) Fetch(ctx context.Context, repoPath, remote string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "fetch", remote)
	if err != nil {
		return fmt.Errorf("git fetch %s failed: %s: %w", remote, strings.TrimSpace(string(output)), err)
	}
	return nil
}

// LocalBranches returns the names of all local branches, deduplicated and
// sorted lexicographically.
func (s *GitService) LocalBranches(ctx context.Context, repoPath string) ([]string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("failed to list local branches: %w", err)
	}
	return parseBranchList(string(output), nil), nil
}

// RemoteBranches returns the remote-qualified names (e.g. "origin/feat-a")
// of all branches tracked under the given remote, sorted lexicographically.
// The symbolic HEAD entry is excluded.
func (s *GitService) RemoteBranches(ctx context.Context, repoPath, remote string) ([]string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "branch", "-r", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("failed to list remote branches: %w", err)
	}

	head := remote + "/HEAD"
	return parseBranchList(string(output), func(name string) bool {
		return strings.HasPrefix(name, remote+"/") && name != head
	}), nil
}

// parseBranchList splits git branch output into deduplicated, sorted names.
// keep filters entries when non-nil.
func parseBranchList(output string, keep func(string) bool) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		// "git branch -r" may still emit the arrow form for HEAD
		// ("origin/HEAD -> origin/main") depending on version.
		if strings.Contains(name, " -> ") || strings.HasSuffix(name, "/HEAD") {
			continue
		}
		if keep != nil && !keep(name) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BranchExists reports whether a local branch of the given name exists.
func (s *GitService) BranchExists(ctx context.Context, repoPath, name string) bool {
	_, _, err := s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// CurrentBranch returns the name of the currently checked out branch.
// Returns an error if HEAD is detached or the command fails.
func (s *GitService) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	branch := strings.TrimSpace(string(output))
	if branch == "HEAD" {
		return "", fmt.Errorf("HEAD is detached (not on a branch)")
	}

	return branch, nil
}

// Checkout checks out the specified branch.
// Returns an error if the checkout fails (e.g., uncommitted changes would be overwritten).
func (s *GitService) Checkout(ctx context.Context, repoPath, branch string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "checkout", branch)
	if err != nil {
		return fmt.Errorf("git checkout failed: %s: %w", strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("checked out branch", "branch", branch, "repoPath", repoPath)
	return nil
}

// CreateBranch creates a new branch starting at the current HEAD and checks
// it out.
func (s *GitService) CreateBranch(ctx context.Context, repoPath, name string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "checkout", "-b", name)
	if err != nil {
		return fmt.Errorf("failed to create branch %s: %s: %w", name, strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("created branch", "branch", name, "repoPath", repoPath)
	return nil
}

// DeleteBranch force-deletes a local branch. The branch must not be the one
// currently checked out.
func (s *GitService) DeleteBranch(ctx context.Context, repoPath, name string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "branch", "-D", name)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %s: %w", name, strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("deleted branch", "branch", name, "repoPath", repoPath)
	return nil
}

// DefaultBranch returns the repository's default branch name. It first asks
// the remote HEAD, then falls back through the candidate list (verifying
// each exists locally), and finally returns the last candidate unverified.
func (s *GitService) DefaultBranch(ctx context.Context, repoPath, remote string, candidates []string) string {
	output, err := s.executor.Output(ctx, repoPath, "git", "symbolic-ref", fmt.Sprintf("refs/remotes/%s/HEAD", remote))
	if err == nil {
		// Output is like "refs/remotes/origin/main"
		ref := strings.TrimSpace(string(output))
		if idx := strings.LastIndex(ref, "/"); idx >= 0 && idx+1 < len(ref) {
			return ref[idx+1:]
		}
	}

	for _, name := range candidates {
		_, _, err = s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", name)
		if err == nil {
			return name
		}
	}

	if len(candidates) > 0 {
		return candidates[len(candidates)-1]
	}
	return "master"
}
