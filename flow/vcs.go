package flow

import (
	"context"

	"github.com/albertborsos/mergeflow/git"
)

// VCS is the slice of git operations the workflow drives. *git.GitService
// satisfies it; tests substitute a fake to script outcomes and record calls.
type VCS interface {
	IsRepository(ctx context.Context, repoPath string) bool
	IsClean(ctx context.Context, repoPath string) (bool, error)
	IsMergeInProgress(ctx context.Context, repoPath string) (bool, error)
	Fetch(ctx context.Context, repoPath, remote string) error

	LocalBranches(ctx context.Context, repoPath string) ([]string, error)
	RemoteBranches(ctx context.Context, repoPath, remote string) ([]string, error)
	BranchExists(ctx context.Context, repoPath, name string) bool
	CurrentBranch(ctx context.Context, repoPath string) (string, error)
	Checkout(ctx context.Context, repoPath, branch string) error
	CreateBranch(ctx context.Context, repoPath, name string) error
	DeleteBranch(ctx context.Context, repoPath, name string) error
	DefaultBranch(ctx context.Context, repoPath, remote string, candidates []string) string

	Merge(ctx context.Context, repoPath, ref string) error
	MergeOctopus(ctx context.Context, repoPath string, refs []string) error
	AbortMerge(ctx context.Context, repoPath string) error
	ConflictedFiles(ctx context.Context, repoPath string) ([]string, error)
	StageAll(ctx context.Context, repoPath string) error
	CommitMerge(ctx context.Context, repoPath string) error
}

var _ VCS = (*git.GitService)(nil)
