// Package git provides the Git operations mergeflow orchestrates.
//
// The package is organized into focused modules:
//   - service.go: GitService struct and constructor
//   - status.go: repository/worktree state checks, conflict detection
//   - branch.go: branch listing, checkout, create/delete, default branch
//   - merge.go: single and octopus merges, merge abort
//   - commit.go: staging and merge-commit creation
package git
