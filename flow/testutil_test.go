package flow

import (
	"context"
	"fmt"
	"strings"

	"github.com/albertborsos/mergeflow/prompt"
)

// fakeVCS scripts git outcomes and records every mutating call in order.
type fakeVCS struct {
	isRepo          bool
	mergeInProgress bool
	dirty           bool
	cleanErr        error
	fetchErr        error

	localBranches []string
	remoteRefs    []string
	branches      map[string]bool // local branch existence
	current       string
	checkoutErrs  map[string]error
	checkoutStays bool // checkout reports success but HEAD does not move

	octopusErr    error
	mergeErrs     map[string]error
	abortErr      error
	commitErr     error
	conflictQueue [][]string
	defaultBranch string

	calls []string
}

func newFakeVCS() *fakeVCS {
	return &fakeVCS{
		isRepo:        true,
		current:       "main",
		branches:      map[string]bool{},
		checkoutErrs:  map[string]error{},
		mergeErrs:     map[string]error{},
		defaultBranch: "main",
	}
}

func (f *fakeVCS) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

// countCalls returns how many recorded calls start with prefix.
func (f *fakeVCS) countCalls(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// callIndex returns the position of the first call starting with prefix, or -1.
func (f *fakeVCS) callIndex(prefix string) int {
	for i, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

func (f *fakeVCS) IsRepository(ctx context.Context, repoPath string) bool { return f.isRepo }

func (f *fakeVCS) IsClean(ctx context.Context, repoPath string) (bool, error) {
	return !f.dirty, f.cleanErr
}

func (f *fakeVCS) IsMergeInProgress(ctx context.Context, repoPath string) (bool, error) {
	return f.mergeInProgress, nil
}

func (f *fakeVCS) Fetch(ctx context.Context, repoPath, remote string) error {
	f.record("fetch %s", remote)
	return f.fetchErr
}

func (f *fakeVCS) LocalBranches(ctx context.Context, repoPath string) ([]string, error) {
	return f.localBranches, nil
}

func (f *fakeVCS) RemoteBranches(ctx context.Context, repoPath, remote string) ([]string, error) {
	return f.remoteRefs, nil
}

func (f *fakeVCS) BranchExists(ctx context.Context, repoPath, name string) bool {
	return f.branches[name]
}

func (f *fakeVCS) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	return f.current, nil
}

func (f *fakeVCS) Checkout(ctx context.Context, repoPath, branch string) error {
	f.record("checkout %s", branch)
	if err := f.checkoutErrs[branch]; err != nil {
		return err
	}
	if !f.checkoutStays {
		f.current = branch
	}
	return nil
}

func (f *fakeVCS) CreateBranch(ctx context.Context, repoPath, name string) error {
	f.record("create %s", name)
	f.branches[name] = true
	f.current = name
	return nil
}

func (f *fakeVCS) DeleteBranch(ctx context.Context, repoPath, name string) error {
	f.record("delete %s", name)
	delete(f.branches, name)
	return nil
}

func (f *fakeVCS) DefaultBranch(ctx context.Context, repoPath, remote string, candidates []string) string {
	return f.defaultBranch
}

func (f *fakeVCS) Merge(ctx context.Context, repoPath, ref string) error {
	f.record("merge %s", ref)
	return f.mergeErrs[ref]
}

func (f *fakeVCS) MergeOctopus(ctx context.Context, repoPath string, refs []string) error {
	f.record("octopus %s", strings.Join(refs, " "))
	return f.octopusErr
}

func (f *fakeVCS) AbortMerge(ctx context.Context, repoPath string) error {
	f.record("abort")
	return f.abortErr
}

func (f *fakeVCS) ConflictedFiles(ctx context.Context, repoPath string) ([]string, error) {
	if len(f.conflictQueue) == 0 {
		return nil, nil
	}
	files := f.conflictQueue[0]
	f.conflictQueue = f.conflictQueue[1:]
	return files, nil
}

func (f *fakeVCS) StageAll(ctx context.Context, repoPath string) error {
	f.record("stage")
	return nil
}

func (f *fakeVCS) CommitMerge(ctx context.Context, repoPath string) error {
	f.record("commit")
	return f.commitErr
}

var _ VCS = (*fakeVCS)(nil)

// promptResponse is one scripted prompt result.
type promptResponse struct {
	value  string
	values []string
	err    error
}

// scriptedPrompter pops pre-scripted responses and records what it was asked.
type scriptedPrompter struct {
	one   []promptResponse
	many  []promptResponse
	input []promptResponse

	oneCalls  [][]prompt.Option
	manyCalls [][]string
	notices   []string
}

func (p *scriptedPrompter) ChooseOne(title, message string, options []prompt.Option) (string, error) {
	p.oneCalls = append(p.oneCalls, options)
	if len(p.one) == 0 {
		panic("ChooseOne called with no scripted response: " + title)
	}
	r := p.one[0]
	p.one = p.one[1:]
	return r.value, r.err
}

func (p *scriptedPrompter) ChooseMany(title, message string, options []string) ([]string, error) {
	p.manyCalls = append(p.manyCalls, options)
	if len(p.many) == 0 {
		panic("ChooseMany called with no scripted response: " + title)
	}
	r := p.many[0]
	p.many = p.many[1:]
	return r.values, r.err
}

func (p *scriptedPrompter) InputText(title, message, placeholder string) (string, error) {
	if len(p.input) == 0 {
		panic("InputText called with no scripted response: " + title)
	}
	r := p.input[0]
	p.input = p.input[1:]
	return r.value, r.err
}

func (p *scriptedPrompter) Notify(title, message string) {
	p.notices = append(p.notices, title+": "+message)
}

var _ prompt.Prompter = (*scriptedPrompter)(nil)

// noticeContaining reports whether any notice contains the substring.
func (p *scriptedPrompter) noticeContaining(sub string) bool {
	for _, n := range p.notices {
		if strings.Contains(n, sub) {
			return true
		}
	}
	return false
}

func newWorkflow(vcs VCS, p prompt.Prompter) *Workflow {
	return New(vcs, p, Options{WorkDir: "/repo", Remote: "origin"})
}

// cancelledPromptErr is what the prompt layer reports when the user backs out.
func cancelledPromptErr() error {
	return prompt.ErrCancelled
}
