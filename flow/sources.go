package flow

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// selectSources enumerates the remote branches that may be merged into
// target and returns the user's checked subset, in the order the prompt
// layer reports it. Confirming with nothing checked is the same as
// cancelling: a deliberate no-op.
func (w *Workflow) selectSources(ctx context.Context, target string) ([]string, error) {
	refs, err := w.vcs.RemoteBranches(ctx, w.opts.WorkDir, w.opts.Remote)
	if err != nil {
		return nil, err
	}

	remotePrefix := w.opts.Remote + "/"
	seen := make(map[string]struct{})
	var candidates []string
	for _, ref := range refs {
		name := strings.TrimPrefix(ref, remotePrefix)
		if name == target {
			continue
		}
		if w.opts.BranchPrefix != "" && !strings.HasPrefix(name, w.opts.BranchPrefix) {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	if len(candidates) == 0 {
		if w.opts.BranchPrefix != "" {
			return nil, fmt.Errorf("no branches on %s match prefix %q", w.opts.Remote, w.opts.BranchPrefix)
		}
		return nil, fmt.Errorf("no branches on %s available to merge", w.opts.Remote)
	}

	selected, err := w.prompt.ChooseMany("Source branches",
		fmt.Sprintf("Select the branches to merge into %s.", target), candidates)
	if err != nil {
		return nil, asCancelled(err)
	}
	if len(selected) == 0 {
		return nil, ErrCancelled
	}

	return selected, nil
}
