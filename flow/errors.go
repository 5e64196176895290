package flow

import "errors"

// ErrCancelled means the user backed out of a selection step. The run ends
// as a deliberate no-op with a zero exit status.
var ErrCancelled = errors.New("cancelled by user")

// ErrExitRequested means the user chose to exit during conflict resolution.
// The run ends with a non-zero status; the target branch may be left in a
// mid-merge or partially-merged state.
var ErrExitRequested = errors.New("exit requested during conflict resolution")
