package planner

import (
	"errors"
	"fmt"
)

// Skip reasons attached to records that are left out of a plan. Skips are
// expected conditions, not errors, and never abort a scan.
const (
	SkipNoMetadata      = "meta.ini not found"
	SkipNoGeneral       = "[General] section missing"
	SkipNoNewestVersion = "newestVersion not set"
)

// ErrNoPlan means Apply was called without a reviewable plan, either because
// Scan never ran or because the previous plan was already applied or cancelled.
var ErrNoPlan = errors.New("no update plan is ready")

// DirectoryAccessError is terminal: the mods folder itself could not be read.
// Per-record problems are captured on the records instead and never produce it.
type DirectoryAccessError struct {
	Root string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("cannot read mods folder %s: %v", e.Root, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// NotInPlanError reports a caller error: a record was selected for apply that
// is not part of the current plan's mismatched set.
type NotInPlanError struct {
	Identifier string
}

func (e *NotInPlanError) Error() string {
	return fmt.Sprintf("mod %q is not in the current update plan", e.Identifier)
}
