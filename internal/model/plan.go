package model

import (
	"fmt"
	"strings"
)

// UpdatePlan is the reviewable result of one scan over a mods directory.
// Mismatched holds the records a caller may select for apply; Records keeps
// every classification in scan order for detailed reporting.
type UpdatePlan struct {
	ID   string // unique per scan, guards Apply against a stale plan
	Root string // the mods directory that was scanned

	Records    []*Record
	Mismatched []*Record

	TotalScanned    int
	MismatchedCount int
	SkippedCount    int
	ErrorCount      int
}

// IsEmpty returns true when no record needs an update
func (p *UpdatePlan) IsEmpty() bool {
	return p.MismatchedCount == 0
}

// FindMismatched returns the planned record with the given identifier
func (p *UpdatePlan) FindMismatched(identifier string) (*Record, bool) {
	for _, rec := range p.Mismatched {
		if rec.Identifier == identifier {
			return rec, true
		}
	}
	return nil, false
}

// Summary returns the scan counts formatted for a confirmation prompt
func (p *UpdatePlan) Summary() string {
	lines := []string{
		fmt.Sprintf("Mods folder scanned: %s", p.Root),
		fmt.Sprintf("Total mod folders processed: %d", p.TotalScanned),
		fmt.Sprintf("Mods needing update: %d", p.MismatchedCount),
		fmt.Sprintf("Skipped mods: %d", p.SkippedCount),
		fmt.Sprintf("Errors: %d", p.ErrorCount),
	}
	return strings.Join(lines, "\n")
}

// ApplyOutcome records what happened to one selected record during apply
type ApplyOutcome struct {
	Record     *Record
	OldVersion string
	NewVersion string
	Err        error // nil on success
}

// ApplyResult aggregates the per-record outcomes of one apply pass
type ApplyResult struct {
	PlanID       string
	AppliedCount int
	ErrorCount   int
	Outcomes     []ApplyOutcome
}

// Summary returns the update counts plus a bullet line per updated mod
func (r *ApplyResult) Summary() string {
	lines := []string{
		fmt.Sprintf("Updated mods: %d", r.AppliedCount),
		fmt.Sprintf("Update errors: %d", r.ErrorCount),
	}
	var details []string
	for _, out := range r.Outcomes {
		if out.Err != nil {
			continue
		}
		details = append(details, fmt.Sprintf("  • %s: %s → %s", out.Record.Identifier, out.OldVersion, out.NewVersion))
	}
	if len(details) > 0 {
		lines = append(lines, "", "Updated mod details:")
		lines = append(lines, details...)
	}
	for _, out := range r.Outcomes {
		if out.Err != nil {
			lines = append(lines, fmt.Sprintf("  • %s: failed (%v)", out.Record.Identifier, out.Err))
		}
	}
	return strings.Join(lines, "\n")
}
