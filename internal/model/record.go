package model

import "fmt"

// Record represents a single mod folder discovered under the mods directory.
// Records live for one scan/review/apply cycle and are rebuilt from disk on
// every scan; Status is never cached across scans.
type Record struct {
	Identifier      string       // folder name, unique within one scan
	LocationPath    string       // absolute path to the mod folder
	MetadataPath    string       // path to the folder's meta.ini, may not exist
	RecordedVersion string       // value of [General] version, "0.0.0" when unset
	NewestVersion   string       // value of [General] newestVersion
	Status          RecordStatus // derived at scan time
	SkipReason      string       // set only when Status is Skipped
	ErrorDetail     string       // set only when Status is Errored
}

// ChangeString returns the version transition for display, e.g. "1.0 → 1.1"
func (r *Record) ChangeString() string {
	return fmt.Sprintf("%s → %s", r.RecordedVersion, r.NewestVersion)
}

// DetailLine returns a one-line description of the record for full plan dumps
func (r *Record) DetailLine() string {
	switch r.Status {
	case StatusMismatched:
		return fmt.Sprintf("%s: %s", r.Identifier, r.ChangeString())
	case StatusSkipped:
		return fmt.Sprintf("%s: skipped (%s)", r.Identifier, r.SkipReason)
	case StatusErrored:
		return fmt.Sprintf("%s: error (%s)", r.Identifier, r.ErrorDetail)
	default:
		return fmt.Sprintf("%s: up to date (%s)", r.Identifier, r.RecordedVersion)
	}
}
