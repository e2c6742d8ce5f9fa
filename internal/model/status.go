package model

// RecordStatus represents the outcome of classifying one mod folder
type RecordStatus string

const (
	// StatusUpToDate means the recorded version already matches newestVersion
	StatusUpToDate RecordStatus = "UpToDate"

	// StatusMismatched means the recorded version differs from newestVersion
	StatusMismatched RecordStatus = "Mismatched"

	// StatusSkipped means the folder was left out of the plan for a benign reason
	StatusSkipped RecordStatus = "Skipped"

	// StatusErrored means the folder's metadata could not be read
	StatusErrored RecordStatus = "Errored"
)

// String returns the string representation of RecordStatus
func (rs RecordStatus) String() string {
	return string(rs)
}

// NeedsUpdate returns true if the record belongs in an update plan
func (rs RecordStatus) NeedsUpdate() bool {
	return rs == StatusMismatched
}

// IsProblem returns true if the record could not be classified cleanly
func (rs RecordStatus) IsProblem() bool {
	return rs == StatusErrored
}
