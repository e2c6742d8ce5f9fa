// Package version implements the version comparison used to decide whether a
// mod's recorded version still matches its newest known version. Numeric
// comparison tolerates publisher inconsistency like "1.2" vs "1.2.0"; anything
// that is not a dotted number falls back to plain string equality.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects how two version strings are compared
type Mode string

const (
	// ModeRaw compares trimmed version strings byte for byte
	ModeRaw Mode = "raw"

	// ModeNumeric compares dotted numeric versions with trailing zeros
	// ignored, falling back to raw comparison when either side is not numeric
	ModeNumeric Mode = "numeric"
)

// String returns the string representation of Mode
func (m Mode) String() string {
	return string(m)
}

// ParseMode parses a mode name from config or flags. The empty string selects
// ModeNumeric.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeNumeric):
		return ModeNumeric, nil
	case string(ModeRaw):
		return ModeRaw, nil
	default:
		return "", fmt.Errorf("unknown comparison mode %q", s)
	}
}

// Parse splits a dotted version string into its numeric components and
// normalizes away trailing zeros. Every component must be a non-negative
// integer, otherwise an error is returned and the caller should compare the
// raw strings instead.
func Parse(s string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("version component %q is not numeric", part)
		}
		if n < 0 {
			return nil, fmt.Errorf("version component %q is negative", part)
		}
		nums = append(nums, n)
	}
	return normalize(nums), nil
}

// normalize strips trailing zero components but never shortens the sequence
// below length 1, so "1.0.0" and "1" compare equal while "0.0.0" stays (0).
func normalize(nums []int) []int {
	end := len(nums)
	for end > 1 && nums[end-1] == 0 {
		end--
	}
	return nums[:end]
}

// Comparator decides version equality under a Mode.
type Comparator struct {
	mode Mode
}

// NewComparator creates a comparator for the given mode
func NewComparator(mode Mode) Comparator {
	return Comparator{mode: mode}
}

// Mode returns the active comparison mode
func (c Comparator) Mode() Mode {
	return c.mode
}

// Equal reports whether a and b name the same version. In numeric mode both
// sides must parse for numeric comparison to kick in; otherwise the trimmed
// strings are compared exactly.
func (c Comparator) Equal(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if c.mode == ModeNumeric {
		na, errA := Parse(a)
		nb, errB := Parse(b)
		if errA == nil && errB == nil {
			return equalSequences(na, nb)
		}
	}
	return a == b
}

func equalSequences(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
