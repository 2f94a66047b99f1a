package report

import (
	"fmt"
	"strings"

	"github.com/Razmik-Kutinava/password-entropy-lab/internal/types"
)

// Fail-on thresholds for ShouldFail.
const (
	FailOnNever = "never"
	FailOnWarn  = "warn"
	FailOnFail  = "fail"
)

// ValidateFailOn rejects unknown thresholds. Empty means fail.
func ValidateFailOn(failOn string) error {
	switch strings.ToLower(failOn) {
	case "", FailOnNever, FailOnWarn, FailOnFail:
		return nil
	}
	return fmt.Errorf("invalid --fail-on %q (want never, warn or fail)", failOn)
}

// ShouldFail reports whether any assessment's verdict reaches failOn.
// "fail" (the default) trips on a FAIL verdict, "warn" on WARN or FAIL,
// "never" never trips.
func ShouldFail(as []types.Assessment, failOn string) bool {
	level := map[types.Status]int{types.StatusPass: 0, types.StatusWarn: 1, types.StatusFail: 2}
	var th int
	switch strings.ToLower(failOn) {
	case FailOnNever:
		return false
	case FailOnWarn:
		th = 1
	default:
		th = 2
	}
	for _, a := range as {
		if level[a.Verdict()] >= th {
			return true
		}
	}
	return false
}
