// Package hostname validates hostname syntax per RFC 1123 conventions.
package hostname

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxHostnameLen = 253
	maxLabelLen    = 63
)

var (
	allNumeric = regexp.MustCompile(`^[\d.]+$`)
	disallowed = regexp.MustCompile(`[^A-Za-z0-9-]`)
)

// IsValid reports whether name is a syntactically valid hostname.
func IsValid(name string) bool {
	return Validate(name) == nil
}

// Validate checks hostname syntax and returns the first rule violated:
// at most 253 characters (one trailing dot is stripped first), not
// all-numeric so it cannot be confused with an IP address, and each label
// 1-63 characters of [A-Za-z0-9-] without a leading or trailing hyphen.
func Validate(name string) error {
	// A single trailing dot marks an absolute name and is not counted.
	name = strings.TrimSuffix(name, ".")

	if name == "" {
		return fmt.Errorf("hostname is empty")
	}
	if len(name) > maxHostnameLen {
		return fmt.Errorf("hostname exceeds %d characters", maxHostnameLen)
	}
	if allNumeric.MatchString(name) {
		return fmt.Errorf("hostname must not be all-numeric")
	}

	for _, label := range strings.Split(name, ".") {
		if len(label) == 0 {
			return fmt.Errorf("empty label")
		}
		if len(label) > maxLabelLen {
			return fmt.Errorf("label %q exceeds %d characters", label, maxLabelLen)
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return fmt.Errorf("label %q begins or ends with a hyphen", label)
		}
		if disallowed.MatchString(label) {
			return fmt.Errorf("label %q contains illegal characters", label)
		}
	}

	return nil
}
