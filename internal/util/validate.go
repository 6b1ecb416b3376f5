package util

import (
	"fmt"
	"regexp"
	"strings"
)

// validLabel matches one DNS label: alphanumerics, hyphens and underscores,
// not starting or ending with a hyphen.
var validLabel = regexp.MustCompile(`^[a-zA-Z0-9_]([a-zA-Z0-9_\-]*[a-zA-Z0-9_])?$`)

const (
	maxNameLength  = 253
	maxLabelLength = 63
)

// ValidateFQDN checks that name is a usable record name:
//   - At most 253 characters, ignoring one trailing dot
//   - At least two labels, each 1-63 characters
//   - Labels use only a-z, A-Z, 0-9, hyphens and underscores, and do not
//     start or end with a hyphen
//   - A leading "*" label is allowed for wildcard records
func ValidateFQDN(name string) error {
	trimmed := strings.TrimSuffix(strings.TrimSpace(name), ".")
	if trimmed == "" {
		return fmt.Errorf("domain name must not be empty")
	}
	if len(trimmed) > maxNameLength {
		return fmt.Errorf("domain name %q is longer than %d characters", name, maxNameLength)
	}

	labels := strings.Split(trimmed, ".")
	if len(labels) < 2 {
		return fmt.Errorf("domain name %q must contain at least one dot", name)
	}
	for i, label := range labels {
		if label == "" {
			return fmt.Errorf("domain name %q contains an empty label", name)
		}
		if i == 0 && label == "*" {
			continue
		}
		if len(label) > maxLabelLength {
			return fmt.Errorf("label %q in %q is longer than %d characters", label, name, maxLabelLength)
		}
		if !validLabel.MatchString(label) {
			return fmt.Errorf("label %q in %q contains invalid characters (only a-z, A-Z, 0-9, hyphens, and underscores are allowed, not at either end as a hyphen)", label, name)
		}
	}
	return nil
}
