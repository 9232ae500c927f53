package validators

import "strings"

// CleanTags trims every tag, drops the ones that end up empty, and removes
// case-sensitive duplicates while preserving first-seen order. This is the
// insertion-point rule for tag sets; the backend contract does not enforce
// uniqueness.
func CleanTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var cleaned []string
	for _, tag := range tags {
		t := strings.TrimSpace(tag)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		cleaned = append(cleaned, t)
	}
	return cleaned
}
