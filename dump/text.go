package dump

import "strings"

// maxSearchSubjects caps how many subjects contribute to the search text,
// keeping embedding inputs bounded for heavily tagged works.
const maxSearchSubjects = 20

// SearchText derives the canonical embedding text for a work:
// title, a period separator, then up to maxSearchSubjects subjects joined
// by single spaces, with surrounding whitespace trimmed.
//
// The function is pure and byte-deterministic: identical title and subjects
// always produce identical output. Re-runs over unchanged input therefore
// regenerate exactly the content the idempotent writer will skip.
func SearchText(title string, subjects []string) string {
	if len(subjects) > maxSearchSubjects {
		subjects = subjects[:maxSearchSubjects]
	}
	return strings.TrimSpace(title + ". " + strings.Join(subjects, " "))
}
