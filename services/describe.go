package services

import (
	"fmt"
	"strings"
)

// BuildFilterDescription renders the active filter and sort state as the
// stable human-readable summary embedded in exports. Clauses appear in a
// fixed order, separated by " | ", and the sort clause is always last.
func BuildFilterDescription(params FilterParams, sortBy string) string {
	params = normalizeParams(params)

	var b strings.Builder

	if params.Search != "" {
		fmt.Fprintf(&b, "Search: '%s' | ", params.Search)
	}
	if params.Status != nil {
		fmt.Fprintf(&b, "Status: %s | ", params.Status.Display())
	}
	if params.OnGithub != nil {
		if *params.OnGithub {
			b.WriteString("GitHub: Yes | ")
		} else {
			b.WriteString("GitHub: No | ")
		}
	}
	if len(params.TagNames) > 0 {
		fmt.Fprintf(&b, "Tags: %s | ", strings.Join(params.TagNames, ", "))
	}
	if params.CreatedMonth != "" {
		fmt.Fprintf(&b, "Created: %s | ", params.CreatedMonth)
	}
	if params.LastWorkedMonth != "" {
		fmt.Fprintf(&b, "Last Worked: %s | ", params.LastWorkedMonth)
	}

	b.WriteString("Sorted by: ")
	switch sortBy {
	case SortByCreated:
		b.WriteString("Created Date")
	case SortByTitle:
		b.WriteString("Title (A-Z)")
	default:
		b.WriteString("Last Worked")
	}

	return b.String()
}
