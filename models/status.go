package models

import "strings"

// ProjectStatus is the lifecycle state of a project. The values are nominal
// categories, there is no ordering between them.
type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "NOT_STARTED"
	StatusInProgress ProjectStatus = "IN_PROGRESS"
	StatusDone       ProjectStatus = "DONE"
)

// AllStatuses lists every status in display order.
var AllStatuses = []ProjectStatus{StatusNotStarted, StatusInProgress, StatusDone}

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Display returns the human-readable form ("IN_PROGRESS" -> "IN PROGRESS").
// Only presentation boundaries (filter descriptions, exports) should use it.
func (s ProjectStatus) Display() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// ParseProjectStatus converts a raw query/form value into a ProjectStatus.
func ParseProjectStatus(raw string) (ProjectStatus, bool) {
	s := ProjectStatus(strings.ToUpper(strings.TrimSpace(raw)))
	return s, s.Valid()
}
