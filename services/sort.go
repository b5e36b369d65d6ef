package services

import (
	"sort"
	"strings"

	"github.com/vbforge/projects-tracker/models"
)

// Sort keys accepted by SortProjects. Anything else falls back to
// SortByLastWorked.
const (
	SortByCreated    = "created"
	SortByTitle      = "title"
	SortByLastWorked = "lastWorked"
)

// SortProjects returns a new slice ordered by the given key. The input is
// never mutated and the sort is stable, so equal elements keep their
// relative order.
func SortProjects(projects []models.Project, sortBy string) []models.Project {
	sorted := make([]models.Project, len(projects))
	copy(sorted, projects)

	switch sortBy {
	case SortByCreated:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedDate.After(sorted[j].CreatedDate)
		})
	case SortByTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	default: // lastWorked, most recently worked first
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].LastWorkedOn.After(sorted[j].LastWorkedOn)
		})
	}
	return sorted
}
