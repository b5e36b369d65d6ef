package services

import "github.com/vbforge/projects-tracker/models"

// DefaultPageSize is substituted for any size outside AllowedPageSizes.
const DefaultPageSize = 10

// AllowedPageSizes enumerates the page sizes the UI offers.
var AllowedPageSizes = []int{10, 25, 50, 100}

// ProjectPage is one display page of an ordered project list plus the
// metadata a pager needs. DisplayFrom/DisplayTo are 1-based for humans;
// DisplayFrom is 0 only for an empty result.
type ProjectPage struct {
	Items         []models.Project `json:"items"`
	Page          int              `json:"page"`
	TotalPages    int              `json:"totalPages"`
	TotalElements int              `json:"totalElements"`
	DisplayFrom   int              `json:"displayFrom"`
	DisplayTo     int              `json:"displayTo"`
	HasPrevious   bool             `json:"hasPrevious"`
	HasNext       bool             `json:"hasNext"`
}

// Paginate slices an ordered list into one page. Invalid inputs are never an
// error: an unknown size becomes DefaultPageSize and the page index is
// clamped into the valid range.
func Paginate(projects []models.Project, page, size int) ProjectPage {
	if !isAllowedPageSize(size) {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}

	totalElements := len(projects)
	totalPages := (totalElements + size - 1) / size
	if totalPages < 1 {
		// An empty collection still renders as "page 1 of 1".
		totalPages = 1
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}

	fromIndex := page * size
	toIndex := fromIndex + size
	if toIndex > totalElements {
		toIndex = totalElements
	}

	displayFrom := 0
	if totalElements > 0 {
		displayFrom = fromIndex + 1
	}

	return ProjectPage{
		Items:         projects[fromIndex:toIndex],
		Page:          page,
		TotalPages:    totalPages,
		TotalElements: totalElements,
		DisplayFrom:   displayFrom,
		DisplayTo:     toIndex,
		HasPrevious:   page > 0,
		HasNext:       page < totalPages-1,
	}
}

func isAllowedPageSize(size int) bool {
	for _, allowed := range AllowedPageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}
