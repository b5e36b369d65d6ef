package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vbforge/projects-tracker/models"
)

func TestBuildFilterDescription(t *testing.T) {
	status := models.StatusInProgress
	onGithub := true
	noGithub := false

	tests := []struct {
		name   string
		params FilterParams
		sortBy string
		want   string
	}{
		{
			name:   "no filters default sort",
			params: FilterParams{},
			sortBy: SortByLastWorked,
			want:   "Sorted by: Last Worked",
		},
		{
			name:   "unknown sort falls back to last worked",
			params: FilterParams{},
			sortBy: "bogus",
			want:   "Sorted by: Last Worked",
		},
		{
			name:   "search only",
			params: FilterParams{Search: "api"},
			sortBy: SortByCreated,
			want:   "Search: 'api' | Sorted by: Created Date",
		},
		{
			name:   "status uses display form",
			params: FilterParams{Status: &status},
			sortBy: SortByTitle,
			want:   "Status: IN PROGRESS | Sorted by: Title (A-Z)",
		},
		{
			name:   "github yes",
			params: FilterParams{OnGithub: &onGithub},
			sortBy: SortByLastWorked,
			want:   "GitHub: Yes | Sorted by: Last Worked",
		},
		{
			name:   "github no",
			params: FilterParams{OnGithub: &noGithub},
			sortBy: SortByLastWorked,
			want:   "GitHub: No | Sorted by: Last Worked",
		},
		{
			name:   "tags joined with comma",
			params: FilterParams{TagNames: []string{"go", "sql"}},
			sortBy: SortByLastWorked,
			want:   "Tags: go, sql | Sorted by: Last Worked",
		},
		{
			name:   "months",
			params: FilterParams{CreatedMonth: "2025-03", LastWorkedMonth: "2025-04"},
			sortBy: SortByLastWorked,
			want:   "Created: 2025-03 | Last Worked: 2025-04 | Sorted by: Last Worked",
		},
		{
			name: "all clauses in fixed order",
			params: FilterParams{
				Search:          "tracker",
				Status:          &status,
				OnGithub:        &onGithub,
				TagNames:        []string{"go"},
				CreatedMonth:    "2025-01",
				LastWorkedMonth: "2025-02",
			},
			sortBy: SortByTitle,
			want:   "Search: 'tracker' | Status: IN PROGRESS | GitHub: Yes | Tags: go | Created: 2025-01 | Last Worked: 2025-02 | Sorted by: Title (A-Z)",
		},
		{
			name:   "duplicate tags described once",
			params: FilterParams{TagNames: []string{"go", "go"}},
			sortBy: SortByLastWorked,
			want:   "Tags: go | Sorted by: Last Worked",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilterDescription(tt.params, tt.sortBy))
		})
	}
}
