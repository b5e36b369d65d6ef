package services

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbforge/projects-tracker/models"
)

func TestExportCSV(t *testing.T) {
	created := time.Date(2025, time.March, 5, 9, 30, 0, 0, time.Local)
	lastWorked := time.Date(2025, time.April, 1, 18, 45, 0, 0, time.Local)
	githubURL := "https://github.com/vbforge/tracker"
	project := buildProject("Tracker", models.StatusInProgress, true, created, lastWorked, "go", "sql")
	project.Description = "A project, with commas\nand a newline"
	project.GithubURL = &githubURL
	service := NewExportService()

	out, err := service.ExportCSV([]models.Project{project}, "vb")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"ID", "Title", "Description", "Status", "On GitHub", "GitHub URL",
		"Local Path", "Tags", "What To Do", "Created Date", "Last Worked On",
	}, records[0])

	row := records[1]
	assert.Equal(t, project.ID.String(), row[0])
	assert.Equal(t, "Tracker", row[1])
	assert.Equal(t, "A project, with commas\nand a newline", row[2])
	assert.Equal(t, "IN_PROGRESS", row[3])
	assert.Equal(t, "true", row[4])
	assert.Equal(t, githubURL, row[5])
	assert.Empty(t, row[6])
	assert.Equal(t, "go, sql", row[7])
	assert.Equal(t, "2025-03-05 09:30", row[9])
	assert.Equal(t, "2025-04-01 18:45", row[10])
}

func TestExportCSVEmptyList(t *testing.T) {
	out, err := NewExportService().ExportCSV(nil, "vb")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestExportHTML(t *testing.T) {
	now := time.Date(2025, time.May, 20, 14, 0, 0, 0, time.Local)
	projects := []models.Project{
		buildProject("Public Repo", models.StatusDone, true, now, now, "go"),
		buildProject("Private Notes", models.StatusInProgress, false, now, now),
	}
	service := NewExportService()

	out, err := service.ExportHTML(projects, "Status: DONE | Sorted by: Last Worked", "vb")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Owner: vb")
	assert.Contains(t, html, "Status: DONE | Sorted by: Last Worked")
	assert.Contains(t, html, "<strong>2</strong> projects")
	assert.Contains(t, html, "<strong>1</strong> done")
	assert.Contains(t, html, "<strong>1</strong> in progress")
	assert.Contains(t, html, "<strong>1</strong> on GitHub")
	assert.Contains(t, html, "Public Repo")
	assert.Contains(t, html, "Private Notes")
	assert.Contains(t, html, "IN PROGRESS")
}

func TestExportHTMLEscapesContent(t *testing.T) {
	now := time.Now()
	project := buildProject("<script>alert(1)</script>", models.StatusDone, false, now, now)

	out, err := NewExportService().ExportHTML([]models.Project{project}, "Sorted by: Last Worked", "vb")
	require.NoError(t, err)

	html := string(out)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
