package services

import (
	"bytes"
	"encoding/csv"
	"html/template"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vbforge/projects-tracker/models"
)

const exportTimeLayout = "2006-01-02 15:04"

// ExportService renders a filtered, sorted project list into downloadable
// documents. It never talks to the store; callers hand it the list the
// filter service resolved.
type ExportService struct {
	logger zerolog.Logger
}

func NewExportService() ExportService {
	return ExportService{
		logger: log.With().Str("serviceName", "exportService").Logger(),
	}
}

var csvHeader = []string{
	"ID", "Title", "Description", "Status", "On GitHub", "GitHub URL",
	"Local Path", "Tags", "What To Do", "Created Date", "Last Worked On",
}

// ExportCSV writes the projects as CSV, one row per project, tags joined by
// commas inside a single column.
func (s ExportService) ExportCSV(projects []models.Project, username string) ([]byte, error) {
	s.logger.Info().Str("username", username).Int("projects", len(projects)).Msg("Generating CSV export")

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}

	for i := range projects {
		p := &projects[i]
		row := []string{
			p.ID.String(),
			p.Title,
			p.Description,
			string(p.Status),
			strconv.FormatBool(p.OnGithub),
			stringOrEmpty(p.GithubURL),
			stringOrEmpty(p.LocalPath),
			strings.Join(p.TagNames(), ", "),
			stringOrEmpty(p.WhatTodo),
			p.CreatedDate.Format(exportTimeLayout),
			p.LastWorkedOn.Format(exportTimeLayout),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Projects Tracker Export Report</title>
  <style>
    body { font-family: sans-serif; margin: 2rem; color: #212529; }
    h1 { margin-bottom: 0.25rem; }
    .meta { color: #6c757d; margin-bottom: 1.5rem; }
    .summary span { display: inline-block; margin-right: 1.5rem; }
    table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
    th, td { border: 1px solid #dee2e6; padding: 0.5rem; text-align: left; }
    th { background: #f8f9fa; }
  </style>
</head>
<body>
  <h1>Projects Report</h1>
  <p class="meta">Owner: {{.Username}} &mdash; {{.FilterDescription}}</p>
  <div class="summary">
    <span><strong>{{.Total}}</strong> projects</span>
    <span><strong>{{.Done}}</strong> done</span>
    <span><strong>{{.InProgress}}</strong> in progress</span>
    <span><strong>{{.OnGithub}}</strong> on GitHub</span>
  </div>
  <table>
    <thead>
      <tr>
        <th>Title</th><th>Status</th><th>GitHub</th><th>Tags</th>
        <th>Created</th><th>Last Worked</th>
      </tr>
    </thead>
    <tbody>
      {{range .Projects}}
      <tr>
        <td>{{.Title}}</td>
        <td>{{.Status}}</td>
        <td>{{.Github}}</td>
        <td>{{.Tags}}</td>
        <td>{{.Created}}</td>
        <td>{{.LastWorked}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
</body>
</html>
`))

type reportRow struct {
	Title      string
	Status     string
	Github     string
	Tags       string
	Created    string
	LastWorked string
}

type reportData struct {
	Username          string
	FilterDescription string
	Total             int
	Done              int
	InProgress        int
	OnGithub          int
	Projects          []reportRow
}

// ExportHTML renders a self-contained report embedding the filter
// description string verbatim.
func (s ExportService) ExportHTML(projects []models.Project, filterDescription, username string) ([]byte, error) {
	s.logger.Info().Str("username", username).Int("projects", len(projects)).Msg("Generating HTML export")

	data := reportData{
		Username:          username,
		FilterDescription: filterDescription,
		Total:             len(projects),
	}
	for i := range projects {
		p := &projects[i]
		switch p.Status {
		case models.StatusDone:
			data.Done++
		case models.StatusInProgress:
			data.InProgress++
		}
		github := "No"
		if p.OnGithub {
			data.OnGithub++
			github = "Yes"
		}
		data.Projects = append(data.Projects, reportRow{
			Title:      p.Title,
			Status:     p.Status.Display(),
			Github:     github,
			Tags:       strings.Join(p.TagNames(), ", "),
			Created:    p.CreatedDate.Format(exportTimeLayout),
			LastWorked: p.LastWorkedOn.Format(exportTimeLayout),
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
