package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vbforge/projects-tracker/models"
)

// fakeStore is an in-memory ProjectStore recording which query primitives
// were hit, so tests can assert precedence decisions.
type fakeStore struct {
	projects map[uuid.UUID][]models.Project
	calls    []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{projects: make(map[uuid.UUID][]models.Project)}
}

func (f *fakeStore) add(ownerID uuid.UUID, projects ...models.Project) {
	for i := range projects {
		projects[i].OwnerID = ownerID
		if projects[i].ID == uuid.Nil {
			projects[i].ID = uuid.New()
		}
	}
	f.projects[ownerID] = append(f.projects[ownerID], projects...)
}

func (f *fakeStore) FindAllByOwner(ownerID uuid.UUID) ([]models.Project, error) {
	f.calls = append(f.calls, "FindAllByOwner")
	return append([]models.Project(nil), f.projects[ownerID]...), nil
}

func (f *fakeStore) FindByCreatedBetweenAndOwner(start, end time.Time, ownerID uuid.UUID) ([]models.Project, error) {
	f.calls = append(f.calls, "FindByCreatedBetweenAndOwner")
	var out []models.Project
	for _, p := range f.projects[ownerID] {
		if !p.CreatedDate.Before(start) && !p.CreatedDate.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByLastWorkedBetweenAndOwner(start, end time.Time, ownerID uuid.UUID) ([]models.Project, error) {
	f.calls = append(f.calls, "FindByLastWorkedBetweenAndOwner")
	var out []models.Project
	for _, p := range f.projects[ownerID] {
		if !p.LastWorkedOn.Before(start) && !p.LastWorkedOn.After(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) FindByTagNamesAndOwner(tagNames []string, ownerID uuid.UUID) ([]models.Project, error) {
	f.calls = append(f.calls, "FindByTagNamesAndOwner")
	wanted := make(map[string]struct{}, len(tagNames))
	for _, name := range tagNames {
		wanted[name] = struct{}{}
	}
	var out []models.Project
	for _, p := range f.projects[ownerID] {
		for _, tag := range p.Tags {
			if _, ok := wanted[tag.Name]; ok {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) Search(ownerID uuid.UUID, title *string, status *models.ProjectStatus, onGithub *bool) ([]models.Project, error) {
	f.calls = append(f.calls, "Search")
	var out []models.Project
	for _, p := range f.projects[ownerID] {
		if title != nil && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(*title)) {
			continue
		}
		if status != nil && p.Status != *status {
			continue
		}
		if onGithub != nil && p.OnGithub != *onGithub {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) CountByOwner(ownerID uuid.UUID) (int64, error) {
	f.calls = append(f.calls, "CountByOwner")
	return int64(len(f.projects[ownerID])), nil
}

func (f *fakeStore) CountByStatusAndOwner(status models.ProjectStatus, ownerID uuid.UUID) (int64, error) {
	f.calls = append(f.calls, "CountByStatusAndOwner")
	var count int64
	for _, p := range f.projects[ownerID] {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CountByGithubAndOwner(onGithub bool, ownerID uuid.UUID) (int64, error) {
	f.calls = append(f.calls, "CountByGithubAndOwner")
	var count int64
	for _, p := range f.projects[ownerID] {
		if p.OnGithub == onGithub {
			count++
		}
	}
	return count, nil
}

// test fixture helpers

func buildProject(title string, status models.ProjectStatus, onGithub bool, created, lastWorked time.Time, tagNames ...string) models.Project {
	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tags = append(tags, models.Tag{ID: uuid.New(), Name: name})
	}
	return models.Project{
		ID:           uuid.New(),
		Title:        title,
		Status:       status,
		OnGithub:     onGithub,
		CreatedDate:  created,
		LastWorkedOn: lastWorked,
		Tags:         tags,
	}
}

func projectTitles(projects []models.Project) []string {
	titles := make([]string, 0, len(projects))
	for _, p := range projects {
		titles = append(titles, p.Title)
	}
	return titles
}
