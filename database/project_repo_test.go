package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbforge/projects-tracker/models"
)

func titlesOf(projects []models.Project) []string {
	titles := make([]string, 0, len(projects))
	for _, p := range projects {
		titles = append(titles, p.Title)
	}
	return titles
}

func TestProjectRepoFindAllByOwnerScopesToOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	now := time.Now()
	createTestProject(t, db, owner.ID, "Mine", models.StatusInProgress, false, now, now)
	createTestProject(t, db, other.ID, "Theirs", models.StatusInProgress, false, now, now)

	projects, err := db.ProjectRepo().FindAllByOwner(owner.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"Mine"}, titlesOf(projects))
}

func TestProjectRepoFindByIDAndOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	now := time.Now()
	project := createTestProject(t, db, owner.ID, "Mine", models.StatusDone, true, now, now)

	found, err := db.ProjectRepo().FindByIDAndOwner(project.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Mine", found.Title)

	// foreign owner looks the same as a missing row
	foreign, err := db.ProjectRepo().FindByIDAndOwner(project.ID, other.ID)
	require.NoError(t, err)
	assert.Nil(t, foreign)

	missing, err := db.ProjectRepo().FindByIDAndOwner(uuid.New(), owner.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProjectRepoFindByCreatedBetween(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	now := time.Now()
	inMarch := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.Local)
	inApril := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.Local)
	createTestProject(t, db, owner.ID, "March", models.StatusDone, false, inMarch, now)
	createTestProject(t, db, owner.ID, "April", models.StatusDone, false, inApril, now)

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	projects, err := db.ProjectRepo().FindByCreatedBetweenAndOwner(start, end, owner.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"March"}, titlesOf(projects))
}

func TestProjectRepoFindByLastWorkedBetween(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	created := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	createTestProject(t, db, owner.ID, "Recent", models.StatusInProgress, false, created,
		time.Date(2025, time.May, 10, 9, 0, 0, 0, time.Local))
	createTestProject(t, db, owner.ID, "Stale", models.StatusInProgress, false, created,
		time.Date(2025, time.February, 10, 9, 0, 0, 0, time.Local))

	start := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	projects, err := db.ProjectRepo().FindByLastWorkedBetweenAndOwner(start, end, owner.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"Recent"}, titlesOf(projects))
}

func TestProjectRepoFindByTagNamesUnion(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	now := time.Now()
	goTag := createTestTag(t, db, owner.ID, "go")
	sqlTag := createTestTag(t, db, owner.ID, "sql")
	docsTag := createTestTag(t, db, owner.ID, "docs")

	backend := createTestProject(t, db, owner.ID, "Backend", models.StatusDone, true, now, now)
	require.NoError(t, db.ProjectRepo().ReplaceTags(backend, []models.Tag{*goTag, *sqlTag}))
	docs := createTestProject(t, db, owner.ID, "Docs", models.StatusDone, false, now, now)
	require.NoError(t, db.ProjectRepo().ReplaceTags(docs, []models.Tag{*docsTag}))
	untagged := createTestProject(t, db, owner.ID, "Untagged", models.StatusDone, false, now, now)
	_ = untagged

	projects, err := db.ProjectRepo().FindByTagNamesAndOwner([]string{"go", "sql"}, owner.ID)

	require.NoError(t, err)
	// both tags hit the same project once
	assert.Equal(t, []string{"Backend"}, titlesOf(projects))
}

func TestProjectRepoFindByTagNamesIgnoresForeignTags(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	now := time.Now()

	otherTag := createTestTag(t, db, other.ID, "go")
	theirs := createTestProject(t, db, other.ID, "Theirs", models.StatusDone, false, now, now)
	require.NoError(t, db.ProjectRepo().ReplaceTags(theirs, []models.Tag{*otherTag}))

	projects, err := db.ProjectRepo().FindByTagNamesAndOwner([]string{"go"}, owner.ID)

	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectRepoSearchCombinesPredicates(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	now := time.Now()
	createTestProject(t, db, owner.ID, "API Gateway", models.StatusInProgress, true, now, now)
	createTestProject(t, db, owner.ID, "API Client", models.StatusDone, true, now, now)
	createTestProject(t, db, owner.ID, "CLI Tool", models.StatusInProgress, true, now, now)

	title := "api"
	status := models.StatusInProgress
	onGithub := true
	projects, err := db.ProjectRepo().Search(owner.ID, &title, &status, &onGithub)

	require.NoError(t, err)
	assert.Equal(t, []string{"API Gateway"}, titlesOf(projects))
}

func TestProjectRepoSearchNilPredicatesAreWildcards(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	now := time.Now()
	createTestProject(t, db, owner.ID, "One", models.StatusDone, true, now, now)
	createTestProject(t, db, owner.ID, "Two", models.StatusNotStarted, false, now, now)

	projects, err := db.ProjectRepo().Search(owner.ID, nil, nil, nil)

	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestProjectRepoCounts(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	now := time.Now()
	createTestProject(t, db, owner.ID, "A", models.StatusDone, true, now, now)
	createTestProject(t, db, owner.ID, "B", models.StatusDone, false, now, now)
	createTestProject(t, db, owner.ID, "C", models.StatusInProgress, false, now, now)

	total, err := db.ProjectRepo().CountByOwner(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	done, err := db.ProjectRepo().CountByStatusAndOwner(models.StatusDone, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), done)

	onGithub, err := db.ProjectRepo().CountByGithubAndOwner(true, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), onGithub)
}

func TestProjectRepoUpdateTouchesLastWorkedOn(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	past := time.Now().AddDate(0, 0, -30)
	project := createTestProject(t, db, owner.ID, "Old Title", models.StatusInProgress, false, past, past)

	project.Title = "New Title"
	require.NoError(t, db.ProjectRepo().Update(project))

	updated, err := db.ProjectRepo().FindByIDAndOwner(project.ID, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "New Title", updated.Title)
	assert.True(t, updated.LastWorkedOn.After(past.Add(time.Hour)))
}

func TestProjectRepoDelete(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")
	now := time.Now()
	project := createTestProject(t, db, owner.ID, "Doomed", models.StatusDone, false, now, now)

	deleted, err := db.ProjectRepo().Delete(project.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "foreign owner must not delete")

	deleted, err = db.ProjectRepo().Delete(project.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = db.ProjectRepo().Delete(project.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, deleted, "second delete finds nothing")
}

func TestProjectRepoTagAssociations(t *testing.T) {
	db := newTestDB(t)
	owner := createTestUser(t, db, "owner")
	now := time.Now()
	project := createTestProject(t, db, owner.ID, "Tagged", models.StatusInProgress, false, now, now)
	goTag := createTestTag(t, db, owner.ID, "go")
	sqlTag := createTestTag(t, db, owner.ID, "sql")

	require.NoError(t, db.ProjectRepo().AddTag(project, goTag))
	found, err := db.ProjectRepo().FindByIDAndOwner(project.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, found.Tags, 1)

	require.NoError(t, db.ProjectRepo().ReplaceTags(found, []models.Tag{*goTag, *sqlTag}))
	found, err = db.ProjectRepo().FindByIDAndOwner(project.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, found.Tags, 2)

	require.NoError(t, db.ProjectRepo().RemoveTag(found, goTag))
	found, err = db.ProjectRepo().FindByIDAndOwner(project.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, found.Tags, 1)
	assert.Equal(t, "sql", found.Tags[0].Name)
}
