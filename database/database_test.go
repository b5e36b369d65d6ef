package database

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vbforge/projects-tracker/models"
)

// newTestDB opens a private in-memory sqlite database, migrated and ready.
// The shared-cache DSN keeps the database alive across pool connections for
// the duration of the test.
func newTestDB(t *testing.T) Database {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return New(db)
}

func createTestUser(t *testing.T, db Database, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Enabled:  true,
	}
	require.NoError(t, db.UserRepo().Add(user))
	return user
}

func createTestProject(t *testing.T, db Database, ownerID uuid.UUID, title string, status models.ProjectStatus, onGithub bool, created, lastWorked time.Time) *models.Project {
	t.Helper()
	project := &models.Project{
		Title:        title,
		Status:       status,
		OnGithub:     onGithub,
		OwnerID:      ownerID,
		CreatedDate:  created,
		LastWorkedOn: lastWorked,
	}
	require.NoError(t, db.ProjectRepo().Add(project))
	return project
}

func createTestTag(t *testing.T, db Database, ownerID uuid.UUID, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, OwnerID: ownerID}
	require.NoError(t, db.TagRepo().Add(tag))
	return tag
}
