package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/vbforge/projects-tracker/models"
)

// ProjectStore is the slice of the project repository the filter and
// statistics services need. *database.ProjectRepo satisfies it; tests supply
// an in-memory fake. Every method is owner-scoped by construction.
type ProjectStore interface {
	FindAllByOwner(ownerID uuid.UUID) ([]models.Project, error)
	FindByCreatedBetweenAndOwner(start, end time.Time, ownerID uuid.UUID) ([]models.Project, error)
	FindByLastWorkedBetweenAndOwner(start, end time.Time, ownerID uuid.UUID) ([]models.Project, error)
	FindByTagNamesAndOwner(tagNames []string, ownerID uuid.UUID) ([]models.Project, error)
	Search(ownerID uuid.UUID, title *string, status *models.ProjectStatus, onGithub *bool) ([]models.Project, error)
	CountByOwner(ownerID uuid.UUID) (int64, error)
	CountByStatusAndOwner(status models.ProjectStatus, ownerID uuid.UUID) (int64, error)
	CountByGithubAndOwner(onGithub bool, ownerID uuid.UUID) (int64, error)
}
