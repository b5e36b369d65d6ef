package database

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vbforge/projects-tracker/models"
)

// ProjectRepo is the owner-scoped project store. Every query takes the owner
// ID as a mandatory parameter; there is no way to read another user's rows
// through this type.
type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAllByOwner returns all of the owner's projects with tags preloaded.
func (r *ProjectRepo) FindAllByOwner(ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Tags").Where("owner_id = ?", ownerID).Find(&projects).Error
	return projects, err
}

// FindByIDAndOwner returns the project or (nil, nil) when no project with
// that id belongs to the owner. A foreign id is indistinguishable from a
// missing one.
func (r *ProjectRepo) FindByIDAndOwner(id, ownerID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Tags").Where("id = ? AND owner_id = ?", id, ownerID).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepo) FindByStatusAndOwner(status models.ProjectStatus, ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Tags").Where("status = ? AND owner_id = ?", status, ownerID).Find(&projects).Error
	return projects, err
}

func (r *ProjectRepo) FindByGithubAndOwner(onGithub bool, ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Tags").Where("on_github = ? AND owner_id = ?", onGithub, ownerID).Find(&projects).Error
	return projects, err
}

// FindByTitleContainingAndOwner matches the title substring case-insensitively.
func (r *ProjectRepo) FindByTitleContainingAndOwner(title string, ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Tags").
		Where("LOWER(title) LIKE ? AND owner_id = ?", "%"+strings.ToLower(title)+"%", ownerID).
		Find(&projects).Error
	return projects, err
}

// FindByCreatedBetweenAndOwner returns projects whose creation timestamp
// falls inside [start, end] inclusive.
func (r *ProjectRepo) FindByCreatedBetweenAndOwner(start, end time.Time, ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Tags").
		Where("created_date BETWEEN ? AND ? AND owner_id = ?", start, end, ownerID).
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepo) FindByLastWorkedBetweenAndOwner(start, end time.Time, ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Tags").
		Where("last_worked_on BETWEEN ? AND ? AND owner_id = ?", start, end, ownerID).
		Find(&projects).Error
	return projects, err
}

// FindByTagNamesAndOwner returns the union of projects carrying ANY of the
// given tag names. Both the project and the tag must belong to the owner, so
// another user's identically named tag never leaks in.
func (r *ProjectRepo) FindByTagNamesAndOwner(tagNames []string, ownerID uuid.UUID) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Preload("Tags").
		Joins("JOIN project_tags ON project_tags.project_id = projects.id").
		Joins("JOIN tags ON tags.id = project_tags.tag_id").
		Where("projects.owner_id = ? AND tags.owner_id = ? AND tags.name IN ?", ownerID, ownerID, tagNames).
		Distinct("projects.*").
		Find(&projects).Error
	return projects, err
}

// Search is the combined multi-predicate query: title substring
// (case-insensitive), exact status and exact github flag, all ANDed. A nil
// predicate is a wildcard.
func (r *ProjectRepo) Search(ownerID uuid.UUID, title *string, status *models.ProjectStatus, onGithub *bool) ([]models.Project, error) {
	query := r.db.Preload("Tags").Where("owner_id = ?", ownerID)
	if title != nil && *title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(*title)+"%")
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if onGithub != nil {
		query = query.Where("on_github = ?", *onGithub)
	}

	var projects []models.Project
	err := query.Find(&projects).Error
	return projects, err
}

// Count queries

func (r *ProjectRepo) CountByOwner(ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

func (r *ProjectRepo) CountByStatusAndOwner(status models.ProjectStatus, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("status = ? AND owner_id = ?", status, ownerID).Count(&count).Error
	return count, err
}

func (r *ProjectRepo) CountByGithubAndOwner(onGithub bool, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("on_github = ? AND owner_id = ?", onGithub, ownerID).Count(&count).Error
	return count, err
}

// Add inserts a new project. Tag associations are managed separately through
// ReplaceTags/AddTag/RemoveTag.
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Omit("Tags").Create(project).Error
}

// Update persists field changes and touches LastWorkedOn, since going through
// the update path counts as working on the project.
func (r *ProjectRepo) Update(project *models.Project) error {
	project.LastWorkedOn = time.Now()
	return r.db.Omit("Tags", "CreatedDate").Save(project).Error
}

// Delete removes the project identified by (id, owner). Returns false when
// nothing matched, which covers both unknown and foreign ids.
func (r *ProjectRepo) Delete(id, ownerID uuid.UUID) (bool, error) {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Project{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReplaceTags swaps the project's tag set for the given one. The association
// update maintains the join table, so the tag side observes the change too.
func (r *ProjectRepo) ReplaceTags(project *models.Project, tags []models.Tag) error {
	if err := r.db.Model(project).Association("Tags").Replace(toTagPointers(tags)...); err != nil {
		return err
	}
	project.Tags = tags
	return nil
}

// AddTag attaches a tag to the project without touching other associations.
func (r *ProjectRepo) AddTag(project *models.Project, tag *models.Tag) error {
	return r.db.Model(project).Association("Tags").Append(tag)
}

// RemoveTag detaches the tag from the project. Neither side is deleted.
func (r *ProjectRepo) RemoveTag(project *models.Project, tag *models.Tag) error {
	return r.db.Model(project).Association("Tags").Delete(tag)
}

func toTagPointers(tags []models.Tag) []interface{} {
	out := make([]interface{}, 0, len(tags))
	for i := range tags {
		out = append(out, &tags[i])
	}
	return out
}
