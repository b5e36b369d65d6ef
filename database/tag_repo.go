package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vbforge/projects-tracker/models"
)

// TagRepo is the owner-scoped tag store. Tag names are unique per owner, not
// globally; the compound index on (owner_id, name) enforces that.
type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

func (r *TagRepo) FindAllByOwner(ownerID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Where("owner_id = ?", ownerID).Find(&tags).Error
	return tags, err
}

// FindByIDAndOwner returns (nil, nil) when the tag does not exist or belongs
// to someone else.
func (r *TagRepo) FindByIDAndOwner(id, ownerID uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepo) FindByNameAndOwner(name string, ownerID uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ? AND owner_id = ?", name, ownerID).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepo) ExistsByNameAndOwner(name string, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).Where("name = ? AND owner_id = ?", name, ownerID).Count(&count).Error
	return count > 0, err
}

func (r *TagRepo) FindAllByOwnerOrderByName(ownerID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindAllByOwnerOrderByUsage lists the owner's tags most-used first.
func (r *TagRepo) FindAllByOwnerOrderByUsage(ownerID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.
		Joins("LEFT JOIN project_tags ON project_tags.tag_id = tags.id").
		Where("tags.owner_id = ?", ownerID).
		Group("tags.id").
		Order("COUNT(project_tags.project_id) DESC, tags.name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *TagRepo) Add(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *TagRepo) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// Delete removes the tag identified by (id, owner). Projects referencing the
// tag keep existing; only the join rows go away.
func (r *TagRepo) Delete(id, ownerID uuid.UUID) (bool, error) {
	var tag models.Tag
	err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := r.db.Model(&tag).Association("Projects").Clear(); err != nil {
		return false, err
	}
	if err := r.db.Delete(&tag).Error; err != nil {
		return false, err
	}
	return true, nil
}
