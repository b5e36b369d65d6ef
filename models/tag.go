package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultTagColor is the hex color assigned when a tag is created without one.
const DefaultTagColor = "#e7f3ff"

// Tag is a per-user label. Names are unique within one owner's tag set only;
// two different owners may each have a tag named "Java".
type Tag struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_tags_owner_name"`
	Color       string    `json:"color" db:"color" gorm:"type:text;not null"`
	Description string    `json:"description" db:"description" gorm:"type:text"`

	CreatedDate time.Time `json:"createdDate" db:"created_date" gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	OwnerID uuid.UUID `json:"ownerId" db:"owner_id" gorm:"type:uuid;not null;uniqueIndex:idx_tags_owner_name"`
	Owner   *User     `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`

	// Back-reference onto the same join table as Project.Tags, so either
	// side of the relation can be navigated without re-querying.
	Projects []Project `json:"-" gorm:"many2many:project_tags"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Color == "" {
		t.Color = DefaultTagColor
	}
	if t.CreatedDate.IsZero() {
		t.CreatedDate = time.Now()
	}
	return nil
}
