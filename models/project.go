package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a tracked work item. Every project belongs to exactly
// one user; OwnerID is set at creation and never reassigned.
type Project struct {
	ID          uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string        `json:"title" db:"title" gorm:"type:text;not null"`
	Description string        `json:"description" db:"description" gorm:"type:text"`
	Status      ProjectStatus `json:"status" db:"status" gorm:"type:text;not null;default:'NOT_STARTED'"`
	OnGithub    bool          `json:"onGithub" db:"on_github" gorm:"not null;default:false"`
	GithubURL   *string       `json:"githubUrl,omitempty" db:"github_url" gorm:"type:text"`
	LocalPath   *string       `json:"localPath,omitempty" db:"local_path" gorm:"type:text"`
	WhatTodo    *string       `json:"whatTodo,omitempty" db:"what_todo" gorm:"type:text"`

	CreatedDate  time.Time `json:"createdDate" db:"created_date" gorm:"not null"`
	LastWorkedOn time.Time `json:"lastWorkedOn" db:"last_worked_on" gorm:"not null"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	OwnerID uuid.UUID `json:"ownerId" db:"owner_id" gorm:"type:uuid;not null;index:idx_projects_owner"`
	Owner   *User     `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`

	Tags []Tag `json:"tags,omitempty" gorm:"many2many:project_tags;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns the ID and the creation timestamps so the model does
// not depend on database-side defaults (sqlite has no gen_random_uuid).
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	if p.CreatedDate.IsZero() {
		p.CreatedDate = now
	}
	if p.LastWorkedOn.IsZero() {
		p.LastWorkedOn = now
	}
	return nil
}

// DaysSinceLastWorked is the number of whole calendar days between the
// project's last-worked date and now, ignoring time of day. Never persisted.
func (p *Project) DaysSinceLastWorked(now time.Time) int64 {
	worked := time.Date(p.LastWorkedOn.Year(), p.LastWorkedOn.Month(), p.LastWorkedOn.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int64(today.Sub(worked).Hours() / 24)
}

// TagNames returns the names of the project's tags in their stored order.
func (p *Project) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}
