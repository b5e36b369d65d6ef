package database

import (
	"gorm.io/gorm"

	"github.com/vbforge/projects-tracker/models"
)

type Database struct {
	projectRepo *ProjectRepo
	tagRepo     *TagRepo
	userRepo    *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo: NewProjectRepo(db),
		tagRepo:     NewTagRepo(db),
		userRepo:    NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Migrate creates or updates the schema for every tracked entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Tag{},
	)
}
