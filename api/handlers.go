package api

import (
	"time"

	"github.com/vbforge/projects-tracker/database"
	"github.com/vbforge/projects-tracker/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, jwtSecret []byte, tokenTTL time.Duration) *routeHandlers {
	filterService := services.NewFilterService(database.ProjectRepo())
	statsService := services.NewStatisticsService(database.ProjectRepo())
	exportService := services.NewExportService()

	return &routeHandlers{
		authHandler:       newAuthHandler(database.UserRepo(), jwtSecret, tokenTTL),
		projectHandler:    newProjectHandler(database.ProjectRepo(), database.TagRepo(), filterService, statsService),
		tagHandler:        newTagHandler(database.TagRepo()),
		statisticsHandler: newStatisticsHandler(statsService),
		exportHandler:     newExportHandler(database.UserRepo(), filterService, exportService),
	}
}
