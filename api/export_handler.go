package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vbforge/projects-tracker/database"
	"github.com/vbforge/projects-tracker/errs"
	"github.com/vbforge/projects-tracker/models"
	"github.com/vbforge/projects-tracker/services"
)

type exportHandler struct {
	responder     Responder
	logger        zerolog.Logger
	userRepo      *database.UserRepo
	filterService services.FilterService
	exportService services.ExportService
}

func newExportHandler(userRepo *database.UserRepo, filterService services.FilterService, exportService services.ExportService) exportHandler {
	logger := log.With().Str("handlerName", "exportHandler").Logger()

	return exportHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		userRepo:      userRepo,
		filterService: filterService,
		exportService: exportService,
	}
}

// exportCSV streams the filtered, sorted project list as a CSV attachment.
func (h exportHandler) exportCSV() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, projects, _, err := h.resolveExport(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		data, err := h.exportService.ExportCSV(projects, username)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filename := fmt.Sprintf("projects_%s_%s.csv", time.Now().Format("20060102_150405"), username)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if _, err := w.Write(data); err != nil {
			h.logger.Error().Err(err).Msg("error writing CSV export")
		}
	}
}

// exportHTML streams a self-contained report embedding the filter
// description.
func (h exportHandler) exportHTML() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, projects, filterDescription, err := h.resolveExport(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		data, err := h.exportService.ExportHTML(projects, filterDescription, username)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		filename := fmt.Sprintf("projects_report_[%s]_%s.html", username, time.Now().Format("20060102_150405"))
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write(data); err != nil {
			h.logger.Error().Err(err).Msg("error writing HTML export")
		}
	}
}

// resolveExport reuses the exact dashboard filter pipeline (filter, then
// sort) so an export always matches what the user was looking at.
func (h exportHandler) resolveExport(r *http.Request) (string, []models.Project, string, error) {
	ownerID, err := ctxOwnerID(r.Context())
	if err != nil {
		return "", nil, "", errs.NewUnauthorizedError("missing owner")
	}

	user, err := h.userRepo.FindByID(ownerID)
	if err != nil {
		return "", nil, "", wrapDatabaseError("find", "user", err)
	}
	if user == nil {
		return "", nil, "", errs.NewUnauthorizedError("unknown owner")
	}

	params, err := filterParamsFromRequest(r)
	if err != nil {
		return "", nil, "", err
	}
	sortBy := sortByFromRequest(r)

	projects, err := h.filterService.ResolveProjects(ownerID, params)
	if err != nil {
		return "", nil, "", err
	}
	sorted := services.SortProjects(projects, sortBy)
	description := services.BuildFilterDescription(params, sortBy)

	return user.Username, sorted, description, nil
}
