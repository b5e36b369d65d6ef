package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vbforge/projects-tracker/database"
	"github.com/vbforge/projects-tracker/errs"
	"github.com/vbforge/projects-tracker/models"
	"github.com/vbforge/projects-tracker/services"
)

type projectHandler struct {
	responder     Responder
	logger        zerolog.Logger
	projectRepo   *database.ProjectRepo
	tagRepo       *database.TagRepo
	filterService services.FilterService
	statsService  services.StatisticsService
}

func newProjectHandler(projectRepo *database.ProjectRepo, tagRepo *database.TagRepo, filterService services.FilterService, statsService services.StatisticsService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		projectRepo:   projectRepo,
		tagRepo:       tagRepo,
		filterService: filterService,
		statsService:  statsService,
	}
}

// projectRequest is the payload for creating and updating projects.
type projectRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	OnGithub    bool                 `json:"onGithub"`
	GithubURL   *string              `json:"githubUrl"`
	LocalPath   *string              `json:"localPath"`
	WhatTodo    *string              `json:"whatTodo"`
	TagIDs      []uuid.UUID          `json:"tagIds"`
}

// dashboardStats carries the headline counters shown above the project list.
// They cover the owner's whole collection, never the filtered subset.
type dashboardStats struct {
	TotalProjects      int64   `json:"totalProjects"`
	NotStartedProjects int64   `json:"notStartedProjects"`
	InProgressProjects int64   `json:"inProgressProjects"`
	CompletedProjects  int64   `json:"completedProjects"`
	GithubProjects     int64   `json:"githubProjects"`
	CompletionRate     float64 `json:"completionRate"`
}

// DashboardResponse bundles one dashboard render: the filtered, sorted,
// paginated project list plus filter state and headline statistics.
type DashboardResponse struct {
	Projects          services.ProjectPage `json:"projects"`
	HasActiveFilters  bool                 `json:"hasActiveFilters"`
	FilterDescription string               `json:"filterDescription"`
	SortBy            string               `json:"sortBy"`
	AllTags           []models.Tag         `json:"allTags"`
	Stats             dashboardStats       `json:"stats"`
}

// dashboard resolves the filter params, sorts, paginates and attaches the
// owner's headline statistics.
func (h projectHandler) dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		params, err := filterParamsFromRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		sortBy := sortByFromRequest(r)
		page, size := pageParamsFromRequest(r)

		projects, err := h.filterService.ResolveProjects(ownerID, params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		sorted := services.SortProjects(projects, sortBy)
		projectPage := services.Paginate(sorted, page, size)

		stats, err := h.collectStats(ownerID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		allTags, err := h.tagRepo.FindAllByOwnerOrderByUsage(ownerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}

		h.responder.WriteJSON(w, DashboardResponse{
			Projects:          projectPage,
			HasActiveFilters:  h.filterService.HasActiveFilters(params),
			FilterDescription: services.BuildFilterDescription(params, sortBy),
			SortBy:            sortBy,
			AllTags:           allTags,
			Stats:             stats,
		})
	}
}

func (h projectHandler) collectStats(ownerID uuid.UUID) (dashboardStats, error) {
	var stats dashboardStats

	total, err := h.statsService.TotalProjects(ownerID)
	if err != nil {
		return stats, wrapDatabaseError("count", "projects", err)
	}
	byStatus, err := h.statsService.ProjectsByStatus(ownerID)
	if err != nil {
		return stats, wrapDatabaseError("aggregate", "projects", err)
	}
	githubVsLocal, err := h.statsService.GitHubVsLocal(ownerID)
	if err != nil {
		return stats, wrapDatabaseError("aggregate", "projects", err)
	}
	completionRate, err := h.statsService.CompletionRate(ownerID)
	if err != nil {
		return stats, wrapDatabaseError("aggregate", "projects", err)
	}

	stats.TotalProjects = total
	stats.CompletionRate = completionRate
	for _, entry := range byStatus {
		switch models.ProjectStatus(entry.Key) {
		case models.StatusNotStarted:
			stats.NotStartedProjects = entry.Count
		case models.StatusInProgress:
			stats.InProgressProjects = entry.Count
		case models.StatusDone:
			stats.CompletedProjects = entry.Count
		}
	}
	for _, entry := range githubVsLocal {
		if entry.Key == "github" {
			stats.GithubProjects = entry.Count
		}
	}
	return stats, nil
}

// getProject retrieves a specific project by ID. A foreign project ID
// responds 404 exactly like a missing one.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByIDAndOwner(projectID, ownerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project owned by the authenticated user.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if strings.TrimSpace(req.Title) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		status := req.Status
		if status == "" {
			status = models.StatusNotStarted
		}
		if !status.Valid() {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be one of NOT_STARTED, IN_PROGRESS, DONE"))
			return
		}

		project := models.Project{
			Title:       strings.TrimSpace(req.Title),
			Description: req.Description,
			Status:      status,
			OnGithub:    req.OnGithub,
			GithubURL:   req.GithubURL,
			LocalPath:   req.LocalPath,
			WhatTodo:    req.WhatTodo,
			OwnerID:     ownerID,
		}
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		if len(req.TagIDs) > 0 {
			if err := h.replaceTags(&project, req.TagIDs, ownerID); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		h.logger.Info().Str("projectID", project.ID.String()).Msg("Project created")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, &project)
	}
}

// updateProject applies field changes to an existing project. Going through
// this path refreshes the last-worked timestamp; the owner never changes.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByIDAndOwner(projectID, ownerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if strings.TrimSpace(req.Title) == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if req.Status != "" && !req.Status.Valid() {
			h.responder.WriteError(w, errs.NewInvalidFieldError("status", "must be one of NOT_STARTED, IN_PROGRESS, DONE"))
			return
		}

		project.Title = strings.TrimSpace(req.Title)
		project.Description = req.Description
		if req.Status != "" {
			project.Status = req.Status
		}
		project.OnGithub = req.OnGithub
		project.GithubURL = req.GithubURL
		project.LocalPath = req.LocalPath
		project.WhatTodo = req.WhatTodo

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		if err := h.replaceTags(project, req.TagIDs, ownerID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("projectID", project.ID.String()).Msg("Project updated")
		h.responder.WriteJSON(w, project)
	}
}

// replaceTags swaps the project's tag set for the tags identified by tagIDs.
// Every tag must belong to the same owner; a foreign tag reads as missing.
func (h projectHandler) replaceTags(project *models.Project, tagIDs []uuid.UUID, ownerID uuid.UUID) error {
	tags := make([]models.Tag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		tag, err := h.tagRepo.FindByIDAndOwner(tagID, ownerID)
		if err != nil {
			return wrapDatabaseError("find", "tag", err)
		}
		if tag == nil {
			return errs.NewNotFoundError("tag not found")
		}
		tags = append(tags, *tag)
	}
	if err := h.projectRepo.ReplaceTags(project, tags); err != nil {
		return wrapDatabaseError("update", "project tags", err)
	}
	return nil
}

// deleteProject removes a project scoped to (id, owner).
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		deleted, err := h.projectRepo.Delete(projectID, ownerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}
		if !deleted {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.logger.Info().Str("projectID", projectID.String()).Msg("Project deleted")
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// replaceProjectTags sets the full tag list of a project.
func (h projectHandler) replaceProjectTags() http.HandlerFunc {
	type tagIDsRequest struct {
		TagIDs []uuid.UUID `json:"tagIds"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByIDAndOwner(projectID, ownerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		var req tagIDsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("tag list", err))
			return
		}

		if err := h.replaceTags(project, req.TagIDs, ownerID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// addProjectTag attaches one tag; both sides must belong to the owner.
func (h projectHandler) addProjectTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		project, tag, apiErr := h.resolveProjectAndTag(r, ownerID)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if err := h.projectRepo.AddTag(project, tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project tags", err))
			return
		}

		project.Tags = append(project.Tags, *tag)
		h.responder.WriteJSON(w, project)
	}
}

// removeProjectTag detaches one tag; neither the project nor the tag is
// deleted.
func (h projectHandler) removeProjectTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		project, tag, apiErr := h.resolveProjectAndTag(r, ownerID)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if err := h.projectRepo.RemoveTag(project, tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project tags", err))
			return
		}

		remaining := project.Tags[:0]
		for _, t := range project.Tags {
			if t.ID != tag.ID {
				remaining = append(remaining, t)
			}
		}
		project.Tags = remaining
		h.responder.WriteJSON(w, project)
	}
}

func (h projectHandler) resolveProjectAndTag(r *http.Request, ownerID uuid.UUID) (*models.Project, *models.Tag, error) {
	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		return nil, nil, errs.NewBadRequestError("invalid projectID")
	}
	tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
	if err != nil {
		return nil, nil, errs.NewBadRequestError("invalid tagID")
	}

	project, err := h.projectRepo.FindByIDAndOwner(projectID, ownerID)
	if err != nil {
		return nil, nil, wrapDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, nil, errs.NewNotFoundError("project not found")
	}

	tag, err := h.tagRepo.FindByIDAndOwner(tagID, ownerID)
	if err != nil {
		return nil, nil, wrapDatabaseError("find", "tag", err)
	}
	if tag == nil {
		return nil, nil, errs.NewNotFoundError("tag not found")
	}

	return project, tag, nil
}
