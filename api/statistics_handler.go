package api

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vbforge/projects-tracker/errs"
	"github.com/vbforge/projects-tracker/services"
)

const defaultTopTagsLimit = 10

type statisticsHandler struct {
	responder    Responder
	logger       zerolog.Logger
	statsService services.StatisticsService
}

func newStatisticsHandler(statsService services.StatisticsService) statisticsHandler {
	logger := log.With().Str("handlerName", "statisticsHandler").Logger()

	return statisticsHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		statsService: statsService,
	}
}

// StatisticsResponse bundles every aggregate view over the owner's full,
// unfiltered project set.
type StatisticsResponse struct {
	TotalProjects             int64                      `json:"totalProjects"`
	ProjectsByStatus          []services.CountEntry      `json:"projectsByStatus"`
	GithubVsLocal             []services.CountEntry      `json:"githubVsLocal"`
	ProjectsCreatedByMonth    []services.CountEntry      `json:"projectsCreatedByMonth"`
	TopTags                   []services.CountEntry      `json:"topTags"`
	ProjectActivity           []services.ProjectActivity `json:"projectActivity"`
	CompletionRate            float64                    `json:"completionRate"`
	AverageDaysSinceLastWork  float64                    `json:"averageDaysSinceLastWorked"`
}

// getStatistics computes the full aggregate bundle in one request.
func (h statisticsHandler) getStatistics() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := ctxOwnerID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("missing owner"))
			return
		}

		limit := defaultTopTagsLimit
		if raw := r.URL.Query().Get("topTags"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		var response StatisticsResponse

		if response.TotalProjects, err = h.statsService.TotalProjects(ownerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "projects", err))
			return
		}
		if response.ProjectsByStatus, err = h.statsService.ProjectsByStatus(ownerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "projects", err))
			return
		}
		if response.GithubVsLocal, err = h.statsService.GitHubVsLocal(ownerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "projects", err))
			return
		}
		if response.ProjectsCreatedByMonth, err = h.statsService.ProjectsCreatedByMonth(ownerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "projects", err))
			return
		}
		if response.TopTags, err = h.statsService.TopTags(limit, ownerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "tags", err))
			return
		}
		if response.ProjectActivity, err = h.statsService.ProjectActivityData(ownerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "projects", err))
			return
		}
		if response.CompletionRate, err = h.statsService.CompletionRate(ownerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "projects", err))
			return
		}
		if response.AverageDaysSinceLastWork, err = h.statsService.AverageDaysSinceLastWorked(ownerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("aggregate", "projects", err))
			return
		}

		h.responder.WriteJSON(w, response)
	}
}
