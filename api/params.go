package api

import (
	"net/http"
	"strconv"

	"github.com/vbforge/projects-tracker/errs"
	"github.com/vbforge/projects-tracker/models"
	"github.com/vbforge/projects-tracker/services"
)

// filterParamsFromRequest reads the filter dimensions out of the query
// string. Absent parameters stay wildcards; unknown status or github values
// are caller errors.
func filterParamsFromRequest(r *http.Request) (services.FilterParams, error) {
	query := r.URL.Query()

	params := services.FilterParams{
		Search:          query.Get("search"),
		TagNames:        query["tags"],
		CreatedMonth:    query.Get("createdMonth"),
		LastWorkedMonth: query.Get("lastWorkedMonth"),
	}

	if raw := query.Get("status"); raw != "" {
		status, ok := models.ParseProjectStatus(raw)
		if !ok {
			return params, errs.NewInvalidFieldError("status", "must be one of NOT_STARTED, IN_PROGRESS, DONE")
		}
		params.Status = &status
	}

	if raw := query.Get("onGithub"); raw != "" {
		onGithub, err := strconv.ParseBool(raw)
		if err != nil {
			return params, errs.NewInvalidFieldError("onGithub", "must be a boolean")
		}
		params.OnGithub = &onGithub
	}

	return params, nil
}

func sortByFromRequest(r *http.Request) string {
	sortBy := r.URL.Query().Get("sortBy")
	if sortBy == "" {
		return services.SortByLastWorked
	}
	return sortBy
}

// pageParamsFromRequest never fails: malformed page/size values fall back to
// defaults, the pagination engine clamps the rest.
func pageParamsFromRequest(r *http.Request) (page, size int) {
	query := r.URL.Query()
	page, _ = strconv.Atoi(query.Get("page"))
	size, err := strconv.Atoi(query.Get("size"))
	if err != nil {
		size = services.DefaultPageSize
	}
	return page, size
}
