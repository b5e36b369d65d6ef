package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vbforge/projects-tracker/errs"
	"github.com/vbforge/projects-tracker/models"
)

const monthLayout = "2006-01"

// FilterParams carries the raw filter dimensions from the caller. Zero
// values mean "not set": an empty Search, a nil Status/OnGithub, an empty
// TagNames slice and empty month strings all act as wildcards.
type FilterParams struct {
	Search          string
	Status          *models.ProjectStatus
	OnGithub        *bool
	TagNames        []string
	CreatedMonth    string
	LastWorkedMonth string
}

// FilterService resolves raw filter parameters into one owner's project
// list. It holds no state beyond its store reference and is safe for
// concurrent use.
type FilterService struct {
	store  ProjectStore
	logger zerolog.Logger
}

func NewFilterService(store ProjectStore) FilterService {
	return FilterService{
		store:  store,
		logger: log.With().Str("serviceName", "filterService").Logger(),
	}
}

// ResolveProjects applies the filter precedence and returns the matching
// projects for the owner. Order of the result is undefined; sorting is a
// separate step.
//
// Precedence, first match wins:
//  1. createdMonth        -> created-date month range, everything else ignored
//  2. lastWorkedMonth     -> last-worked month range, everything else ignored
//  3. tagNames            -> union over tag names, then search/status/github ANDed in memory
//  4. search/status/github -> combined store search
//  5. nothing set          -> all of the owner's projects
func (s FilterService) ResolveProjects(ownerID uuid.UUID, params FilterParams) ([]models.Project, error) {
	params = normalizeParams(params)

	s.logger.Debug().
		Str("ownerID", ownerID.String()).
		Str("search", params.Search).
		Strs("tags", params.TagNames).
		Str("createdMonth", params.CreatedMonth).
		Str("lastWorkedMonth", params.LastWorkedMonth).
		Msg("resolving projects")

	if params.CreatedMonth != "" {
		start, end, err := parseMonthRange("createdMonth", params.CreatedMonth)
		if err != nil {
			return nil, err
		}
		return s.store.FindByCreatedBetweenAndOwner(start, end, ownerID)
	}

	if params.LastWorkedMonth != "" {
		start, end, err := parseMonthRange("lastWorkedMonth", params.LastWorkedMonth)
		if err != nil {
			return nil, err
		}
		return s.store.FindByLastWorkedBetweenAndOwner(start, end, ownerID)
	}

	if len(params.TagNames) > 0 {
		tagged, err := s.store.FindByTagNamesAndOwner(params.TagNames, ownerID)
		if err != nil {
			return nil, err
		}
		filtered := make([]models.Project, 0, len(tagged))
		for _, p := range tagged {
			if matchesSearch(p, params.Search) && matchesStatus(p, params.Status) && matchesGithub(p, params.OnGithub) {
				filtered = append(filtered, p)
			}
		}
		return filtered, nil
	}

	if hasBasicFilters(params) {
		var title *string
		if params.Search != "" {
			title = &params.Search
		}
		return s.store.Search(ownerID, title, params.Status, params.OnGithub)
	}

	return s.store.FindAllByOwner(ownerID)
}

// HasActiveFilters reports whether any filter dimension is set, independent
// of which precedence tier would actually be evaluated.
func (s FilterService) HasActiveFilters(params FilterParams) bool {
	params = normalizeParams(params)
	return params.Search != "" ||
		params.Status != nil ||
		params.OnGithub != nil ||
		len(params.TagNames) > 0 ||
		params.CreatedMonth != "" ||
		params.LastWorkedMonth != ""
}

// normalizeParams dedupes tag names keeping the first occurrence and drops a
// blank search string.
func normalizeParams(params FilterParams) FilterParams {
	params.Search = strings.TrimSpace(params.Search)
	params.CreatedMonth = strings.TrimSpace(params.CreatedMonth)
	params.LastWorkedMonth = strings.TrimSpace(params.LastWorkedMonth)

	if len(params.TagNames) > 0 {
		seen := make(map[string]struct{}, len(params.TagNames))
		deduped := make([]string, 0, len(params.TagNames))
		for _, name := range params.TagNames {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			deduped = append(deduped, name)
		}
		params.TagNames = deduped
	}
	return params
}

// parseMonthRange turns a "YYYY-MM" value into the inclusive range covering
// that calendar month. An unparsable value is a caller error.
func parseMonthRange(field, value string) (start, end time.Time, err error) {
	month, parseErr := time.Parse(monthLayout, value)
	if parseErr != nil {
		return time.Time{}, time.Time{}, errs.NewInvalidMonthError(field, value, parseErr)
	}
	start = time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}

func hasBasicFilters(params FilterParams) bool {
	return params.Search != "" || params.Status != nil || params.OnGithub != nil
}

func matchesSearch(p models.Project, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), strings.ToLower(search))
}

func matchesStatus(p models.Project, status *models.ProjectStatus) bool {
	return status == nil || p.Status == *status
}

func matchesGithub(p models.Project, onGithub *bool) bool {
	return onGithub == nil || p.OnGithub == *onGithub
}
