package services

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vbforge/projects-tracker/models"
)

// CountEntry is one ordered key/count pair. Aggregates that care about key
// order (status distribution, monthly histogram, top tags) return slices of
// these instead of Go maps, which do not keep insertion order.
type CountEntry struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// ProjectActivity pairs a project title with how long ago it was last
// touched, in whole calendar days.
type ProjectActivity struct {
	Title               string `json:"title"`
	DaysSinceLastWorked int64  `json:"daysSinceLastWorked"`
}

// createdByMonthWindow is how many calendar months the creation histogram
// covers, current month included.
const createdByMonthWindow = 6

// StatisticsService computes aggregate views over an owner's complete
// project set. Dashboard totals deliberately ignore any active UI filter, so
// every method here queries the store directly rather than taking a filtered
// list.
type StatisticsService struct {
	store  ProjectStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewStatisticsService(store ProjectStore) StatisticsService {
	return StatisticsService{
		store:  store,
		logger: log.With().Str("serviceName", "statisticsService").Logger(),
		now:    time.Now,
	}
}

// WithClock returns a copy of the service using the given clock. Tests use
// it to pin "today".
func (s StatisticsService) WithClock(now func() time.Time) StatisticsService {
	s.now = now
	return s
}

func (s StatisticsService) TotalProjects(ownerID uuid.UUID) (int64, error) {
	return s.store.CountByOwner(ownerID)
}

// ProjectsByStatus returns the status distribution with all three statuses
// always present, in NOT_STARTED, IN_PROGRESS, DONE order.
func (s StatisticsService) ProjectsByStatus(ownerID uuid.UUID) ([]CountEntry, error) {
	projects, err := s.store.FindAllByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ProjectStatus]int64, len(models.AllStatuses))
	for _, p := range projects {
		counts[p.Status]++
	}

	entries := make([]CountEntry, 0, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		entries = append(entries, CountEntry{Key: string(status), Count: counts[status]})
	}
	return entries, nil
}

// GitHubVsLocal splits the owner's projects into github-hosted and local
// ones. The two counts always sum to the total.
func (s StatisticsService) GitHubVsLocal(ownerID uuid.UUID) ([]CountEntry, error) {
	projects, err := s.store.FindAllByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	var githubCount int64
	for _, p := range projects {
		if p.OnGithub {
			githubCount++
		}
	}

	return []CountEntry{
		{Key: "github", Count: githubCount},
		{Key: "local", Count: int64(len(projects)) - githubCount},
	}, nil
}

// ProjectsCreatedByMonth counts creations per month over the six calendar
// months ending at the current one, oldest first. Projects created before
// the window are simply not represented.
func (s StatisticsService) ProjectsCreatedByMonth(ownerID uuid.UUID) ([]CountEntry, error) {
	projects, err := s.store.FindAllByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	counts := make(map[string]int64, createdByMonthWindow)
	keys := make([]string, 0, createdByMonthWindow)
	for i := createdByMonthWindow - 1; i >= 0; i-- {
		key := now.AddDate(0, -i, -now.Day()+1).Format(monthLayout)
		keys = append(keys, key)
		counts[key] = 0
	}

	for _, p := range projects {
		key := p.CreatedDate.Format(monthLayout)
		if _, ok := counts[key]; ok {
			counts[key]++
		}
	}

	entries := make([]CountEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, CountEntry{Key: key, Count: counts[key]})
	}
	return entries, nil
}

// TopTags returns the owner's most used tag names, count descending, ties
// broken by first-encountered order, at most limit entries.
func (s StatisticsService) TopTags(limit int, ownerID uuid.UUID) ([]CountEntry, error) {
	projects, err := s.store.FindAllByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	order := make([]string, 0)
	for _, p := range projects {
		for _, tag := range p.Tags {
			if _, seen := counts[tag.Name]; !seen {
				order = append(order, tag.Name)
			}
			counts[tag.Name]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if limit >= 0 && len(order) > limit {
		order = order[:limit]
	}

	entries := make([]CountEntry, 0, len(order))
	for _, name := range order {
		entries = append(entries, CountEntry{Key: name, Count: counts[name]})
	}
	return entries, nil
}

// ProjectActivityData maps every owned project to how many days ago it was
// last worked on, most recently active first.
func (s StatisticsService) ProjectActivityData(ownerID uuid.UUID) ([]ProjectActivity, error) {
	projects, err := s.store.FindAllByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	activity := make([]ProjectActivity, 0, len(projects))
	for i := range projects {
		activity = append(activity, ProjectActivity{
			Title:               projects[i].Title,
			DaysSinceLastWorked: projects[i].DaysSinceLastWorked(now),
		})
	}
	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].DaysSinceLastWorked < activity[j].DaysSinceLastWorked
	})
	return activity, nil
}

// CompletionRate is the share of DONE projects as a percentage with one
// decimal digit. An empty collection has a rate of 0.
func (s StatisticsService) CompletionRate(ownerID uuid.UUID) (float64, error) {
	total, err := s.store.CountByOwner(ownerID)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	done, err := s.store.CountByStatusAndOwner(models.StatusDone, ownerID)
	if err != nil {
		return 0, err
	}
	return round1(float64(done) * 100.0 / float64(total)), nil
}

// AverageDaysSinceLastWorked is the mean staleness over all owned projects,
// rounded to one decimal digit. 0 when there are no projects.
func (s StatisticsService) AverageDaysSinceLastWorked(ownerID uuid.UUID) (float64, error) {
	projects, err := s.store.FindAllByOwner(ownerID)
	if err != nil {
		return 0, err
	}
	if len(projects) == 0 {
		return 0, nil
	}

	now := s.now()
	var sum int64
	for i := range projects {
		sum += projects[i].DaysSinceLastWorked(now)
	}
	return round1(float64(sum) / float64(len(projects))), nil
}

// round1 rounds half-up to one decimal digit (28.571 -> 28.6).
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
