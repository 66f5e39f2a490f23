package analytics

import (
	"sort"

	"curriculum/internal/models"
)

// Curriculum is the read-only view analytics are computed from.
type Curriculum interface {
	Course() models.Course
	ListModules() []models.Module
	ListContentOf(moduleID string) []models.Content
}

// GenerateCourseAnalytics summarizes a course's curriculum. Does not need/use any source
// connection; everything comes from the in-memory store.
func GenerateCourseAnalytics(c Curriculum) *models.CourseAnalytics {
	analytics := &models.CourseAnalytics{
		CourseID:      c.Course().ID,
		ContentByType: make(map[models.ContentType]int),
		Modules:       make([]models.ModuleAnalytics, 0),
	}

	var views []int
	for _, module := range c.ListModules() {
		content := c.ListContentOf(module.ID)
		moduleAnalytics := GenerateModuleAnalytics(module, content)
		analytics.Modules = append(analytics.Modules, moduleAnalytics)

		analytics.NumModules++
		analytics.NumContent += moduleAnalytics.NumContent
		analytics.TotalViews += moduleAnalytics.TotalViews

		for _, item := range content {
			analytics.ContentByType[item.Type]++
			views = append(views, item.ViewsCount)
		}
	}
	analytics.Views = CalculatePercentiles(views)

	return analytics
}

func GenerateModuleAnalytics(module models.Module, content []models.Content) models.ModuleAnalytics {
	analytics := models.ModuleAnalytics{
		ModuleID:   module.ID,
		Title:      module.Title,
		Order:      module.Order,
		NumContent: len(content),
	}
	for _, c := range content {
		analytics.TotalViews += c.ViewsCount
		analytics.DurationMinutes += c.DurationMinutes
	}
	return analytics
}

func CalculatePercentiles(data []int) models.Percentiles {
	if len(data) == 0 {
		return models.Percentiles{}
	}

	sorted := make([]int, len(data))
	copy(sorted, data)
	sort.Ints(sorted)

	calculatePercentile := func(percentile float64) float64 {
		rank := percentile / 100 * float64(len(sorted)-1)
		rankInt := int(rank)

		// If the rank is an integer, return the value at that index
		if rank == float64(rankInt) {
			return float64(sorted[rankInt])
		}

		// Otherwise, linearly interpolate
		baseline := sorted[rankInt]
		interpolation := (rank - float64(rankInt)) * float64(sorted[rankInt+1]-sorted[rankInt])

		return float64(baseline) + interpolation
	}

	return models.Percentiles{
		P50: calculatePercentile(50),
		P90: calculatePercentile(90),
		P99: calculatePercentile(99),
	}
}
