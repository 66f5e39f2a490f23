package analytics

import (
	"testing"

	"curriculum/internal/curriculum"
	"curriculum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createContent(id, moduleID string, order int, contentType models.ContentType, views, minutes int) models.Content {
	return models.Content{
		ID:              id,
		CourseID:        "iot-201",
		ModuleID:        moduleID,
		Type:            contentType,
		Order:           order,
		ViewsCount:      views,
		DurationMinutes: minutes,
	}
}

func createStore() *curriculum.Store {
	modules := []models.Module{
		{ID: "sensors", CourseID: "iot-201", Title: "Sensors", Order: 2},
		{ID: "boards", CourseID: "iot-201", Title: "Boards", Order: 1},
		{ID: "empty", CourseID: "iot-201", Title: "Wrap-up", Order: 3},
	}
	content := []models.Content{
		createContent("c1", "boards", 1, models.ContentVideo, 2, 10),
		createContent("c2", "boards", 2, models.ContentDocument, 5, 0),
		createContent("c3", "sensors", 1, models.ContentVideo, 10, 25),
	}
	return curriculum.NewStore(models.Course{ID: "iot-201"}, modules, content,
		curriculum.WithNotifier(curriculum.NotifierFunc(func(curriculum.Event) {})))
}

func TestGenerateCourseAnalytics(t *testing.T) {
	analytics := GenerateCourseAnalytics(createStore())

	assert.Equal(t, "iot-201", analytics.CourseID)
	assert.Equal(t, 3, analytics.NumModules)
	assert.Equal(t, 3, analytics.NumContent)
	assert.Equal(t, 17, analytics.TotalViews)
	assert.Equal(t, map[models.ContentType]int{models.ContentVideo: 2, models.ContentDocument: 1}, analytics.ContentByType)

	require.Len(t, analytics.Modules, 3)
	assert.Equal(t, models.ModuleAnalytics{ModuleID: "boards", Title: "Boards", Order: 1, NumContent: 2, TotalViews: 7, DurationMinutes: 10}, analytics.Modules[0])
	assert.Equal(t, models.ModuleAnalytics{ModuleID: "sensors", Title: "Sensors", Order: 2, NumContent: 1, TotalViews: 10, DurationMinutes: 25}, analytics.Modules[1])
	assert.Equal(t, 0, analytics.Modules[2].NumContent)

	assert.InDelta(t, 5, analytics.Views.P50, 0.00001)
}

func TestGenerateCourseAnalyticsEmpty(t *testing.T) {
	store := curriculum.NewStore(models.Course{ID: "empty-course"}, nil, nil,
		curriculum.WithNotifier(curriculum.NotifierFunc(func(curriculum.Event) {})))
	analytics := GenerateCourseAnalytics(store)

	assert.Equal(t, 0, analytics.NumModules)
	assert.Empty(t, analytics.Modules)
	assert.Equal(t, models.Percentiles{}, analytics.Views)
}

func TestCalculatePercentiles(t *testing.T) {
	basicDistribution := []int{10, 2, 5}
	basicPercentiles := CalculatePercentiles(basicDistribution)

	assert.InDelta(t, 5, basicPercentiles.P50, 0.00001)
	assert.InDelta(t, 9, basicPercentiles.P90, 0.00001)
	assert.InDelta(t, 9.9, basicPercentiles.P99, 0.00001)

	// The input is left unsorted.
	assert.Equal(t, []int{10, 2, 5}, basicDistribution)

	single := CalculatePercentiles([]int{7})
	assert.Equal(t, models.Percentiles{P50: 7, P90: 7, P99: 7}, single)
}
