package models

// Percentiles is a generic struct for storing percentiles for any distribution of data.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
	P99 float64 `json:"p99"`
}

// ModuleAnalytics summarizes the content of a single module.
type ModuleAnalytics struct {
	ModuleID        string `json:"module_id"`
	Title           string `json:"title"`
	Order           int    `json:"order"`
	NumContent      int    `json:"num_content"`
	TotalViews      int    `json:"total_views"`
	DurationMinutes int    `json:"duration_minutes"`
}

// CourseAnalytics are computed on demand from the in-memory curriculum; they are never stored.
type CourseAnalytics struct {
	CourseID string `json:"course_id"`

	NumModules int `json:"num_modules"`
	NumContent int `json:"num_content"`
	TotalViews int `json:"total_views"`

	// ContentByType counts content items per type.
	ContentByType map[ContentType]int `json:"content_by_type"`

	// Views is the distribution of views_count over every content item in the course.
	Views Percentiles `json:"views"`

	Modules []ModuleAnalytics `json:"modules"`
}
