package models

const (
	FirestoreCoursesCollection = "courses"
	FirestoreModulesCollection = "modules"
	FirestoreContentCollection = "content"
)

type CourseCategory string

const (
	CategoryAIML        CourseCategory = "ai_ml"
	CategoryWebDev      CourseCategory = "web_dev"
	CategoryIoT         CourseCategory = "iot"
	CategoryRobotics    CourseCategory = "robotics"
	CategoryDataScience CourseCategory = "data_science"
)

type CourseDifficulty string

const (
	DifficultyBeginner     CourseDifficulty = "beginner"
	DifficultyIntermediate CourseDifficulty = "intermediate"
	DifficultyAdvanced     CourseDifficulty = "advanced"
)

type CourseStatus string

const (
	CourseActive   CourseStatus = "active"
	CourseDraft    CourseStatus = "draft"
	CourseArchived CourseStatus = "archived"
)

// Course is the read-only context a curriculum is edited under. It is loaded once per session from
// the course source and never mutated.
type Course struct {
	ID               string           `json:"id" mapstructure:"id"`
	Title            string           `json:"title" mapstructure:"title"`
	Description      string           `json:"description" mapstructure:"description"`
	Category         CourseCategory   `json:"category" mapstructure:"category"`
	Difficulty       CourseDifficulty `json:"difficulty" mapstructure:"difficulty"`
	Status           CourseStatus     `json:"status" mapstructure:"status"`
	Instructor       string           `json:"instructor,omitempty" mapstructure:"instructor"`
	ThumbnailURL     string           `json:"thumbnail_url,omitempty" mapstructure:"thumbnail_url"`
	DurationHours    int              `json:"duration_hours,omitempty" mapstructure:"duration_hours"`
	Prerequisites    string           `json:"prerequisites,omitempty" mapstructure:"prerequisites"`
	LearningOutcomes []string         `json:"learning_outcomes" mapstructure:"learning_outcomes"`
}
