package models

import "time"

// Module is an ordered section of a course.
type Module struct {
	ID          string    `json:"id" mapstructure:"id"`
	CourseID    string    `json:"course_id" mapstructure:"course_id"`
	Title       string    `json:"title" mapstructure:"title"`
	Description string    `json:"description" mapstructure:"description"`
	Order       int       `json:"order" mapstructure:"order"`
	CreatedAt   time.Time `json:"created_at" mapstructure:"created_at"`
}

type ContentType string

const (
	ContentVideo        ContentType = "video"
	ContentYouTube      ContentType = "youtube"
	ContentDocument     ContentType = "document"
	ContentPresentation ContentType = "presentation"
	ContentLink         ContentType = "link"
)

// Content is a single learning material inside a module. Only the locator fields relevant to Type
// are meaningful; nothing checks which ones are set.
type Content struct {
	ID              string      `json:"id" mapstructure:"id"`
	CourseID        string      `json:"course_id" mapstructure:"course_id"`
	ModuleID        string      `json:"module_id" mapstructure:"module_id"`
	Title           string      `json:"title" mapstructure:"title"`
	Type            ContentType `json:"type" mapstructure:"type"`
	FileURL         string      `json:"file_url,omitempty" mapstructure:"file_url"`
	YouTubeURL      string      `json:"youtube_url,omitempty" mapstructure:"youtube_url"`
	ExternalURL     string      `json:"external_url,omitempty" mapstructure:"external_url"`
	DurationMinutes int         `json:"duration_minutes,omitempty" mapstructure:"duration_minutes"`
	FileSizeMB      float64     `json:"file_size_mb,omitempty" mapstructure:"file_size_mb"`
	Order           int         `json:"order" mapstructure:"order"`
	ViewsCount      int         `json:"views_count" mapstructure:"views_count"`
	CreatedAt       time.Time   `json:"created_at" mapstructure:"created_at"`
}

// CreateModuleRequest is the parameter struct to the CreateModule function.
type CreateModuleRequest struct {
	Title       string `json:"title" mapstructure:"title" validate:"required"`
	Description string `json:"description" mapstructure:"description" validate:"required"`
}

// EditModuleRequest is the parameter struct to the UpdateModule function. Nil fields are left
// untouched.
type EditModuleRequest struct {
	ModuleID    string  `json:"moduleID" mapstructure:"-"`
	Title       *string `json:"title,omitempty" mapstructure:"title"`
	Description *string `json:"description,omitempty" mapstructure:"description"`
}

// DeleteModuleRequest is the parameter struct to the DeleteModule function.
type DeleteModuleRequest struct {
	ModuleID string `json:"moduleID"`
}

// CreateContentRequest is the parameter struct to the CreateContent function.
type CreateContentRequest struct {
	ModuleID        string      `json:"moduleID" mapstructure:"-"`
	Title           string      `json:"title" mapstructure:"title" validate:"required"`
	Type            ContentType `json:"type" mapstructure:"type" validate:"required,oneof=video youtube document presentation link"`
	FileURL         string      `json:"file_url,omitempty" mapstructure:"file_url" validate:"omitempty,uri"`
	YouTubeURL      string      `json:"youtube_url,omitempty" mapstructure:"youtube_url" validate:"omitempty,url"`
	ExternalURL     string      `json:"external_url,omitempty" mapstructure:"external_url" validate:"omitempty,url"`
	DurationMinutes int         `json:"duration_minutes,omitempty" mapstructure:"duration_minutes" validate:"gte=0"`
	FileSizeMB      float64     `json:"file_size_mb,omitempty" mapstructure:"file_size_mb" validate:"gte=0"`
}

// EditContentRequest is the parameter struct to the UpdateContent function. Nil fields are left
// untouched; the owning module cannot be changed through it.
type EditContentRequest struct {
	ContentID       string       `json:"contentID" mapstructure:"-"`
	Title           *string      `json:"title,omitempty" mapstructure:"title"`
	Type            *ContentType `json:"type,omitempty" mapstructure:"type"`
	FileURL         *string      `json:"file_url,omitempty" mapstructure:"file_url"`
	YouTubeURL      *string      `json:"youtube_url,omitempty" mapstructure:"youtube_url"`
	ExternalURL     *string      `json:"external_url,omitempty" mapstructure:"external_url"`
	DurationMinutes *int         `json:"duration_minutes,omitempty" mapstructure:"duration_minutes"`
	FileSizeMB      *float64     `json:"file_size_mb,omitempty" mapstructure:"file_size_mb"`
}

// DeleteContentRequest is the parameter struct to the DeleteContent function.
type DeleteContentRequest struct {
	ContentID string `json:"contentID"`
}
