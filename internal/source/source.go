// Package source loads a course and its curriculum at the start of a session. Sources are
// read-only: nothing edited in a session is written back.
package source

import (
	"context"
	"time"

	"curriculum/internal/models"

	"github.com/mitchellh/mapstructure"
)

// Snapshot is everything a session needs to start editing one course.
type Snapshot struct {
	Course  models.Course
	Modules []models.Module
	Content []models.Content
}

// Source supplies course snapshots. Load returns qerrors.CourseNotFoundError for unknown courses.
type Source interface {
	Load(ctx context.Context, courseID string) (*Snapshot, error)
}

// decodeDocument decodes a loosely typed document (a Firestore snapshot or a YAML mapping) into
// one of the models. Timestamps may arrive either as time.Time or as RFC 3339 strings.
func decodeDocument(data map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeHookFunc(time.RFC3339),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(data)
}
