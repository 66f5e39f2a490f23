package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"curriculum/internal/models"
	"curriculum/internal/qerrors"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFixture = `
courses:
  - id: ml-101
    title: Machine Learning Foundations
    category: ai_ml
    difficulty: intermediate
    status: active
    learning_outcomes:
      - Train a linear model
      - Evaluate a classifier
  - id: web-101
    title: Web Development
    category: web_dev
    difficulty: beginner
    status: active
modules:
  - id: mod-1
    course_id: ml-101
    title: Regression
    description: Linear and logistic regression
    order: 1
    created_at: "2024-01-10T09:00:00Z"
  - id: mod-2
    course_id: web-101
    title: HTML
    description: Markup basics
    order: 1
    created_at: "2024-01-11T09:00:00Z"
content:
  - id: content-1
    course_id: ml-101
    module_id: mod-1
    title: Gradient descent
    type: video
    file_url: /videos/gd.mp4
    duration_minutes: 18
    order: 1
    views_count: 230
    created_at: "2024-01-10T10:00:00Z"
  - id: content-2
    course_id: web-101
    module_id: mod-2
    title: MDN reference
    type: link
    external_url: https://developer.mozilla.org
    order: 1
    views_count: 12
    created_at: "2024-01-11T10:00:00Z"
`

func TestFixtureSourceLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testFixture), 0o600))

	fs, err := NewFixtureSource(path)
	require.NoError(t, err)

	snap, err := fs.Load(context.Background(), "ml-101")
	require.NoError(t, err)

	assert.Equal(t, "Machine Learning Foundations", snap.Course.Title)
	assert.Equal(t, models.CategoryAIML, snap.Course.Category)
	assert.Equal(t, []string{"Train a linear model", "Evaluate a classifier"}, snap.Course.LearningOutcomes)

	require.Len(t, snap.Modules, 1)
	assert.Equal(t, "mod-1", snap.Modules[0].ID)
	assert.Equal(t, time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), snap.Modules[0].CreatedAt.UTC())

	require.Len(t, snap.Content, 1)
	c := snap.Content[0]
	assert.Equal(t, models.ContentVideo, c.Type)
	assert.Equal(t, 18, c.DurationMinutes)
	assert.Equal(t, 230, c.ViewsCount)
	assert.Equal(t, "mod-1", c.ModuleID)
}

func TestFixtureSourceUnknownCourse(t *testing.T) {
	fs, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)

	_, err = fs.Load(context.Background(), "nope")
	assert.True(t, errors.Is(err, qerrors.CourseNotFoundError))
	assert.True(t, errors.Is(err, qerrors.NotFoundError))
}

func TestParseFixtureErrors(t *testing.T) {
	_, err := ParseFixture([]byte("courses: [oops"))
	assert.Error(t, err)

	_, err = ParseFixture([]byte("modules:\n  - id: m\n    order: first\n"))
	assert.Error(t, err)

	_, err = NewFixtureSource(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDecodeDocumentFirestoreTypes(t *testing.T) {
	created := time.Date(2024, 2, 2, 8, 30, 0, 0, time.UTC)
	var c models.Content
	err := decodeDocument(map[string]interface{}{
		"course_id":    "ml-101",
		"module_id":    "mod-1",
		"title":        "Slides",
		"type":         "presentation",
		"file_size_mb": 4.2,
		"order":        int64(3),
		"views_count":  int64(9),
		"created_at":   created,
	}, &c)
	require.NoError(t, err)

	assert.Equal(t, models.ContentPresentation, c.Type)
	assert.Equal(t, 3, c.Order)
	assert.Equal(t, 9, c.ViewsCount)
	assert.Equal(t, 4.2, c.FileSizeMB)
	assert.Equal(t, created, c.CreatedAt)
}

// TestFirestoreSourceLoad runs against the Firestore emulator when FIRESTORE_EMULATOR_HOST is set.
func TestFirestoreSourceLoad(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "curriculum-test")
	require.NoError(t, err)
	defer client.Close()

	courseID := "course-" + time.Now().Format("150405.000000")
	_, err = client.Collection(models.FirestoreCoursesCollection).Doc(courseID).Set(ctx, map[string]interface{}{
		"title":  "Robotics",
		"status": "active",
	})
	require.NoError(t, err)
	modRef, _, err := client.Collection(models.FirestoreModulesCollection).Add(ctx, map[string]interface{}{
		"course_id":  courseID,
		"title":      "Kinematics",
		"order":      1,
		"created_at": time.Now(),
	})
	require.NoError(t, err)
	_, _, err = client.Collection(models.FirestoreContentCollection).Add(ctx, map[string]interface{}{
		"course_id": courseID,
		"module_id": modRef.ID,
		"title":     "Forward kinematics",
		"type":      "video",
		"order":     1,
	})
	require.NoError(t, err)

	src := NewFirestoreSource(client)
	snap, err := src.Load(ctx, courseID)
	require.NoError(t, err)
	assert.Equal(t, courseID, snap.Course.ID)
	require.Len(t, snap.Modules, 1)
	assert.Equal(t, modRef.ID, snap.Modules[0].ID)
	require.Len(t, snap.Content, 1)
	assert.Equal(t, modRef.ID, snap.Content[0].ModuleID)

	_, err = src.Load(ctx, courseID+"-missing")
	assert.True(t, errors.Is(err, qerrors.CourseNotFoundError))
}

func TestBundledFixture(t *testing.T) {
	fs, err := NewFixtureSource(filepath.Join("..", "..", "fixtures", "curriculum.yaml"))
	require.NoError(t, err)

	snap, err := fs.Load(context.Background(), "ml-101")
	require.NoError(t, err)
	assert.Len(t, snap.Modules, 2)
	assert.Len(t, snap.Content, 3)
	for _, c := range snap.Content {
		assert.Equal(t, "ml-101", c.CourseID)
	}
}
