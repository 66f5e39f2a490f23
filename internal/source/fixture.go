package source

import (
	"context"
	"fmt"
	"os"

	"curriculum/internal/models"
	"curriculum/internal/qerrors"

	"gopkg.in/yaml.v3"
)

// fixtureFile is the layout of a fixture: flat course, module and content lists, joined by
// course_id and module_id.
type fixtureFile struct {
	Courses []map[string]interface{} `yaml:"courses"`
	Modules []map[string]interface{} `yaml:"modules"`
	Content []map[string]interface{} `yaml:"content"`
}

// FixtureSource serves courses from a YAML file. The file is parsed once when the source is
// created.
type FixtureSource struct {
	courses map[string]models.Course
	modules []models.Module
	content []models.Content
}

// NewFixtureSource reads and decodes the fixture at path.
func NewFixtureSource(path string) (*FixtureSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading fixture: %w", err)
	}
	return ParseFixture(raw)
}

// ParseFixture decodes fixture YAML.
func ParseFixture(raw []byte) (*FixtureSource, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("error parsing fixture: %w", err)
	}

	fs := &FixtureSource{courses: make(map[string]models.Course)}
	for i, doc := range f.Courses {
		var c models.Course
		if err := decodeDocument(doc, &c); err != nil {
			return nil, fmt.Errorf("error decoding course %d: %w", i, err)
		}
		fs.courses[c.ID] = c
	}
	for i, doc := range f.Modules {
		var m models.Module
		if err := decodeDocument(doc, &m); err != nil {
			return nil, fmt.Errorf("error decoding module %d: %w", i, err)
		}
		fs.modules = append(fs.modules, m)
	}
	for i, doc := range f.Content {
		var c models.Content
		if err := decodeDocument(doc, &c); err != nil {
			return nil, fmt.Errorf("error decoding content %d: %w", i, err)
		}
		fs.content = append(fs.content, c)
	}

	return fs, nil
}

func (fs *FixtureSource) Load(_ context.Context, courseID string) (*Snapshot, error) {
	course, ok := fs.courses[courseID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", qerrors.CourseNotFoundError, courseID)
	}

	snap := &Snapshot{Course: course}
	for _, m := range fs.modules {
		if m.CourseID == courseID {
			snap.Modules = append(snap.Modules, m)
		}
	}
	for _, c := range fs.content {
		if c.CourseID == courseID {
			snap.Content = append(snap.Content, c)
		}
	}
	return snap, nil
}
