package curriculum

import (
	"fmt"
	"sort"
	"time"

	"curriculum/internal/models"
	"curriculum/internal/qerrors"

	"github.com/golang/glog"
	"github.com/google/uuid"
)

// Store holds the modules and content of exactly one course. It does no locking: callers must not
// use a Store from more than one goroutine at a time.
type Store struct {
	course  models.Course
	modules []models.Module
	content []models.Content

	// issued records every id ever handed out or loaded, so ids stay unique after deletes.
	issued map[string]struct{}

	notifier Notifier
	now      func() time.Time
	newID    func() string

	cascade *CascadeDeleter
}

type Option func(*Store)

// WithNotifier sets the sink that receives an Event after each mutation.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithClock overrides the clock used for created_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how new ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// NewStore creates a store for the given course, seeded with the modules and content the course
// source returned. Rows belonging to another course, and content whose module is missing, are
// dropped so the store starts without orphans.
func NewStore(course models.Course, modules []models.Module, content []models.Content, opts ...Option) *Store {
	s := &Store{
		course:   course,
		modules:  make([]models.Module, 0, len(modules)),
		content:  make([]models.Content, 0, len(content)),
		issued:   make(map[string]struct{}),
		notifier: LogNotifier{},
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cascade = &CascadeDeleter{store: s}

	for _, m := range modules {
		if m.CourseID != course.ID {
			glog.Warningf("skipping module %s: belongs to course %s, not %s\n", m.ID, m.CourseID, course.ID)
			continue
		}
		s.modules = append(s.modules, m)
		s.issued[m.ID] = struct{}{}
	}
	for _, c := range content {
		if c.CourseID != course.ID || s.moduleIndex(c.ModuleID) < 0 {
			glog.Warningf("skipping orphaned content %s (module %s)\n", c.ID, c.ModuleID)
			continue
		}
		s.content = append(s.content, c)
		s.issued[c.ID] = struct{}{}
	}

	return s
}

// Course returns the course this store edits.
func (s *Store) Course() models.Course {
	return s.course
}

// Cascade returns the coordinator used to delete modules together with their content.
func (s *Store) Cascade() *CascadeDeleter {
	return s.cascade
}

// ListModules returns the course's modules sorted by ascending order. Modules sharing an order keep
// their insertion order.
func (s *Store) ListModules() []models.Module {
	modules := make([]models.Module, len(s.modules))
	copy(modules, s.modules)
	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i].Order < modules[j].Order
	})
	return modules
}

// ListContentOf returns the content of the given module sorted by ascending order.
func (s *Store) ListContentOf(moduleID string) []models.Content {
	content := make([]models.Content, 0)
	for _, c := range s.content {
		if c.ModuleID == moduleID {
			content = append(content, c)
		}
	}
	sort.SliceStable(content, func(i, j int) bool {
		return content[i].Order < content[j].Order
	})
	return content
}

// GetModule returns the module with the given ID.
func (s *Store) GetModule(ID string) (*models.Module, error) {
	i := s.moduleIndex(ID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", qerrors.ModuleNotFoundError, ID)
	}
	m := s.modules[i]
	return &m, nil
}

// GetContent returns the content item with the given ID.
func (s *Store) GetContent(ID string) (*models.Content, error) {
	i := s.contentIndex(ID)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", qerrors.ContentNotFoundError, ID)
	}
	c := s.content[i]
	return &c, nil
}

// CreateModule appends a new module to the end of the course. Required fields are not checked
// here; the caller validates them.
func (s *Store) CreateModule(c *models.CreateModuleRequest) *models.Module {
	module := models.Module{
		ID:          s.uniqueID(),
		CourseID:    s.course.ID,
		Title:       c.Title,
		Description: c.Description,
		Order:       NextOrder(s.modules),
		CreatedAt:   s.now(),
	}
	s.modules = append(s.modules, module)

	s.notifier.Notify(succeeded(OperationCreate, KindModule, module.ID))
	return &module
}

// UpdateModule merges the non-nil fields of c into the module. The ID, course and order never
// change.
func (s *Store) UpdateModule(c *models.EditModuleRequest) (*models.Module, error) {
	i := s.moduleIndex(c.ModuleID)
	if i < 0 {
		err := fmt.Errorf("%w: %s", qerrors.ModuleNotFoundError, c.ModuleID)
		s.notifier.Notify(failed(OperationUpdate, KindModule, c.ModuleID, err))
		return nil, err
	}

	module := &s.modules[i]
	if c.Title != nil {
		module.Title = *c.Title
	}
	if c.Description != nil {
		module.Description = *c.Description
	}

	s.notifier.Notify(succeeded(OperationUpdate, KindModule, module.ID))
	updated := *module
	return &updated, nil
}

// DeleteModule deletes the module and all of its content. It returns how many content items were
// removed.
func (s *Store) DeleteModule(c *models.DeleteModuleRequest) (int, error) {
	return s.cascade.DeleteModuleCascade(c.ModuleID)
}

// CreateContent appends a new content item to the end of its module.
func (s *Store) CreateContent(c *models.CreateContentRequest) (*models.Content, error) {
	if s.moduleIndex(c.ModuleID) < 0 {
		err := fmt.Errorf("%w: module %s", qerrors.InvalidParentError, c.ModuleID)
		s.notifier.Notify(failed(OperationCreate, KindContent, "", err))
		return nil, err
	}

	content := models.Content{
		ID:              s.uniqueID(),
		CourseID:        s.course.ID,
		ModuleID:        c.ModuleID,
		Title:           c.Title,
		Type:            c.Type,
		FileURL:         c.FileURL,
		YouTubeURL:      c.YouTubeURL,
		ExternalURL:     c.ExternalURL,
		DurationMinutes: c.DurationMinutes,
		FileSizeMB:      c.FileSizeMB,
		Order:           NextOrder(s.ListContentOf(c.ModuleID)),
		ViewsCount:      0,
		CreatedAt:       s.now(),
	}
	s.content = append(s.content, content)

	s.notifier.Notify(succeeded(OperationCreate, KindContent, content.ID))
	return &content, nil
}

// UpdateContent merges the non-nil fields of c into the content item. Its ID, owning module,
// course, order and view count never change.
func (s *Store) UpdateContent(c *models.EditContentRequest) (*models.Content, error) {
	i := s.contentIndex(c.ContentID)
	if i < 0 {
		err := fmt.Errorf("%w: %s", qerrors.ContentNotFoundError, c.ContentID)
		s.notifier.Notify(failed(OperationUpdate, KindContent, c.ContentID, err))
		return nil, err
	}

	content := &s.content[i]
	if c.Title != nil {
		content.Title = *c.Title
	}
	if c.Type != nil {
		content.Type = *c.Type
	}
	if c.FileURL != nil {
		content.FileURL = *c.FileURL
	}
	if c.YouTubeURL != nil {
		content.YouTubeURL = *c.YouTubeURL
	}
	if c.ExternalURL != nil {
		content.ExternalURL = *c.ExternalURL
	}
	if c.DurationMinutes != nil {
		content.DurationMinutes = *c.DurationMinutes
	}
	if c.FileSizeMB != nil {
		content.FileSizeMB = *c.FileSizeMB
	}

	s.notifier.Notify(succeeded(OperationUpdate, KindContent, content.ID))
	updated := *content
	return &updated, nil
}

// DeleteContent removes a single content item. ContentNotFoundError means nothing was removed;
// callers that want idempotent deletes can ignore it.
func (s *Store) DeleteContent(c *models.DeleteContentRequest) error {
	i := s.contentIndex(c.ContentID)
	if i < 0 {
		err := fmt.Errorf("%w: %s", qerrors.ContentNotFoundError, c.ContentID)
		s.notifier.Notify(failed(OperationDelete, KindContent, c.ContentID, err))
		return err
	}

	content := make([]models.Content, 0, len(s.content)-1)
	content = append(content, s.content[:i]...)
	content = append(content, s.content[i+1:]...)
	s.content = content

	s.notifier.Notify(succeeded(OperationDelete, KindContent, c.ContentID))
	return nil
}

// Helpers

func (s *Store) moduleIndex(ID string) int {
	for i := range s.modules {
		if s.modules[i].ID == ID {
			return i
		}
	}
	return -1
}

func (s *Store) contentIndex(ID string) int {
	for i := range s.content {
		if s.content[i].ID == ID {
			return i
		}
	}
	return -1
}

func (s *Store) uniqueID() string {
	for {
		ID := s.newID()
		if _, taken := s.issued[ID]; taken {
			continue
		}
		s.issued[ID] = struct{}{}
		return ID
	}
}
