// Package session keeps one curriculum store and edit workflow per course being edited, and
// serializes every call into them. The store and controller do no locking of their own.
package session

import (
	"context"
	"log"
	"sync"

	"curriculum/internal/curriculum"
	"curriculum/internal/source"
	"curriculum/internal/workflow"
)

// Session is the editing state of one course.
type Session struct {
	mu       sync.Mutex
	store    *curriculum.Store
	workflow *workflow.Controller

	pending   []curriculum.Event
	maxEvents int
}

// Do runs fn with exclusive access to the session's store and workflow.
func (s *Session) Do(fn func(store *curriculum.Store, wf *workflow.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.store, s.workflow)
}

// DrainNotifications returns the events produced since the last drain, oldest first.
func (s *Session) DrainNotifications() []curriculum.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.pending
	s.pending = make([]curriculum.Event, 0)
	return events
}

// notify is only called from inside Do, with mu held.
func (s *Session) notify(e curriculum.Event) {
	if len(s.pending) >= s.maxEvents {
		s.pending = s.pending[1:]
	}
	s.pending = append(s.pending, e)
}

// Registry loads sessions lazily from a course source, one per course.
type Registry struct {
	source    source.Source
	maxEvents int

	sessionsLock sync.Mutex
	sessions     map[string]*Session
}

// defaultMaxEvents is used when NewRegistry is given a non-positive buffer size.
const defaultMaxEvents = 100

func NewRegistry(src source.Source, maxEvents int) *Registry {
	if maxEvents <= 0 {
		maxEvents = defaultMaxEvents
	}
	return &Registry{
		source:    src,
		maxEvents: maxEvents,
		sessions:  make(map[string]*Session),
	}
}

// Get returns the session for courseID, loading the course from the source on first use.
func (r *Registry) Get(ctx context.Context, courseID string) (*Session, error) {
	r.sessionsLock.Lock()
	defer r.sessionsLock.Unlock()

	if s, ok := r.sessions[courseID]; ok {
		return s, nil
	}

	snap, err := r.source.Load(ctx, courseID)
	if err != nil {
		return nil, err
	}

	s := &Session{
		pending:   make([]curriculum.Event, 0),
		maxEvents: r.maxEvents,
	}
	logged := curriculum.LogNotifier{}
	s.store = curriculum.NewStore(snap.Course, snap.Modules, snap.Content,
		curriculum.WithNotifier(curriculum.NotifierFunc(func(e curriculum.Event) {
			logged.Notify(e)
			s.notify(e)
		})))
	s.workflow = workflow.NewController(s.store)

	r.sessions[courseID] = s
	log.Printf("✅ Loaded course %s with %d modules\n", courseID, len(snap.Modules))
	return s, nil
}

// Close drops the session for courseID. Unsaved workflow state is discarded.
func (r *Registry) Close(courseID string) {
	r.sessionsLock.Lock()
	defer r.sessionsLock.Unlock()
	delete(r.sessions, courseID)
}
