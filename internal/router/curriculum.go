package router

import (
	"encoding/json"
	"errors"
	"net/http"

	"curriculum/internal/analytics"
	"curriculum/internal/curriculum"
	"curriculum/internal/middleware"
	"curriculum/internal/models"
	"curriculum/internal/qerrors"
	"curriculum/internal/session"
	"curriculum/internal/workflow"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"
)

func CourseRoutes(registry *session.Registry) *chi.Mux {
	router := chi.NewRouter()

	router.Route("/{courseID}", func(router chi.Router) {
		// Loads the course's editing session into the context
		router.Use(middleware.CourseCtx(registry))

		// Read-only views
		router.Get("/", getCourseHandler)
		router.Get("/modules", listModulesHandler)
		router.Get("/modules/{moduleID}/content", listContentHandler)
		router.Get("/modules/{moduleID}/contentCount", contentCountHandler)
		router.Get("/analytics", getAnalyticsHandler)
		router.Get("/notifications", drainNotificationsHandler)

		// Deletion
		router.Post("/modules/delete/{moduleID}", deleteModuleHandler)
		router.Post("/content/delete/{contentID}", deleteContentHandler)

		// Add/edit workflow
		router.Route("/workflow", func(router chi.Router) {
			router.Get("/", getWorkflowHandler)
			router.Post("/addModule", beginAddModuleHandler)
			router.Post("/editModule/{moduleID}", beginEditModuleHandler)
			router.Post("/addContent/{moduleID}", beginAddContentHandler)
			router.Post("/editContent/{contentID}", beginEditContentHandler)
			router.Post("/save", saveHandler)
			router.Post("/cancel", cancelHandler)
		})
	})

	return router
}

type moduleView struct {
	models.Module
	Content []models.Content `json:"content"`
}

type workflowView struct {
	Phase    string          `json:"phase"`
	Creating bool            `json:"creating"`
	Module   *models.Module  `json:"module,omitempty"`
	Parent   *models.Module  `json:"parent,omitempty"`
	Content  *models.Content `json:"content,omitempty"`
}

// GET: /{courseID}
func getCourseHandler(w http.ResponseWriter, r *http.Request) {
	var course models.Course
	_ = middleware.GetSession(r).Do(func(store *curriculum.Store, _ *workflow.Controller) error {
		course = store.Course()
		return nil
	})
	render.JSON(w, r, course)
}

// GET: /{courseID}/modules
func listModulesHandler(w http.ResponseWriter, r *http.Request) {
	var views []moduleView
	_ = middleware.GetSession(r).Do(func(store *curriculum.Store, _ *workflow.Controller) error {
		modules := store.ListModules()
		views = make([]moduleView, 0, len(modules))
		for _, m := range modules {
			views = append(views, moduleView{Module: m, Content: store.ListContentOf(m.ID)})
		}
		return nil
	})
	render.JSON(w, r, views)
}

// GET: /{courseID}/modules/{moduleID}/content
func listContentHandler(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleID")

	var content []models.Content
	err := middleware.GetSession(r).Do(func(store *curriculum.Store, _ *workflow.Controller) error {
		if _, err := store.GetModule(moduleID); err != nil {
			return err
		}
		content = store.ListContentOf(moduleID)
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, content)
}

// GET: /{courseID}/modules/{moduleID}/contentCount
func contentCountHandler(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleID")

	var count int
	err := middleware.GetSession(r).Do(func(store *curriculum.Store, _ *workflow.Controller) (err error) {
		count, err = store.Cascade().ContentCountFor(moduleID)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]int{"count": count})
}

// GET: /{courseID}/analytics
func getAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	var courseAnalytics *models.CourseAnalytics
	_ = middleware.GetSession(r).Do(func(store *curriculum.Store, _ *workflow.Controller) error {
		courseAnalytics = analytics.GenerateCourseAnalytics(store)
		return nil
	})
	render.JSON(w, r, courseAnalytics)
}

// GET: /{courseID}/notifications
func drainNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, middleware.GetSession(r).DrainNotifications())
}

// POST: /{courseID}/modules/delete/{moduleID}
func deleteModuleHandler(w http.ResponseWriter, r *http.Request) {
	req := &models.DeleteModuleRequest{ModuleID: chi.URLParam(r, "moduleID")}

	var removed int
	err := middleware.GetSession(r).Do(func(store *curriculum.Store, _ *workflow.Controller) (err error) {
		removed, err = store.DeleteModule(req)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]int{"removed": removed})
}

// POST: /{courseID}/content/delete/{contentID}
func deleteContentHandler(w http.ResponseWriter, r *http.Request) {
	req := &models.DeleteContentRequest{ContentID: chi.URLParam(r, "contentID")}

	err := middleware.GetSession(r).Do(func(store *curriculum.Store, _ *workflow.Controller) error {
		return store.DeleteContent(req)
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(200)
	if _, err := w.Write([]byte("Successfully deleted content " + req.ContentID)); err != nil {
		glog.Warningf("failed to write response: %v\n", err)
	}
}

// GET: /{courseID}/workflow
func getWorkflowHandler(w http.ResponseWriter, r *http.Request) {
	var state workflow.State
	_ = middleware.GetSession(r).Do(func(_ *curriculum.Store, wf *workflow.Controller) error {
		state = wf.State()
		return nil
	})
	render.JSON(w, r, toWorkflowView(state))
}

// POST: /{courseID}/workflow/addModule
func beginAddModuleHandler(w http.ResponseWriter, r *http.Request) {
	runWorkflow(w, r, func(_ *curriculum.Store, wf *workflow.Controller) error {
		return wf.BeginAddModule()
	})
}

// POST: /{courseID}/workflow/editModule/{moduleID}
func beginEditModuleHandler(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleID")
	runWorkflow(w, r, func(store *curriculum.Store, wf *workflow.Controller) error {
		m, err := store.GetModule(moduleID)
		if err != nil {
			return err
		}
		return wf.BeginEditModule(m)
	})
}

// POST: /{courseID}/workflow/addContent/{moduleID}
func beginAddContentHandler(w http.ResponseWriter, r *http.Request) {
	moduleID := chi.URLParam(r, "moduleID")
	runWorkflow(w, r, func(store *curriculum.Store, wf *workflow.Controller) error {
		parent, err := store.GetModule(moduleID)
		if err != nil {
			return err
		}
		return wf.BeginAddContent(parent)
	})
}

// POST: /{courseID}/workflow/editContent/{contentID}
func beginEditContentHandler(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	runWorkflow(w, r, func(store *curriculum.Store, wf *workflow.Controller) error {
		content, err := store.GetContent(contentID)
		if err != nil {
			return err
		}
		parent, err := store.GetModule(content.ModuleID)
		if err != nil {
			return err
		}
		return wf.BeginEditContent(parent, content)
	})
}

// POST: /{courseID}/workflow/save
func saveHandler(w http.ResponseWriter, r *http.Request) {
	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var res *workflow.Result
	err := middleware.GetSession(r).Do(func(_ *curriculum.Store, wf *workflow.Controller) (err error) {
		res, err = wf.Save(fields)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	if res.Created {
		render.Status(r, http.StatusCreated)
	}
	if res.Kind == curriculum.KindModule {
		render.JSON(w, r, res.Module)
		return
	}
	render.JSON(w, r, res.Content)
}

// POST: /{courseID}/workflow/cancel
func cancelHandler(w http.ResponseWriter, r *http.Request) {
	runWorkflow(w, r, func(_ *curriculum.Store, wf *workflow.Controller) error {
		wf.Cancel()
		return nil
	})
}

// Helpers

// runWorkflow applies a workflow transition and responds with the resulting state.
func runWorkflow(w http.ResponseWriter, r *http.Request, fn func(store *curriculum.Store, wf *workflow.Controller) error) {
	var state workflow.State
	err := middleware.GetSession(r).Do(func(store *curriculum.Store, wf *workflow.Controller) error {
		if err := fn(store, wf); err != nil {
			return err
		}
		state = wf.State()
		return nil
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, toWorkflowView(state))
}

func toWorkflowView(state workflow.State) workflowView {
	return workflowView{
		Phase:    state.Phase.String(),
		Creating: state.Creating(),
		Module:   state.Module,
		Parent:   state.Parent,
		Content:  state.Content,
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, qerrors.NotFoundError):
		code = http.StatusNotFound
	case errors.Is(err, qerrors.InvalidParentError):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, qerrors.ValidationFailedError):
		code = http.StatusBadRequest
	case errors.Is(err, qerrors.EditInProgressError), errors.Is(err, qerrors.NoActiveEditError):
		code = http.StatusConflict
	default:
		glog.Errorf("unexpected error: %v\n", err)
	}

	render.Status(r, code)
	render.JSON(w, r, map[string]string{"message": err.Error()})
}
