package middleware

import (
	"context"
	"errors"
	"net/http"

	"curriculum/internal/qerrors"
	"curriculum/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/golang/glog"
)

type contextKey string

const sessionKey contextKey = "courseSession"

// CourseCtx loads the editing session for the {courseID} URL param and adds it to the request
// context, where GetSession can find it.
func CourseCtx(registry *session.Registry) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			courseID := chi.URLParam(r, "courseID")

			s, err := registry.Get(r.Context(), courseID)
			if errors.Is(err, qerrors.CourseNotFoundError) {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			if err != nil {
				glog.Errorf("error loading course %s: %v\n", courseID, err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the session added by CourseCtx.
func GetSession(r *http.Request) *session.Session {
	s, _ := r.Context().Value(sessionKey).(*session.Session)
	return s
}
