package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/golang/glog"
)

func HealthRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		if _, err := w.Write([]byte("ok")); err != nil {
			glog.Warningf("failed to write response: %v\n", err)
		}
	})
	return router
}
