package server

import (
	"fmt"
	"log"
	"net/http"

	"curriculum/internal/config"
	rtr "curriculum/internal/router"
	"curriculum/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func Routes(registry *session.Registry) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.Logger,    // Log API Request Calls
		middleware.Recoverer, // Turn handler panics into 500s
	)

	router.Route("/", func(r chi.Router) {
		r.Mount("/", rtr.HealthRoutes())
	})

	router.Route("/v1", func(r chi.Router) {
		r.Mount("/courses", rtr.CourseRoutes(registry))
	})

	return router
}

// Handler wraps Routes with the CORS policy from cfg.
func Handler(cfg *config.ServerConfig, registry *session.Registry) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedHeaders: []string{"Content-Type"},
		AllowedMethods: []string{"GET", "POST"},
	})
	return c.Handler(Routes(registry))
}

func Start(registry *session.Registry) {
	if config.Config == nil {
		log.Panic("❌ Missing or invalid configuration!")
	}

	handler := Handler(config.Config, registry)
	log.Printf("Server is listening on port %v\n", config.Config.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%v", config.Config.Port), handler))
}
