package handlers

import (
	"net/http"
	"time"

	"projecthub/apierr"
	"projecthub/config"
	"projecthub/credentials"
	"projecthub/database"
	"projecthub/middleware"
	"projecthub/policy"
	"projecthub/respond"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

const apiVersion = "1.0.0"

// NewRouter wires every route of the API.
func NewRouter(cfg *config.Config, logger *logrus.Logger, store *database.Store, creds *credentials.Service) http.Handler {
	authHandler := NewAuthHandler(store, creds)
	userHandler := NewUserHandler(store, creds)
	projectHandler := NewProjectHandler(store)
	taskHandler := NewTaskHandler(store)
	dashboardHandler := NewDashboardHandler(store, time.Now)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Error(w, r, apierr.NotFound("Not Found"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusMethodNotAllowed, respond.ErrorBody{Detail: "Method Not Allowed"})
	})

	// Public routes
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{
			"message": "Welcome to Project Management Tool API",
			"version": apiVersion,
		})
	})
	router.Post("/register", authHandler.Register)
	router.Post("/token", authHandler.Token)

	// Protected routes
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(creds, store))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Get("/{id}", userHandler.Get)
			r.With(middleware.Require(policy.CreateUser)).Post("/", userHandler.Create)
			r.With(middleware.Require(policy.DeleteUser)).Delete("/{id}", userHandler.Delete)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectHandler.List)
			r.Post("/", projectHandler.Create)
			r.Get("/{id}", projectHandler.Get)
			r.Put("/{id}", projectHandler.Update)
			r.Delete("/{id}", projectHandler.Delete)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.With(middleware.Require(policy.CreateTask)).Post("/", taskHandler.Create)
			r.With(middleware.Require(policy.DeleteTask)).Delete("/{id}", taskHandler.Delete)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(middleware.Require(policy.ViewDashboard))
			r.Get("/", dashboardHandler.Summary)
		})
	})

	return router
}
