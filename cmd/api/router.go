package main

import (
	"database/sql"
	"net/http"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/config"
	"github.com/crucial707/blog-api/internal/handlers"
	"github.com/crucial707/blog-api/internal/middleware"
	"github.com/crucial707/blog-api/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter wires repositories, the token issuer, and handlers into a chi router.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(db)
	blogRepo := repo.NewBlogRepo(db)
	tokens := auth.NewIssuer([]byte(cfg.SecretKey), cfg.TokenTTL())

	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Tokens: tokens}
	userHandler := &handlers.UserHandler{Repo: userRepo}
	blogHandler := &handlers.BlogHandler{Repo: blogRepo, Users: userRepo}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins, cfg.TokenHeader))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.With(middleware.LoginRateLimiter().Middleware).Get("/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.TokenHeader, tokens, userRepo))

		r.Post("/blog", blogHandler.CreateBlog)
		r.Get("/blog/{id}", blogHandler.GetBlog)
		r.Put("/blog/{id}", blogHandler.UpdateBlog)
		r.Delete("/blog/{id}", blogHandler.DeleteBlog)
		r.Get("/blogs/{author}", blogHandler.ListBlogsByAuthor)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/blogs", blogHandler.ListBlogs)
			r.Get("/users", userHandler.ListUsers)
			r.Post("/user", userHandler.CreateUser)
			r.Get("/user/{public_id}", userHandler.GetUser)
			r.Put("/user/{public_id}", userHandler.PromoteUser)
			r.Delete("/user/{public_id}", userHandler.DeleteUser)
		})
	})

	return r
}
