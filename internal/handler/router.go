package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/folio/folio-api/internal/cookie"
	"github.com/folio/folio-api/internal/middleware"
	"github.com/folio/folio-api/internal/response"
	"github.com/folio/folio-api/internal/service"
	"github.com/folio/folio-api/internal/storage"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Blogs         *service.BlogService
	Projects      *service.ProjectService
	Skills        *service.SkillService
	Contact       *service.ContactService
	Authenticator *middleware.Authenticator
	Images        storage.ImageStore
	Cookies       cookie.Writer
	RateLimiter   *middleware.RateLimiter

	Env         string
	FrontendURL string
}

// NewRouter mounts every route under /api/v1 plus the health endpoints.
func NewRouter(d Deps) http.Handler {
	debug := d.Env != "production"

	authH := NewAuthHandler(d.Auth, d.Cookies, debug)
	userH := NewUserHandler(d.Users, d.Images, d.Cookies, debug)
	blogH := NewBlogHandler(d.Blogs, d.Images, debug)
	projectH := NewProjectHandler(d.Projects, d.Images, debug)
	skillH := NewSkillHandler(d.Skills, d.Images, debug)
	contactH := NewContactHandler(d.Contact, debug)

	requireAuth := d.Authenticator.RequireAuth
	limit := d.RateLimiter.Limit

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	health := healthHandler(d.Env)
	r.Get("/", health)
	r.Get("/health", health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(limit).Post("/login", authH.HandleLogin)
			r.With(limit).Post("/refresh-token", authH.HandleRefresh)
			r.With(requireAuth).Post("/logout", authH.HandleLogout)
			r.With(requireAuth).Post("/change-password", authH.HandleChangePassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(limit).Post("/register", userH.HandleRegister)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", userH.HandleMe)
				r.Patch("/{id}", userH.HandleUpdate)
				r.Put("/{id}", userH.HandleUpdate)
				r.Delete("/{id}", userH.HandleDelete)
			})
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", blogH.HandleList)
			r.Get("/{id}", blogH.HandleGet)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", blogH.HandleCreate)
				r.Post("/create", blogH.HandleCreate)
				r.Patch("/{id}", blogH.HandleUpdate)
				r.Put("/{id}", blogH.HandleUpdate)
				r.Delete("/{id}", blogH.HandleDelete)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", projectH.HandleList)
			r.Get("/{id}", projectH.HandleGet)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", projectH.HandleCreate)
				r.Post("/create", projectH.HandleCreate)
				r.Patch("/{id}", projectH.HandleUpdate)
				r.Put("/{id}", projectH.HandleUpdate)
				r.Delete("/{id}", projectH.HandleDelete)
			})
		})

		r.Route("/skills", func(r chi.Router) {
			r.Get("/", skillH.HandleList)
			r.Get("/{id}", skillH.HandleGet)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", skillH.HandleCreate)
				r.Post("/create", skillH.HandleCreate)
				r.Patch("/{id}", skillH.HandleUpdate)
				r.Put("/{id}", skillH.HandleUpdate)
				r.Delete("/{id}", skillH.HandleDelete)
			})
		})

		r.Route("/contact", func(r chi.Router) {
			r.With(limit).Post("/send", contactH.HandleSend)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusNotFound, "API not found: "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

type healthStatus struct {
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

func healthHandler(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, "Server is running successfully", healthStatus{
			Timestamp:   time.Now().UTC(),
			Environment: env,
		})
	}
}
