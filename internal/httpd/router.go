package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDeps collects the handlers and guard the router wires together.
type RouterDeps struct {
	Auth     *AuthHandler
	Member   *MemberHandler
	Customer *CustomerHandler
	Contact  *ContactHandler
	Pages    *PageHandler
	Guard    *Guard
}

// NewRouter assembles the full route table: marketing pages, guarded
// member pages, and the JSON API under /v1.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logging)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000", "*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(Health)

	// Marketing pages.
	r.Get("/", deps.Pages.home)
	r.Get("/automation-benefits", deps.Pages.automationBenefits)
	r.Get("/ai-platform-integration", deps.Pages.platformIntegration)
	r.Get("/contact", deps.Pages.contact)

	// Authenticated pages.
	r.Group(func(r chi.Router) {
		r.Use(deps.Guard.Protect)
		r.Get("/member", deps.Pages.member)
		r.Get("/customer/{id}", deps.Pages.customer)
	})

	// JSON API.
	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.register)
			r.Post("/login", deps.Auth.login)
			r.Post("/logout", deps.Auth.logout)
			r.Get("/session", deps.Auth.session)
			r.Post("/verify-email", deps.Auth.verifyEmail)
		})

		r.Post("/contact", deps.Contact.submit)

		r.Group(func(r chi.Router) {
			r.Use(deps.Guard.Protect)

			r.Route("/member", func(r chi.Router) {
				r.Get("/appointments", deps.Member.appointments)
				r.Get("/appointments/stream", deps.Member.stream)
				r.Get("/metrics", deps.Member.metrics)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", deps.Customer.list)
				r.Get("/{id}", deps.Customer.get)
			})
		})
	})

	// Unknown paths fall back to the home page.
	r.NotFound(deps.Pages.notFound)

	return r
}
