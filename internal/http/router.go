package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mfreitas/contas/internal/auth"
	"github.com/mfreitas/contas/internal/http/card"
	"github.com/mfreitas/contas/internal/http/categorize"
	"github.com/mfreitas/contas/internal/http/house"
	"github.com/mfreitas/contas/internal/http/importcsv"
	"github.com/mfreitas/contas/internal/http/purchase"
	"github.com/mfreitas/contas/internal/http/statement"
)

type Options struct {
	Timeout        time.Duration
	AllowedOrigins []string
}

func New(
	authManager *auth.Manager,
	opts Options,
	housesV1 *house.Handler,
	cardsV1 *card.Handler,
	purchasesV1 *purchase.Handler,
	statementsV1 *statement.Handler,
	importV1 *importcsv.Handler,
	categorizeV1 *categorize.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(opts.Timeout))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(authManager))

		r.Route("/houses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			housesV1.Routes(r)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			cardsV1.Routes(r)
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			purchasesV1.Routes(r)
		})

		r.Route("/statement", statementsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/categorize", func(r chi.Router) {
			categorizeV1.Routes(r)
		})
	})

	return router
}
