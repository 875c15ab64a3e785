package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yadhurtech/leadquote/internal/infra/http/handlers"
	"github.com/yadhurtech/leadquote/internal/infra/http/middleware"
)

type routes struct {
	Leads       *handlers.LeadHandler
	Stages      *handlers.StageHandler
	Imports     *handlers.ImportHandler
	Exports     *handlers.ExportHandler
	Proposals   *handlers.ProposalHandler
	Health      *handlers.HealthHandler
	CORSOrigins []string
}

func newRouter(rt routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", rt.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/leads", rt.Leads.HandleList)
		r.Post("/leads", rt.Leads.HandleCreate)
		r.Patch("/leads/{id}", rt.Leads.HandleUpdate)
		r.Delete("/leads/{id}", rt.Leads.HandleDelete)
		r.Get("/board", rt.Leads.HandleBoard)

		r.Get("/stages", rt.Stages.HandleGet)
		r.Post("/stages", rt.Stages.HandleSet)

		r.Post("/import", rt.Imports.HandleImport)
		r.Get("/export", rt.Exports.HandleExport)

		r.Group(func(r chi.Router) {
			r.Use(handlers.NewRateLimiter(10, time.Minute).Middleware) // 10 req/min per IP
			r.Post("/proposals", rt.Proposals.HandleGenerate)
			r.Post("/proposals/html", rt.Proposals.HandleHTML)
			r.Post("/proposals/pdf", rt.Proposals.HandlePDF)
		})
	})

	return r
}
