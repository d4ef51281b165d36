package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mchen-dev/memedubber/internal/api/handlers"
	"github.com/mchen-dev/memedubber/internal/api/middleware"
	"github.com/mchen-dev/memedubber/internal/config"
)

type Router struct {
	mux      *chi.Mux
	cfg      *config.Config
	pipeline handlers.Processor
}

func NewRouter(cfg *config.Config, p handlers.Processor) *Router {
	return &Router{
		mux:      chi.NewRouter(),
		cfg:      cfg,
		pipeline: p,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(2, 5)
	r.Use(rl.Limit)

	health := handlers.NewHealthHandler()
	r.Get("/healthz", health.Healthz)

	index := handlers.NewIndexHandler()
	r.Get("/", index.Page)

	memeH := handlers.NewMemeHandler(rt.pipeline, rt.cfg.TTS.OutputDir)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/meme/dub", memeH.Dub)
		r.Get("/audio/{name}", memeH.Audio)
	})

	return r
}
