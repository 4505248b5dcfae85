package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/voicelab/voiceplatform/docs"
	"github.com/voicelab/voiceplatform/internal/api/handlers"
	"github.com/voicelab/voiceplatform/internal/api/middleware"
	"github.com/voicelab/voiceplatform/internal/config"
	"github.com/voicelab/voiceplatform/internal/language"
	"github.com/voicelab/voiceplatform/internal/store"
	"github.com/voicelab/voiceplatform/internal/tts"
)

type Router struct {
	mux      *chi.Mux
	cfg      *config.Config
	ttsSvc   *tts.Service
	detector *language.Detector
	items    store.ItemRepository
	users    store.UserRepository
}

func NewRouter(cfg *config.Config, engine tts.Engine, detector *language.Detector, items store.ItemRepository, users store.UserRepository) *Router {
	return &Router{
		mux:      chi.NewRouter(),
		cfg:      cfg,
		ttsSvc:   tts.NewService(engine),
		detector: detector,
		items:    items,
		users:    users,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.Server.CORSOrigins))

	health := handlers.NewHealthHandler()
	r.Get("/", health.Root)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health.Health)

		echo := handlers.NewEchoHandler()
		r.Post("/echo", echo.Echo)

		ttsH := handlers.NewTTSHandler(rt.ttsSvc)
		r.Route("/tts", func(r chi.Router) {
			r.Get("/voices", ttsH.Voices)
			r.Post("/voices/search", ttsH.SearchVoices)
			r.Post("/synthesize", ttsH.Synthesize)
			r.Post("/synthesize/stream", ttsH.SynthesizeStream)
		})

		langH := handlers.NewLanguageHandler(rt.detector)
		r.Route("/language", func(r chi.Router) {
			r.Get("/supported", langH.Supported)
			r.Post("/detect", langH.Detect)
			r.Post("/detect/batch", langH.DetectBatch)
			r.Post("/detect/confidence", langH.DetectConfidence)
		})

		itemsH := handlers.NewItemsHandler(rt.items)
		r.Route("/items", func(r chi.Router) {
			r.Post("/", itemsH.Create)
			r.Get("/", itemsH.List)
			r.Get("/{id}", itemsH.Get)
			r.Put("/{id}", itemsH.Update)
			r.Delete("/{id}", itemsH.Delete)
		})

		usersH := handlers.NewUsersHandler(rt.users)
		r.Route("/users", func(r chi.Router) {
			r.Post("/", usersH.Create)
			r.Get("/", usersH.List)
			r.Get("/{id}", usersH.Get)
			r.Delete("/{id}", usersH.Delete)
		})

		// Swagger UI, backed by the generated doc template in docs/.
		r.Mount("/docs", httpSwagger.Handler(
			httpSwagger.URL("/api/v1/docs/doc.json"),
		))
	})

	return r
}
