package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"donorpath/internal/http/handlers"
	"donorpath/internal/infra/geoip"
	"donorpath/internal/middleware"
)

type Options struct {
	JWTSecret       string
	AllowedOrigins  []string
	RateLimitPerMin int
	Logger          zerolog.Logger
	Countries       geoip.CountryResolver
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger, opts.Countries),
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(opts.JWTSecret))

		r.Route("/v1/donors", func(r chi.Router) {
			r.Get("/", app.DonorsList)
			r.Post("/upload", app.DonorsUpload)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", app.DonorsUpdate)
				r.Delete("/", app.DonorsDelete)
				r.Get("/notes", app.NotesList)
				r.Post("/notes", app.NotesCreate)
				r.Get("/workflow-responses", app.WorkflowResponsesList)
				r.Put("/workflow-responses", app.WorkflowResponsesSave)
				r.Get("/analysis-versions", app.AnalysisVersionsList)
				r.Post("/analysis-versions", app.AnalysisVersionsCreate)
			})
		})

		r.Post("/v1/analysis-versions/{id}/restore", app.AnalysisVersionsRestore)

		r.With(middleware.RateLimit(opts.RateLimitPerMin, time.Minute)).
			Post("/v1/analysis", app.Analysis)

		r.Get("/v1/me/roles", app.MeRoles)
	})

	return r
}
