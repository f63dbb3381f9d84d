package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jaminalder/tictactoe-history/internal/app"
	"github.com/jaminalder/tictactoe-history/internal/logging"
)

type options struct {
	log      zerolog.Logger
	gatherer prometheus.Gatherer
}

// Option configures NewServer.
type Option func(*options)

// WithLogger enables access logging.
func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.log = l } }

// WithGatherer serves g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option { return func(o *options) { o.gatherer = g } }

// NewServer wires routes and returns an http.Handler. It also installs the
// game fragment renderer on s for SSE broadcasts.
func NewServer(s *app.Service, opts ...Option) http.Handler {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	h := &handlers{svc: s, tpl: loadTemplates(), log: o.log}
	s.SetRenderer(h.broadcast)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logging.AccessLog(o.log))

	r.Get("/", h.index)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if o.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{}))
	}
	r.Post("/game", h.create)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.view)
		r.Get("/state", h.state)
		r.Post("/play", h.play)
		r.Post("/jump", h.jump)
		r.Post("/sort", h.sort)
		r.Post("/reset", h.reset)
		r.Get("/events", h.events)
	})
	return r
}
