package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Ashwith-Garlapati/dev-event/internal/delivery/http/controllers"
	"github.com/Ashwith-Garlapati/dev-event/internal/delivery/http/middleware"
	"github.com/Ashwith-Garlapati/dev-event/internal/metrics"
)

// RouterDeps holds everything NewRouter mounts.
type RouterDeps struct {
	Events         *controllers.EventController
	Pages          *controllers.PageController
	Bookings       *controllers.BookingController
	Health         *controllers.HealthController
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("GET /api/events", d.Events.ListEvents)
	mux.HandleFunc("GET /api/events/{slug}", d.Events.GetEventBySlug)
	mux.HandleFunc("POST /api/bookings", d.Bookings.CreateBooking)

	// Pages
	mux.HandleFunc("GET /events/{slug}", d.Pages.EventPage)

	// Ops
	mux.HandleFunc("GET /health", d.Health.Health)
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics.Handler())
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Metrics sits directly on the mux so it sees the matched pattern.
	var h http.Handler = middleware.Metrics(d.Metrics, mux)
	h = middleware.CORS(d.AllowedOrigins, h)
	h = middleware.LoggingMiddleware(d.Logger, h)
	return middleware.RequestID(h)
}
