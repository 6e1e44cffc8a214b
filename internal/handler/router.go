package handler

import (
	"net/http"
	"time"

	"github.com/Shivanand-hulikatti/event-booking/internal/logger"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the chi router with the global middleware stack and every
// API route.
func NewRouter(h *Handler, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger(log))
	r.Use(CORS())

	r.Get("/health", HealthCheck)

	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Post("/", h.CreateEvent)
		r.Get("/{id}", h.GetEvent)
		r.Delete("/{id}", h.DeleteEvent)
		r.Post("/{id}/bookings", h.BookEvent)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Get("/", h.ListBookings)
		r.Get("/{id}", h.GetBooking)
		r.Get("/{id}/qr", h.BookingQR)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.UpdateUser)
		r.Delete("/{id}", h.DeleteUser)
	})

	return r
}

// Logger writes one access log line per request.
func Logger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log.LogAPI(r.Method, r.URL.Path, status, time.Since(start).Round(time.Microsecond))
		})
	}
}

// CORS is permissive; the API is meant to be called from a browser client
// served from anywhere.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}
