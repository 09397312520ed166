package api

import (
	"itinerary-planner-service/internal/api/handlers"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

type Options struct {
	// Per-client limit on optimize requests. 0 disables limiting.
	OptimizeRatePerMinute int
	CORSOrigins           []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(planner handlers.Planner, opts Options) http.Handler {
	router := httprouter.New()

	days := &handlers.DayHandler{Planner: planner}

	optimize := days.Optimize
	if opts.OptimizeRatePerMinute > 0 {
		optimize = newRateLimiter(opts.OptimizeRatePerMinute).Limit(optimize)
	}

	router.GET("/health", handlers.Health)
	router.GET("/trips/:tripID/days", days.List)
	router.GET("/trips/:tripID/days/:day", days.Get)
	router.POST("/trips/:tripID/days/:day/optimize", optimize)
	router.PUT("/trips/:tripID/days/:day/order", days.Reorder)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(router)

	return requestIDMiddleware(loggingMiddleware(corsHandler))
}
