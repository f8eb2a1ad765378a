package handler

import (
	"net/http"

	"github.com/damon-houk/finance-tracker/internal/infrastructure/logger"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// APIPrefix is the base path the mobile client uses; every route is also served at the root
const APIPrefix = "/api"

// RouteRegistrar is implemented by handlers that mount routes on a router
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// NewRouter mounts the registrars at the root and under APIPrefix, and wraps the result
// in the request ID, recovery, access log and CORS middleware
func NewRouter(log logger.Logger, allowedOrigins []string, registrars ...RouteRegistrar) http.Handler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	router := mux.NewRouter()
	api := router.PathPrefix(APIPrefix).Subrouter()
	for _, r := range registrars {
		r.RegisterRoutes(api)
		r.RegisterRoutes(router)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendErrorResponse(w, log, "Not found", "No route matches "+r.URL.Path,
			http.StatusNotFound, middleware.GetRequestID(r.Context()))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendErrorResponse(w, log, "Method not allowed", r.Method+" is not supported on "+r.URL.Path,
			http.StatusMethodNotAllowed, middleware.GetRequestID(r.Context()))
	})

	return middleware.Chain(router,
		middleware.CORSMiddleware(allowedOrigins),
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(log),
		middleware.RecoveryMiddleware(log),
	)
}
