package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/VishnuMohan31/Worky-sub000/pkg/configuration"
	"github.com/VishnuMohan31/Worky-sub000/pkg/httpapi"
	"github.com/VishnuMohan31/Worky-sub000/pkg/middleware"
	"github.com/VishnuMohan31/Worky-sub000/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Pool          *pgxpool.Pool
	Controllers   []server.Controller
}

// Default assembles the standard middleware stack and router: request
// logging, the database pool binding, optional rate limiting, JSON
// fallbacks, gzip.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
	}
	if options.Pool != nil {
		middlewares = append(middlewares, middleware.ProvidePool(options.Pool))
	}
	if options.Configuration.RateLimit.Enabled {
		limit, err := middleware.RateLimit(options.Configuration.RateLimit.Rate)
		if err != nil {
			return nil, err
		}
		middlewares = append(middlewares, limit)
	}

	return &server.HTTPServer{
		Controllers:             options.Controllers,
		Middlewares:             middlewares,
		NotFoundHandler:         httpapi.NotFoundHandler(),
		MethodNotAllowedHandler: httpapi.MethodNotAllowedHandler(),
	}, nil
}
