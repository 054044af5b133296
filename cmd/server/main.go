package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VishnuMohan31/Worky-sub000/internal/server"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/domain/hierarchy"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/infrastructure/persistence"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/infrastructure/workyapi"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/presentation/controllers"
	"github.com/VishnuMohan31/Worky-sub000/modules/tracker/services"
	"github.com/VishnuMohan31/Worky-sub000/pkg/configuration"
	"github.com/VishnuMohan31/Worky-sub000/pkg/eventbus"
	"github.com/VishnuMohan31/Worky-sub000/pkg/metrics"
	pkgserver "github.com/VishnuMohan31/Worky-sub000/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	var (
		repo hierarchy.ReadRepository
		pool *pgxpool.Pool
	)
	switch conf.DataSource {
	case "api":
		repo = workyapi.New(conf.UpstreamAPI.BaseURL, time.Duration(conf.UpstreamAPI.TimeoutSeconds)*time.Second)
		logger.WithField("base_url", conf.UpstreamAPI.BaseURL).Info("using upstream worky api datasource")
	default:
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		var err error
		pool, err = pgxpool.New(ctx, conf.Database.DSN())
		if err != nil {
			panic(err)
		}
		repo = persistence.NewTrackerRepository()
		logger.WithField("database", conf.Database.Name).Info("using postgres datasource")
	}

	bus := eventbus.NewEventPublisher(logger)
	fetcher := services.NewLevelFetcher(repo, logger)
	resolver := services.NewResolver(repo, logger)
	sessions := services.NewSessionRegistry(func() *services.SelectionController {
		return services.NewSelectionController(
			fetcher,
			resolver,
			services.WithEventBus(bus),
			services.WithLogger(logger),
		)
	})

	srv, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Pool:          pool,
		Controllers: []pkgserver.Controller{
			controllers.NewTrackerAPIController(fetcher, resolver, sessions),
			metrics.NewPrometheusController(""),
		},
	})
	if err != nil {
		panic(err)
	}

	bus.Subscribe(func(event services.CandidatesFetchFailedEvent) {
		logger.WithError(event.Err).
			WithField("level", event.Level.String()).
			Warn("candidate fetch failed")
	})

	logger.WithField("address", conf.Address).Info("listening")
	if err := http.ListenAndServe(conf.Address, srv.Handler()); err != nil {
		panic(err)
	}
}
