// feedexport exporta el catálogo de productos a XML para agregadores.
//
// Uso:
//
//	feedexport <code>      exporta una vez el feed indicado y termina
//	feedexport -serve      levanta el servidor HTTP de disparo bajo demanda
//
// Sin argumento, el código se toma de FEED_CODE.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
	"github.com/jhoicas/feed-export/internal/domain/entity"
	"github.com/jhoicas/feed-export/internal/infrastructure/filesystem"
	"github.com/jhoicas/feed-export/internal/infrastructure/postgres"
	"github.com/jhoicas/feed-export/internal/infrastructure/xmlfeed"
	httpRouter "github.com/jhoicas/feed-export/internal/interfaces/http"
	"github.com/jhoicas/feed-export/pkg/config"
	"github.com/jhoicas/feed-export/pkg/logger"
)

func main() {
	serve := flag.Bool("serve", false, "levantar el servidor HTTP en vez de exportar una vez")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	exporter := appfeed.NewExporter(appfeed.ExporterDeps{
		Settings:  postgres.NewSettingsRepository(pool),
		Locations: postgres.NewLocationRepository(pool),
		Catalog:   postgres.NewCatalogRepository(pool, cfg.Export.CatalogIblockID, cfg.Export.OffersIblockID),
		Files:     postgres.NewFileRepository(pool),
		Images:    filesystem.NewImageVerifier(cfg.Export.DocumentRoot),
		Titles:    postgres.NewTitleRepository(pool),
		Stock:     postgres.NewStockPriceRepository(pool),
		Renderer:  xmlfeed.NewRenderer(cfg.Export.OutputDir),
		Lock:      filesystem.NewRunLock(cfg.Export.LockPath),
		Language:  cfg.Export.LocationLanguage,
		Logger:    log,
	})

	if *serve {
		runServer(cfg, log, exporter)
		return
	}

	code := cfg.Export.FeedCode
	if flag.NArg() > 0 {
		code = flag.Arg(0)
	}
	if code == "" {
		log.Fatal().Msg("falta el código del feed: pásalo como argumento o define FEED_CODE")
	}

	report := exporter.Run(ctx, code)
	if report.Status == entity.RunFailed {
		os.Exit(1)
	}
}

// runServer levanta el modo bajo demanda: un endpoint que dispara la
// exportación y espera el reporte.
func runServer(cfg *config.Config, log *logger.Logger, exporter *appfeed.Exporter) {
	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{Exporter: exporter})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
