package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/feed-export/internal/domain"
	"github.com/jhoicas/feed-export/internal/domain/entity"
	"github.com/jhoicas/feed-export/pkg/logger"
)

// Exporter orquesta la exportación completa de un feed: lock, configuración,
// localidad, filtro, resolución, cruce y renderizado.
type Exporter struct {
	settings  SettingsStore
	locations LocationStore
	compiler  *FilterCompiler
	products  *ProductResolver
	offers    *OfferResolver
	joiner    *AvailabilityJoiner
	renderer  Renderer
	lock      RunLock
	language  string
	log       *logger.Logger
}

// ExporterDeps dependencias del orquestador.
type ExporterDeps struct {
	Settings  SettingsStore
	Locations LocationStore
	Catalog   CatalogStore
	Files     FileStore
	Images    ImageVerifier
	Titles    TitleStore
	Stock     StockPriceService
	Renderer  Renderer
	Lock      RunLock
	Language  string // idioma para resolver nombres de localidad
	Logger    *logger.Logger
}

// NewExporter construye el orquestador con sus etapas internas ya cableadas.
func NewExporter(deps ExporterDeps) *Exporter {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	language := deps.Language
	if language == "" {
		language = "ru"
	}
	return &Exporter{
		settings:  deps.Settings,
		locations: deps.Locations,
		compiler:  NewFilterCompiler(deps.Catalog),
		products:  NewProductResolver(deps.Catalog, deps.Files, deps.Images, deps.Titles),
		offers:    NewOfferResolver(deps.Catalog),
		joiner:    NewAvailabilityJoiner(deps.Stock),
		renderer:  deps.Renderer,
		lock:      deps.Lock,
		language:  language,
		log:       log,
	}
}

// Run ejecuta la exportación del feed con el código dado y devuelve un reporte
// estructurado. Una ejecución concurrente produce un reporte "skipped" sin
// tocar el archivo anterior; cualquier fallo posterior a la adquisición del
// lock lo libera antes de reportarse.
func (e *Exporter) Run(ctx context.Context, code string) entity.RunReport {
	report := entity.RunReport{RunID: uuid.New().String(), Status: entity.RunSuccess}
	lg := e.log.WithRun(report.RunID, code)

	if err := e.lock.Acquire(time.Now()); err != nil {
		if errors.Is(err, domain.ErrAlreadyRunning) {
			lg.Info().Msg("exportación ya en curso, se omite")
			report.Status = entity.RunSkipped
			return report
		}
		lg.Error().Err(err).Msg("adquirir lock de ejecución")
		report.Status = entity.RunFailed
		report.Errors = append(report.Errors, err.Error())
		return report
	}
	lg.Info().Msg("inicio de exportación")

	items, runErr := e.export(ctx, lg, code)
	report.Items = items

	// El lock se libera en todos los caminos de salida, también tras un fallo.
	duration, relErr := e.lock.Release(time.Now())
	report.Duration = duration

	if runErr != nil {
		lg.Error().Err(runErr).Msg("exportación fallida")
		report.Status = entity.RunFailed
		report.Errors = append(report.Errors, runErr.Error())
	}
	if relErr != nil {
		// Un lock que no se libera compromete las ejecuciones futuras: se reporta aparte.
		lg.Error().Err(relErr).Msg("liberar lock de ejecución")
		report.Status = entity.RunFailed
		report.Errors = append(report.Errors, relErr.Error())
	}
	if report.Status == entity.RunSuccess {
		lg.Info().Int("items", items).Dur("duration", duration).Msg("fin de exportación")
	}
	return report
}

// export ejecuta el pipeline de resolución propiamente dicho.
func (e *Exporter) export(ctx context.Context, lg *logger.Logger, code string) (int, error) {
	settings, err := e.settings.GetByCode(ctx, code)
	if err != nil {
		return 0, fmt.Errorf("cargar configuración del feed: %w", err)
	}
	if settings == nil {
		return 0, domain.ErrSettingsNotFound
	}
	lg.Info().Str("name", settings.Name).Msg("configuración cargada")

	// La localidad se resuelve una vez y se pasa explícita a stock y precios.
	locationCode := ""
	if settings.Location != "" {
		locationCode, err = e.locations.CodeByName(ctx, settings.Location, e.language)
		if err != nil {
			return 0, fmt.Errorf("resolver localidad %q: %w", settings.Location, err)
		}
		if locationCode == "" {
			return 0, domain.ErrLocationNotFound
		}
	}

	spec, err := e.compiler.Compile(ctx, *settings)
	if err != nil {
		return 0, fmt.Errorf("compilar filtro: %w", err)
	}

	products, categories, err := e.products.Resolve(ctx, spec.Product)
	if err != nil {
		return 0, err
	}
	lg.Debug().Int("products", len(products)).Msg("productos resueltos")

	offers, order, err := e.offers.Resolve(ctx, spec.Offer, products)
	if err != nil {
		return 0, err
	}
	lg.Debug().Int("offers", len(offers)).Msg("ofertas resueltas")

	items, err := e.joiner.Join(ctx, JoinInput{
		Products:     products,
		Offers:       offers,
		OfferOrder:   order,
		Spec:         spec,
		Mode:         settings.DeriveStockMode(),
		Store:        settings.Stores,
		LocationCode: locationCode,
	})
	if err != nil {
		return 0, err
	}

	if err := e.renderer.Render(ctx, ExportOutput{
		Settings:   *settings,
		Items:      items,
		Categories: categories,
	}); err != nil {
		return 0, fmt.Errorf("renderizar feed: %w", err)
	}

	lg.Info().Int("items", len(items)).Msg("items exportados")
	return len(items), nil
}
