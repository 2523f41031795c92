package feed

import (
	"context"
	"time"

	"github.com/jhoicas/feed-export/internal/domain/entity"
)

// SettingsStore carga la configuración del feed.
type SettingsStore interface {
	// GetByCode devuelve la configuración activa con ese código, o nil si no existe.
	GetByCode(ctx context.Context, code string) (*entity.FeedSettings, error)
}

// CatalogStore acceso de solo lectura al catálogo (elementos y secciones).
type CatalogStore interface {
	// SectionByID devuelve la sección activa con sus límites nested-interval, o nil si no existe.
	SectionByID(ctx context.Context, id int64) (*entity.CategoryNode, error)
	// SectionsInRange ids de las secciones cuyos límites caen estrictamente
	// dentro de (left, right), ordenados por sort ascendente.
	SectionsInRange(ctx context.Context, left, right int) ([]int64, error)
	// ProductsByFilter elementos activos del catálogo que cumplen el predicado, con la proyección fija del feed.
	ProductsByFilter(ctx context.Context, f entity.ProductFilter) ([]entity.ProductRecord, error)
	// OffersByFilter ofertas activas que cumplen el predicado, en orden ascendente de sort.
	OffersByFilter(ctx context.Context, f entity.OfferFilter) ([]entity.Offer, error)
}

// FileStore resuelve ids de archivo a rutas públicas.
type FileStore interface {
	FilesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// ImageVerifier comprueba que una ruta pública apunta a una imagen decodificable en disco.
type ImageVerifier interface {
	IsImage(path string) bool
}

// TitleStore títulos legibles de la estructura del catálogo, por código externo.
// entityName es una de las tablas de referencia: Vid, Typeproduct, Subtypeproduct.
type TitleStore interface {
	TitlesByCodes(ctx context.Context, entityName string, codes []string) (map[string]string, error)
}

// LocationStore resuelve el nombre legible de una localidad a su código.
// Devuelve cadena vacía si el nombre no existe en ese idioma.
type LocationStore interface {
	CodeByName(ctx context.Context, name, language string) (string, error)
}

// RestsQuery consulta de disponibilidad en bloque. Store no vacío tiene
// prioridad sobre Mode; con Mode Undefined la consulta no se restringe.
type RestsQuery struct {
	OfferIDs     []int64
	Mode         entity.StockMode
	Store        string
	LocationCode string
}

// PricesQuery consulta de precios en bloque para una localidad.
type PricesQuery struct {
	ProductIDs   []int64
	LocationCode string
}

// StockPriceService servicio externo de stock y precios por variante/producto.
type StockPriceService interface {
	// Rests disponibilidad por oferta; una oferta sin entrada se trata como no disponible.
	Rests(ctx context.Context, q RestsQuery) (map[int64]bool, error)
	// Prices precio, precio anterior, descuento y segmento por producto.
	Prices(ctx context.Context, q PricesQuery) (map[int64]entity.PriceInfo, error)
}

// RunLock exclusión mutua entre ejecuciones del mismo feed.
type RunLock interface {
	// Acquire crea el marcador con la hora de inicio; ErrAlreadyRunning si ya existe.
	Acquire(now time.Time) error
	// Release elimina el marcador y devuelve la duración desde la hora registrada.
	Release(now time.Time) (time.Duration, error)
}

// ExportOutput conjunto resuelto que consume el renderizador.
type ExportOutput struct {
	Settings   entity.FeedSettings
	Items      map[int64]entity.FeedItem
	Categories []entity.CategoryEntry
}

// Renderer serializa el resultado al esquema XML externo y persiste el archivo.
// El archivo de la exportación anterior debe quedar intacto si Render falla.
type Renderer interface {
	Render(ctx context.Context, out ExportOutput) error
}
