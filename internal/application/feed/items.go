package feed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/feed-export/internal/domain/entity"
)

// AvailabilityJoiner cruza las ofertas con el stock, agrega tallas por
// producto, resuelve precios en bloque y aplica los umbrales del filtro.
type AvailabilityJoiner struct {
	stock StockPriceService
}

// NewAvailabilityJoiner construye el joiner.
func NewAvailabilityJoiner(stock StockPriceService) *AvailabilityJoiner {
	return &AvailabilityJoiner{stock: stock}
}

// JoinInput entrada del cruce: productos y ofertas resueltos más el contexto
// de stock (modo derivado, override de almacén y código de localidad).
type JoinInput struct {
	Products     map[int64]entity.Product
	Offers       map[int64]entity.Offer
	OfferOrder   []int64
	Spec         entity.FilterSpec
	Mode         entity.StockMode
	Store        string
	LocationCode string
}

// Join devuelve un FeedItem por producto con al menos una oferta en stock y
// precio resuelto que pasa todos los umbrales. Construye colecciones nuevas
// en cada fase en lugar de borrar sobre la que está recorriendo.
func (j *AvailabilityJoiner) Join(ctx context.Context, in JoinInput) (map[int64]entity.FeedItem, error) {
	if len(in.OfferOrder) == 0 {
		return map[int64]entity.FeedItem{}, nil
	}

	rests, err := j.stock.Rests(ctx, RestsQuery{
		OfferIDs:     in.OfferOrder,
		Mode:         in.Mode,
		Store:        in.Store,
		LocationCode: in.LocationCode,
	})
	if err != nil {
		return nil, fmt.Errorf("consultar stock: %w", err)
	}

	// Agregación por producto padre: una entrada en Sizes por oferta disponible,
	// conservando duplicados (varias variantes en stock de la misma talla).
	aggregated := make(map[int64]*entity.FeedItem)
	var productOrder []int64
	for _, offerID := range in.OfferOrder {
		if !rests[offerID] {
			continue
		}
		offer := in.Offers[offerID]
		item, ok := aggregated[offer.ProductID]
		if !ok {
			item = &entity.FeedItem{
				Product: in.Products[offer.ProductID],
				Offers:  make(map[int64]string),
			}
			aggregated[offer.ProductID] = item
			productOrder = append(productOrder, offer.ProductID)
		}
		item.Sizes = append(item.Sizes, offer.Size)
		item.Offers[offerID] = offer.Size
	}

	if len(aggregated) == 0 {
		return map[int64]entity.FeedItem{}, nil
	}

	prices, err := j.stock.Prices(ctx, PricesQuery{
		ProductIDs:   productOrder,
		LocationCode: in.LocationCode,
	})
	if err != nil {
		return nil, fmt.Errorf("consultar precios: %w", err)
	}

	result := make(map[int64]entity.FeedItem, len(aggregated))
	for _, pid := range productOrder {
		item := aggregated[pid]
		info := prices[pid]
		if info.Price == nil {
			// El precio es obligatorio; sin precio resuelto el item no se exporta.
			continue
		}
		item.Price = *info.Price
		item.OldPrice = info.OldPrice
		item.Percent = info.Percent
		item.Segment = info.Segment
		if !passesThresholds(*item, in.Spec) {
			continue
		}
		result[pid] = *item
	}
	return result, nil
}

// passesThresholds aplica los umbrales en orden fijo: precio mínimo, precio
// máximo, igualdad de segmento, descuento mínimo y descuento máximo. La
// primera regla que falla descarta el item sin evaluar las restantes.
func passesThresholds(item entity.FeedItem, spec entity.FilterSpec) bool {
	if spec.PriceMin != nil && item.Price.LessThan(decimal.NewFromInt(*spec.PriceMin)) {
		return false
	}
	if spec.PriceMax != nil && item.Price.GreaterThan(decimal.NewFromInt(*spec.PriceMax)) {
		return false
	}
	if spec.Segment != "" && item.Segment != spec.Segment {
		return false
	}
	// Un descuento sin resolver cuenta como 0 frente a los límites de porcentaje.
	pct := 0
	if item.Percent != nil {
		pct = *item.Percent
	}
	if spec.PercentFrom != nil && pct < *spec.PercentFrom {
		return false
	}
	if spec.PercentTo != nil && pct > *spec.PercentTo {
		return false
	}
	return true
}
