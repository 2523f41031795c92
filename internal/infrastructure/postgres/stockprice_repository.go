package postgres

import (
	"context"
	"fmt"

	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
	"github.com/jhoicas/feed-export/internal/domain/entity"
)

var _ appfeed.StockPriceService = (*StockPriceRepo)(nil)

// StockPriceRepo implementación del puerto StockPriceService sobre las tablas
// replicadas de stock y precios. La disponibilidad es por oferta y almacén;
// los precios son por producto y localidad.
type StockPriceRepo struct {
	q Querier
}

// NewStockPriceRepository construye el adaptador de stock y precios.
func NewStockPriceRepository(q Querier) *StockPriceRepo {
	return &StockPriceRepo{q: q}
}

// Rests disponibilidad por oferta. El almacén explícito de la consulta tiene
// prioridad sobre el modo; con modo Undefined cuentan todos los almacenes.
// Una oferta sin entrada en el mapa resultante no tiene stock.
func (r *StockPriceRepo) Rests(ctx context.Context, q appfeed.RestsQuery) (map[int64]bool, error) {
	out := make(map[int64]bool, len(q.OfferIDs))
	if len(q.OfferIDs) == 0 {
		return out, nil
	}

	builder := psql.Select("DISTINCT ss.offer_id").
		From("store_stocks ss").
		Join("stores s ON s.id = ss.store_id").
		Where("ss.offer_id = ANY(?)", q.OfferIDs).
		Where("ss.amount > 0")

	switch {
	case q.Store != "":
		builder = builder.Where("s.code = ?", q.Store)
	case q.Mode == entity.StockModeDelivery:
		builder = builder.Where("s.delivery = true")
	case q.Mode == entity.StockModeReservation:
		builder = builder.Where("s.reservation = true")
	}
	if q.LocationCode != "" {
		builder = builder.Where("s.location_code = ?", q.LocationCode)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rests query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan rest: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}

// Prices precio vigente por producto para una localidad. Un producto sin fila
// no aparece en el mapa; los campos opcionales se quedan en nil.
func (r *StockPriceRepo) Prices(ctx context.Context, q appfeed.PricesQuery) (map[int64]entity.PriceInfo, error) {
	out := make(map[int64]entity.PriceInfo, len(q.ProductIDs))
	if len(q.ProductIDs) == 0 {
		return out, nil
	}

	builder := psql.Select("product_id", "price", "old_price", "percent", "COALESCE(segment_id, '')").
		From("product_prices").
		Where("product_id = ANY(?)", q.ProductIDs)
	if q.LocationCode != "" {
		builder = builder.Where("location_code = ?", q.LocationCode)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build prices query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			info entity.PriceInfo
		)
		if err := rows.Scan(&id, &info.Price, &info.OldPrice, &info.Percent, &info.Segment); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		out[id] = info
	}
	return out, rows.Err()
}
