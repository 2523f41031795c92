package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
	"github.com/jhoicas/feed-export/internal/domain/entity"
)

var _ appfeed.SettingsStore = (*SettingsRepo)(nil)

// SettingsRepo implementación del puerto SettingsStore sobre PostgreSQL.
// Las listas (secciones, predicados por atributo) viven como arrays en la
// misma fila: la configuración se lee entera en una sola consulta.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de configuración de feeds.
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetByCode devuelve la configuración activa con ese código, o nil si no existe.
func (r *SettingsRepo) GetByCode(ctx context.Context, code string) (*entity.FeedSettings, error) {
	query := `
		SELECT id, code, name, location,
		       section_ids, price_from, price_to, price_segment_id, offer_sizes,
		       percent_from, percent_to,
		       subtype_product, collection, upper_material, lining_material,
		       rhode_product, season, country, brand,
		       stores, reservation, delivery
		FROM feed_settings
		WHERE code = $1 AND active = true`
	var s entity.FeedSettings
	err := r.q.QueryRow(ctx, query, code).Scan(
		&s.ID, &s.Code, &s.Name, &s.Location,
		&s.SectionIDs, &s.PriceFrom, &s.PriceTo, &s.PriceSegmentID, &s.OfferSizes,
		&s.PercentFrom, &s.PercentTo,
		&s.SubtypeProduct, &s.Collection, &s.UpperMaterial, &s.LiningMaterial,
		&s.RhodeProduct, &s.Season, &s.Country, &s.Brand,
		&s.Stores, &s.Reservation, &s.Delivery,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get feed settings: %w", err)
	}
	return &s, nil
}
