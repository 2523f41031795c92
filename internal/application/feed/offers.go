package feed

import (
	"context"
	"fmt"

	"github.com/jhoicas/feed-export/internal/domain/entity"
)

// OfferResolver carga las ofertas que pasan el filtro y las liga a su producto padre.
type OfferResolver struct {
	catalog CatalogStore
}

// NewOfferResolver construye el resolver de ofertas.
func NewOfferResolver(catalog CatalogStore) *OfferResolver {
	return &OfferResolver{catalog: catalog}
}

// Resolve devuelve las ofertas cuyo producto padre sobrevivió al filtrado,
// junto con el orden de carga (sort ascendente del catálogo). Una oferta
// huérfana no es un error: su producto fue excluido aguas arriba (inactivo,
// fuera de categoría o sin imagen válida) y se descarta en silencio.
func (r *OfferResolver) Resolve(ctx context.Context, f entity.OfferFilter, products map[int64]entity.Product) (map[int64]entity.Offer, []int64, error) {
	offers, err := r.catalog.OffersByFilter(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar ofertas: %w", err)
	}

	result := make(map[int64]entity.Offer, len(offers))
	order := make([]int64, 0, len(offers))
	for _, o := range offers {
		if _, ok := products[o.ProductID]; !ok {
			continue
		}
		result[o.ID] = o
		order = append(order, o.ID)
	}
	return result, order, nil
}
