package feed

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jhoicas/feed-export/internal/domain/entity"
)

// FilterCompiler compila la configuración del feed en un FilterSpec inmutable.
type FilterCompiler struct {
	catalog CatalogStore
}

// NewFilterCompiler construye el compilador de filtros.
func NewFilterCompiler(catalog CatalogStore) *FilterCompiler {
	return &FilterCompiler{catalog: catalog}
}

// Compile mapea los campos de la configuración a los predicados de producto y
// oferta, expande los subárboles de sección y copia los umbrales opcionales.
// Los punteros nil se conservan: ausencia de límite no es lo mismo que cero.
func (c *FilterCompiler) Compile(ctx context.Context, s entity.FeedSettings) (entity.FilterSpec, error) {
	spec := entity.FilterSpec{
		Product: entity.ProductFilter{
			SubtypeProduct: s.SubtypeProduct,
			Collection:     s.Collection,
			UpperMaterial:  s.UpperMaterial,
			LiningMaterial: s.LiningMaterial,
			RhodeProduct:   s.RhodeProduct,
			Season:         s.Season,
			Country:        s.Country,
			Brand:          s.Brand,
		},
		Offer:       entity.OfferFilter{Sizes: SplitSizes(s.OfferSizes)},
		PriceMin:    s.PriceFrom,
		PriceMax:    s.PriceTo,
		Segment:     s.PriceSegmentID,
		PercentFrom: s.PercentFrom,
		PercentTo:   s.PercentTo,
	}

	sections, err := c.expandSections(ctx, s.SectionIDs)
	if err != nil {
		return entity.FilterSpec{}, fmt.Errorf("expandir secciones: %w", err)
	}
	spec.Product.SectionIDs = sections

	return spec, nil
}

// expandSections une los subárboles de cada sección configurada, sin
// duplicados. El orden no importa para el filtrado.
func (c *FilterCompiler) expandSections(ctx context.Context, ids []int64) ([]int64, error) {
	seen := make(map[int64]struct{})
	var result []int64
	for _, id := range ids {
		descendants, err := c.Descendants(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, d := range descendants {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			result = append(result, d)
		}
	}
	return result, nil
}

// Descendants expande el subárbol completo de una sección mediante la consulta
// de contención nested-interval: los descendientes son exactamente los nodos
// cuyos límites caen estrictamente dentro de (L, R). Un id cero o inexistente
// devuelve lista vacía.
func (c *FilterCompiler) Descendants(ctx context.Context, id int64) ([]int64, error) {
	if id == 0 {
		return nil, nil
	}
	node, err := c.catalog.SectionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sección %d: %w", id, err)
	}
	if node == nil {
		return nil, nil
	}
	return c.catalog.SectionsInRange(ctx, node.LeftBound, node.RightBound)
}

// SplitSizes divide la lista delimitada de tallas en valores discretos.
// Acepta coma, punto y coma o espacios como separadores; los vacíos se descartan.
func SplitSizes(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	sizes := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			sizes = append(sizes, f)
		}
	}
	if len(sizes) == 0 {
		return nil
	}
	return sizes
}
