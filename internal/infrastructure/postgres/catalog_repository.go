package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
	"github.com/jhoicas/feed-export/internal/domain/entity"
)

var _ appfeed.CatalogStore = (*CatalogRepo)(nil)

// CatalogRepo implementación del puerto CatalogStore sobre PostgreSQL.
// Secciones y elementos comparten el esquema de bloques de información:
// catálogo y ofertas son dos bloques distintos (catalogID, offersID).
type CatalogRepo struct {
	q         Querier
	catalogID int64
	offersID  int64
}

// NewCatalogRepository construye el adaptador de catálogo sobre los dos
// bloques: el de productos y el de ofertas.
func NewCatalogRepository(q Querier, catalogID, offersID int64) *CatalogRepo {
	return &CatalogRepo{q: q, catalogID: catalogID, offersID: offersID}
}

// SectionByID devuelve la sección activa con sus límites nested-interval, o nil si no existe.
func (r *CatalogRepo) SectionByID(ctx context.Context, id int64) (*entity.CategoryNode, error) {
	query := `
		SELECT id, left_margin, right_margin, sort
		FROM catalog_sections
		WHERE id = $1 AND iblock_id = $2 AND active = true`
	var n entity.CategoryNode
	err := r.q.QueryRow(ctx, query, id, r.catalogID).Scan(&n.ID, &n.LeftBound, &n.RightBound, &n.Sort)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get section: %w", err)
	}
	return &n, nil
}

// SectionsInRange ids de las secciones activas cuyos límites caen estrictamente
// dentro de (left, right), ordenados por sort ascendente. La comparación es
// estricta: la sección cuyos límites son exactamente (left, right) no entra.
func (r *CatalogRepo) SectionsInRange(ctx context.Context, left, right int) ([]int64, error) {
	query := `
		SELECT id
		FROM catalog_sections
		WHERE iblock_id = $1 AND active = true
		  AND left_margin > $2 AND right_margin < $3
		ORDER BY sort ASC`
	rows, err := r.q.Query(ctx, query, r.catalogID, left, right)
	if err != nil {
		return nil, fmt.Errorf("sections in range: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan section id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ProductsByFilter elementos activos del catálogo que cumplen el predicado.
// Los predicados vacíos no restringen; los no vacíos se traducen a IN.
func (r *CatalogRepo) ProductsByFilter(ctx context.Context, f entity.ProductFilter) ([]entity.ProductRecord, error) {
	builder := psql.Select(
		"id", "section_id", "name",
		"COALESCE(detail_picture, 0)", "COALESCE(preview_picture, 0)", "COALESCE(gallery, '{}')",
		"sort", "show_counter", "detail_url",
		"vid", "type_product", "subtype_product", "article", "size_range",
		"brand", "model", "upper_material", "lining_material", "material_sole",
		"color", "country", "heel_height", "rhode_product",
	).
		From("catalog_elements").
		Where("iblock_id = ?", r.catalogID).
		Where("active = true")

	builder = whereIn(builder, "section_id", f.SectionIDs)
	builder = whereIn(builder, "subtype_product", f.SubtypeProduct)
	builder = whereIn(builder, "collection", f.Collection)
	builder = whereIn(builder, "upper_material", f.UpperMaterial)
	builder = whereIn(builder, "lining_material", f.LiningMaterial)
	builder = whereIn(builder, "rhode_product", f.RhodeProduct)
	builder = whereIn(builder, "season", f.Season)
	builder = whereIn(builder, "country", f.Country)
	builder = whereIn(builder, "brand", f.Brand)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build products query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var records []entity.ProductRecord
	for rows.Next() {
		var rec entity.ProductRecord
		if err := rows.Scan(
			&rec.ID, &rec.SectionID, &rec.Name,
			&rec.DetailImageID, &rec.PreviewImageID, &rec.GalleryIDs,
			&rec.Sort, &rec.ShowCounter, &rec.DetailURL,
			&rec.Vid, &rec.TypeProduct, &rec.SubtypeProduct, &rec.Article, &rec.SizeRange,
			&rec.Attributes.Brand, &rec.Attributes.Model, &rec.Attributes.UpperMaterial,
			&rec.Attributes.LiningMaterial, &rec.Attributes.MaterialSole,
			&rec.Attributes.Color, &rec.Attributes.Country, &rec.Attributes.HeelHeight,
			&rec.Attributes.RhodeProduct,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		rec.Attributes.TypeProduct = rec.TypeProduct
		records = append(records, rec)
	}
	return records, rows.Err()
}

// OffersByFilter ofertas activas del bloque de ofertas que cumplen el
// predicado, en orden ascendente de sort.
func (r *CatalogRepo) OffersByFilter(ctx context.Context, f entity.OfferFilter) ([]entity.Offer, error) {
	builder := psql.Select("id", "product_id", "size").
		From("catalog_offers").
		Where("iblock_id = ?", r.offersID).
		Where("active = true").
		OrderBy("sort ASC")

	builder = whereIn(builder, "size", f.Sizes)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build offers query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	var offers []entity.Offer
	for rows.Next() {
		var o entity.Offer
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Size); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}
