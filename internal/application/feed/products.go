package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/feed-export/internal/domain"
	"github.com/jhoicas/feed-export/internal/domain/entity"
	feedid "github.com/jhoicas/feed-export/internal/domain/feed"
)

// Nombres de las tablas de referencia de la estructura del catálogo.
const (
	titleEntityVid            = "Vid"
	titleEntityTypeproduct    = "Typeproduct"
	titleEntitySubtypeproduct = "Subtypeproduct"
)

// ProductResolver carga los productos que pasan el filtro, resuelve sus
// imágenes y construye la taxonomía de tres niveles del feed.
type ProductResolver struct {
	catalog CatalogStore
	files   FileStore
	images  ImageVerifier
	titles  TitleStore
}

// NewProductResolver construye el resolver de productos.
func NewProductResolver(catalog CatalogStore, files FileStore, images ImageVerifier, titles TitleStore) *ProductResolver {
	return &ProductResolver{catalog: catalog, files: files, images: images, titles: titles}
}

// Resolve devuelve el mapa de productos exportables (imagen de detalle válida
// obligatoria) y las categorías derivadas de los valores vid/typeproduct/
// subtypeproduct observados. Cero productos supervivientes es fatal: un feed
// vacío no es una salida válida.
func (r *ProductResolver) Resolve(ctx context.Context, f entity.ProductFilter) (map[int64]entity.Product, []entity.CategoryEntry, error) {
	records, err := r.catalog.ProductsByFilter(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("cargar productos: %w", err)
	}

	// Un solo viaje al almacén de archivos para todas las imágenes referenciadas.
	var imageIDs []int64
	vidTypes := make(map[string]map[string]struct{})
	typeSubtypes := make(map[string]map[string]struct{})
	for _, rec := range records {
		if rec.DetailImageID != 0 {
			imageIDs = append(imageIDs, rec.DetailImageID)
		}
		if rec.PreviewImageID != 0 {
			imageIDs = append(imageIDs, rec.PreviewImageID)
		}
		imageIDs = append(imageIDs, rec.GalleryIDs...)

		if rec.Vid != "" && rec.TypeProduct != "" {
			addPair(vidTypes, rec.Vid, rec.TypeProduct)
		}
		if rec.TypeProduct != "" && rec.SubtypeProduct != "" {
			addPair(typeSubtypes, rec.TypeProduct, rec.SubtypeProduct)
		}
	}

	images, err := r.resolveImages(ctx, imageIDs)
	if err != nil {
		return nil, nil, err
	}

	products := make(map[int64]entity.Product, len(records))
	for _, rec := range records {
		detail, ok := images[rec.DetailImageID]
		if !ok {
			// La imagen de detalle es obligatoria; sin ella el producto no se exporta.
			continue
		}
		p := entity.Product{
			ID:             rec.ID,
			Name:           rec.Name,
			DetailImage:    detail,
			Attributes:     rec.Attributes,
			Sort:           rec.Sort,
			ShowCounter:    rec.ShowCounter,
			DetailURL:      rec.DetailURL,
			Vid:            rec.Vid,
			TypeProduct:    rec.TypeProduct,
			SubtypeProduct: rec.SubtypeProduct,
			Article:        rec.Article,
			SizeRange:      rec.SizeRange,
		}
		if preview, ok := images[rec.PreviewImageID]; ok {
			p.PreviewImage = preview
		}
		for _, gid := range rec.GalleryIDs {
			if src, ok := images[gid]; ok {
				p.Gallery = append(p.Gallery, src)
			}
		}
		products[rec.ID] = p
	}

	if len(products) == 0 {
		return nil, nil, domain.ErrNoProducts
	}

	categories, err := r.buildCategories(ctx, vidTypes, typeSubtypes)
	if err != nil {
		return nil, nil, err
	}

	return products, categories, nil
}

// resolveImages resuelve los ids a rutas públicas en un solo lote y descarta
// las rutas que no decodifican como imagen.
func (r *ProductResolver) resolveImages(ctx context.Context, ids []int64) (map[int64]string, error) {
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}
	files, err := r.files.FilesByIDs(ctx, dedupIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("resolver imágenes: %w", err)
	}
	valid := make(map[int64]string, len(files))
	for id, src := range files {
		if r.images.IsImage(src) {
			valid[id] = src
		}
	}
	return valid, nil
}

// buildCategories emite el árbol plano de tres niveles a partir de los pares
// de co-ocurrencia observados, con los títulos resueltos en tres lotes y los
// ids compuestos pasados por la reducción de ceros.
func (r *ProductResolver) buildCategories(ctx context.Context, vidTypes, typeSubtypes map[string]map[string]struct{}) ([]entity.CategoryEntry, error) {
	vidTitles, err := r.titles.TitlesByCodes(ctx, titleEntityVid, sortedKeys(vidTypes))
	if err != nil {
		return nil, fmt.Errorf("títulos de vid: %w", err)
	}

	typeCodes := make(map[string]struct{})
	for _, types := range vidTypes {
		for tp := range types {
			typeCodes[tp] = struct{}{}
		}
	}
	for tp := range typeSubtypes {
		typeCodes[tp] = struct{}{}
	}
	typeTitles, err := r.titles.TitlesByCodes(ctx, titleEntityTypeproduct, sortedSet(typeCodes))
	if err != nil {
		return nil, fmt.Errorf("títulos de typeproduct: %w", err)
	}

	subtypeCodes := make(map[string]struct{})
	for _, subtypes := range typeSubtypes {
		for st := range subtypes {
			subtypeCodes[st] = struct{}{}
		}
	}
	subtypeTitles, err := r.titles.TitlesByCodes(ctx, titleEntitySubtypeproduct, sortedSet(subtypeCodes))
	if err != nil {
		return nil, fmt.Errorf("títulos de subtypeproduct: %w", err)
	}

	var result []entity.CategoryEntry
	for _, vid := range sortedKeys(vidTypes) {
		result = append(result, entity.CategoryEntry{
			ID:    feedid.ReduceCategoryID(vid),
			Title: vidTitles[vid],
		})
		for _, tp := range sortedSet(vidTypes[vid]) {
			result = append(result, entity.CategoryEntry{
				ParentID: feedid.ReduceCategoryID(vid),
				ID:       feedid.ReduceCategoryID(vid + tp),
				Title:    typeTitles[tp],
			})
			for _, st := range sortedSet(typeSubtypes[tp]) {
				result = append(result, entity.CategoryEntry{
					ParentID: feedid.ReduceCategoryID(vid + tp),
					ID:       feedid.ReduceCategoryID(vid + tp + st),
					Title:    subtypeTitles[st],
				})
			}
		}
	}
	return result, nil
}

func addPair(m map[string]map[string]struct{}, k, v string) {
	if m[k] == nil {
		m[k] = make(map[string]struct{})
	}
	m[k][v] = struct{}{}
}

func dedupIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sortedKeys(m map[string]map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(s map[string]struct{}) []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
