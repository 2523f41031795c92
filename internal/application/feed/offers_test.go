package feed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/feed-export/internal/application/feed"
	"github.com/jhoicas/feed-export/internal/domain/entity"
)

// TestOfferResolver_DescartaHuerfanas una oferta cuyo producto padre no está
// en el mapa resuelto se omite en silencio; todas las supervivientes cumplen
// offer.ProductID ∈ products.
func TestOfferResolver_DescartaHuerfanas(t *testing.T) {
	catalog := &fakeCatalog{offers: []entity.Offer{
		{ID: 10, ProductID: 1, Size: "38"},
		{ID: 11, ProductID: 2, Size: "39"}, // el producto 2 no sobrevivió
		{ID: 12, ProductID: 1, Size: "40"},
	}}
	products := map[int64]entity.Product{1: {ID: 1}}

	resolver := feed.NewOfferResolver(catalog)
	offers, order, err := resolver.Resolve(context.Background(), entity.OfferFilter{}, products)
	require.NoError(t, err)

	assert.Len(t, offers, 2)
	assert.Equal(t, []int64{10, 12}, order)
	for _, o := range offers {
		_, ok := products[o.ProductID]
		assert.True(t, ok, "la oferta %d referencia un producto inexistente", o.ID)
	}
}

func TestOfferResolver_FiltroDeTallas(t *testing.T) {
	catalog := &fakeCatalog{offers: []entity.Offer{
		{ID: 10, ProductID: 1, Size: "38"},
		{ID: 11, ProductID: 1, Size: "44"},
	}}
	products := map[int64]entity.Product{1: {ID: 1}}

	resolver := feed.NewOfferResolver(catalog)
	offers, _, err := resolver.Resolve(context.Background(), entity.OfferFilter{Sizes: []string{"38"}}, products)
	require.NoError(t, err)

	assert.Len(t, offers, 1)
	assert.Equal(t, "38", offers[10].Size)
	assert.Equal(t, []string{"38"}, catalog.lastOfferFilter.Sizes)
}
