package xmlfeed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/feed-export/internal/application/feed"
	"github.com/jhoicas/feed-export/internal/domain/entity"
	"github.com/jhoicas/feed-export/internal/infrastructure/xmlfeed"
)

func sampleOutput() feed.ExportOutput {
	old := decimal.NewFromInt(2490)
	return feed.ExportOutput{
		Settings: entity.FeedSettings{Code: "market", Name: "Catálogo principal"},
		Categories: []entity.CategoryEntry{
			{ID: "OB", Title: "Обувь"},
			{ID: "OBTF", ParentID: "OB", Title: "Туфли"},
		},
		Items: map[int64]entity.FeedItem{
			7: {
				Product: entity.Product{
					ID:          7,
					Name:        "Туфли кожаные",
					DetailImage: "/upload/a/detail.jpg",
					Gallery:     []string{"/upload/a/g1.jpg"},
					DetailURL:   "/catalog/7/",
					Vid:         "OB",
					TypeProduct: "TF",
					Article:     "ART-7",
					Attributes:  entity.ProductAttributes{Brand: "Marco", Color: "чёрный"},
				},
				Offers:   map[int64]string{71: "38", 72: "39"},
				Sizes:    []string{"38", "39"},
				Price:    decimal.NewFromInt(1990),
				OldPrice: &old,
			},
		},
	}
}

func TestRender_EstructuraYML(t *testing.T) {
	dir := t.TempDir()
	r := xmlfeed.NewRenderer(dir)

	require.NoError(t, r.Render(context.Background(), sampleOutput()))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(filepath.Join(dir, "market.xml")))

	root := doc.SelectElement("yml_catalog")
	require.NotNil(t, root)
	assert.NotEmpty(t, root.SelectAttrValue("date", ""))

	shop := root.SelectElement("shop")
	require.NotNil(t, shop)
	assert.Equal(t, "Catálogo principal", shop.SelectElement("name").Text())

	cats := shop.SelectElement("categories").SelectElements("category")
	require.Len(t, cats, 2)
	assert.Equal(t, "OB", cats[0].SelectAttrValue("id", ""))
	assert.Empty(t, cats[0].SelectAttrValue("parentId", ""))
	assert.Equal(t, "OB", cats[1].SelectAttrValue("parentId", ""))

	offers := shop.SelectElement("offers").SelectElements("offer")
	require.Len(t, offers, 2, "una entrada por oferta disponible")

	first := offers[0]
	assert.Equal(t, "71", first.SelectAttrValue("id", ""))
	assert.Equal(t, "true", first.SelectAttrValue("available", ""))
	assert.Equal(t, "1990", first.SelectElement("price").Text())
	assert.Equal(t, "2490", first.SelectElement("oldprice").Text())
	assert.Equal(t, "OBTF", first.SelectElement("categoryId").Text())
	assert.Equal(t, "Marco", first.SelectElement("vendor").Text())
	assert.Equal(t, "ART-7", first.SelectElement("vendorCode").Text())
	assert.Len(t, first.SelectElements("picture"), 2)

	var size string
	for _, param := range first.SelectElements("param") {
		if param.SelectAttrValue("name", "") == "Размер" {
			size = param.Text()
		}
	}
	assert.Equal(t, "38", size)
	assert.Equal(t, "39", offers[1].SelectElements("param")[0].Text())
}

func TestRender_ReemplazaSinTemporales(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "market.xml")
	require.NoError(t, os.WriteFile(target, []byte("<viejo/>"), 0o644))

	r := xmlfeed.NewRenderer(dir)
	require.NoError(t, r.Render(context.Background(), sampleOutput()))

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "<viejo/>")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "ningún temporal debe sobrevivir a la publicación")
}

// TestRender_FalloDePublicacion si el rename final falla, lo que hubiera en
// el destino queda intacto y el temporal no sobrevive.
func TestRender_FalloDePublicacion(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "market.xml")
	require.NoError(t, os.MkdirAll(target, 0o755))
	inner := filepath.Join(target, "previo.xml")
	require.NoError(t, os.WriteFile(inner, []byte("<previo/>"), 0o644))

	r := xmlfeed.NewRenderer(dir)
	err := r.Render(context.Background(), sampleOutput())
	require.Error(t, err)

	raw, rerr := os.ReadFile(inner)
	require.NoError(t, rerr)
	assert.Equal(t, "<previo/>", string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "solo el destino original; el temporal se limpia")
}

func TestRender_DirectorioInvalido(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "salida")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	r := xmlfeed.NewRenderer(blocker)
	err := r.Render(context.Background(), sampleOutput())
	assert.Error(t, err)
}
