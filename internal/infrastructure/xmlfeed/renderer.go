// Package xmlfeed serializa el resultado de la exportación al esquema XML del
// feed y lo persiste con reemplazo atómico.
package xmlfeed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/beevik/etree"
	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
	"github.com/jhoicas/feed-export/internal/domain/entity"
	feedid "github.com/jhoicas/feed-export/internal/domain/feed"
)

var _ appfeed.Renderer = (*Renderer)(nil)

// Renderer escribe el catálogo en formato YML (yml_catalog) bajo outputDir,
// un archivo por código de feed. El documento se arma completo en memoria y
// se publica con os.Rename: si algo falla, el archivo anterior queda intacto.
type Renderer struct {
	outputDir string
	now       func() time.Time
}

// NewRenderer construye el renderizador sobre el directorio de salida.
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir, now: time.Now}
}

// Render serializa el conjunto resuelto y lo persiste como <code>.xml.
func (r *Renderer) Render(ctx context.Context, out appfeed.ExportOutput) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("yml_catalog")
	root.CreateAttr("date", r.now().Format("2006-01-02 15:04"))

	shop := root.CreateElement("shop")
	shop.CreateElement("name").SetText(out.Settings.Name)

	categories := shop.CreateElement("categories")
	for _, entry := range out.Categories {
		cat := categories.CreateElement("category")
		cat.CreateAttr("id", entry.ID)
		if entry.ParentID != "" {
			cat.CreateAttr("parentId", entry.ParentID)
		}
		cat.SetText(entry.Title)
	}

	offers := shop.CreateElement("offers")
	for _, productID := range sortedItemIDs(out.Items) {
		item := out.Items[productID]
		for _, offerID := range sortedOfferIDs(item.Offers) {
			writeOffer(offers, offerID, item.Offers[offerID], item)
		}
	}

	raw, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializar feed: %w", err)
	}
	return r.publish(out.Settings.Code, raw)
}

// writeOffer emite un elemento offer por variante disponible.
func writeOffer(offers *etree.Element, offerID int64, size string, item entity.FeedItem) {
	p := item.Product

	offer := offers.CreateElement("offer")
	offer.CreateAttr("id", strconv.FormatInt(offerID, 10))
	offer.CreateAttr("available", "true")

	offer.CreateElement("url").SetText(p.DetailURL)
	offer.CreateElement("price").SetText(item.Price.String())
	if item.OldPrice != nil {
		offer.CreateElement("oldprice").SetText(item.OldPrice.String())
	}
	offer.CreateElement("categoryId").SetText(feedid.ReduceCategoryID(p.Vid + p.TypeProduct + p.SubtypeProduct))

	offer.CreateElement("picture").SetText(p.DetailImage)
	for _, src := range p.Gallery {
		offer.CreateElement("picture").SetText(src)
	}

	offer.CreateElement("name").SetText(p.Name)
	if p.Attributes.Brand != "" {
		offer.CreateElement("vendor").SetText(p.Attributes.Brand)
	}
	if p.Article != "" {
		offer.CreateElement("vendorCode").SetText(p.Article)
	}

	writeParam(offer, "Размер", size)
	writeParam(offer, "Цвет", p.Attributes.Color)
	writeParam(offer, "Материал верха", p.Attributes.UpperMaterial)
	writeParam(offer, "Материал подкладки", p.Attributes.LiningMaterial)
	writeParam(offer, "Материал подошвы", p.Attributes.MaterialSole)
	writeParam(offer, "Страна", p.Attributes.Country)
	writeParam(offer, "Высота каблука", p.Attributes.HeelHeight)
}

func writeParam(offer *etree.Element, name, value string) {
	if value == "" {
		return
	}
	param := offer.CreateElement("param")
	param.CreateAttr("name", name)
	param.SetText(value)
}

// publish escribe el contenido en un temporal del mismo directorio y lo
// renombra sobre el destino: el rename dentro del mismo filesystem es atómico.
func (r *Renderer) publish(code string, raw []byte) error {
	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return fmt.Errorf("crear directorio de salida: %w", err)
	}

	tmp, err := os.CreateTemp(r.outputDir, code+"-*.xml.tmp")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir temporal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}

	target := filepath.Join(r.outputDir, code+".xml")
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("publicar feed: %w", err)
	}
	return nil
}

func sortedItemIDs(items map[int64]entity.FeedItem) []int64 {
	ids := make([]int64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedOfferIDs(offers map[int64]string) []int64 {
	ids := make([]int64, 0, len(offers))
	for id := range offers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
