package feed_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/feed-export/internal/application/feed"
	"github.com/jhoicas/feed-export/internal/domain"
	"github.com/jhoicas/feed-export/internal/domain/entity"
)

// Dobles en memoria de los puertos del pipeline, al estilo de los tests del
// resto del proyecto: sin base de datos ni sistema de archivos.

type fakeCatalog struct {
	nodes    []entity.CategoryNode
	products []entity.ProductRecord
	offers   []entity.Offer

	lastProductFilter entity.ProductFilter
	lastOfferFilter   entity.OfferFilter
}

func (c *fakeCatalog) SectionByID(_ context.Context, id int64) (*entity.CategoryNode, error) {
	for _, n := range c.nodes {
		if n.ID == id {
			node := n
			return &node, nil
		}
	}
	return nil, nil
}

func (c *fakeCatalog) SectionsInRange(_ context.Context, left, right int) ([]int64, error) {
	var inside []entity.CategoryNode
	for _, n := range c.nodes {
		if n.LeftBound > left && n.RightBound < right {
			inside = append(inside, n)
		}
	}
	sort.Slice(inside, func(i, j int) bool { return inside[i].Sort < inside[j].Sort })
	ids := make([]int64, 0, len(inside))
	for _, n := range inside {
		ids = append(ids, n.ID)
	}
	return ids, nil
}

func (c *fakeCatalog) ProductsByFilter(_ context.Context, f entity.ProductFilter) ([]entity.ProductRecord, error) {
	c.lastProductFilter = f
	var out []entity.ProductRecord
	for _, rec := range c.products {
		if len(f.SectionIDs) > 0 && !containsID(f.SectionIDs, rec.SectionID) {
			continue
		}
		if len(f.Brand) > 0 && !containsStr(f.Brand, rec.Attributes.Brand) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *fakeCatalog) OffersByFilter(_ context.Context, f entity.OfferFilter) ([]entity.Offer, error) {
	c.lastOfferFilter = f
	var out []entity.Offer
	for _, o := range c.offers {
		if len(f.Sizes) > 0 && !containsStr(f.Sizes, o.Size) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeFiles struct {
	files map[int64]string
	calls int
}

func (f *fakeFiles) FilesByIDs(_ context.Context, ids []int64) (map[int64]string, error) {
	f.calls++
	out := make(map[int64]string)
	for _, id := range ids {
		if src, ok := f.files[id]; ok {
			out[id] = src
		}
	}
	return out, nil
}

type fakeImages struct {
	invalid map[string]bool
}

func (v *fakeImages) IsImage(path string) bool {
	return !v.invalid[path]
}

type fakeTitles struct {
	tables map[string]map[string]string
	calls  []string
}

func (t *fakeTitles) TitlesByCodes(_ context.Context, entityName string, codes []string) (map[string]string, error) {
	t.calls = append(t.calls, entityName)
	out := make(map[string]string)
	for _, code := range codes {
		if title, ok := t.tables[entityName][code]; ok {
			out[code] = title
		}
	}
	return out, nil
}

type fakeLocations struct {
	codes map[string]string // "nombre|idioma" -> código
}

func (l *fakeLocations) CodeByName(_ context.Context, name, language string) (string, error) {
	return l.codes[name+"|"+language], nil
}

type fakeStock struct {
	rests  map[int64]bool
	prices map[int64]entity.PriceInfo

	lastRests  feed.RestsQuery
	lastPrices feed.PricesQuery
}

func (s *fakeStock) Rests(_ context.Context, q feed.RestsQuery) (map[int64]bool, error) {
	s.lastRests = q
	out := make(map[int64]bool)
	for _, id := range q.OfferIDs {
		if s.rests[id] {
			out[id] = true
		}
	}
	return out, nil
}

func (s *fakeStock) Prices(_ context.Context, q feed.PricesQuery) (map[int64]entity.PriceInfo, error) {
	s.lastPrices = q
	out := make(map[int64]entity.PriceInfo)
	for _, id := range q.ProductIDs {
		if info, ok := s.prices[id]; ok {
			out[id] = info
		}
	}
	return out, nil
}

type fakeSettings struct {
	byCode map[string]*entity.FeedSettings
}

func (s *fakeSettings) GetByCode(_ context.Context, code string) (*entity.FeedSettings, error) {
	return s.byCode[code], nil
}

type fakeRenderer struct {
	out     *feed.ExportOutput
	err     error
	renders int
}

func (r *fakeRenderer) Render(_ context.Context, out feed.ExportOutput) error {
	if r.err != nil {
		return r.err
	}
	r.renders++
	r.out = &out
	return nil
}

type fakeLock struct {
	held       bool
	releaseErr error
	releases   int
}

func (l *fakeLock) Acquire(time.Time) error {
	if l.held {
		return domain.ErrAlreadyRunning
	}
	l.held = true
	return nil
}

func (l *fakeLock) Release(time.Time) (time.Duration, error) {
	l.releases++
	if l.releaseErr != nil {
		return 0, l.releaseErr
	}
	l.held = false
	return 42 * time.Millisecond, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsStr(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}
