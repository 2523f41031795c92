package entity

import "github.com/shopspring/decimal"

// PriceInfo respuesta del servicio de precios para un producto.
// Price nil significa "sin precio resuelto" (distinto de cero).
type PriceInfo struct {
	Price    *decimal.Decimal
	OldPrice *decimal.Decimal
	Percent  *int
	Segment  string
}

// FeedItem producto agregado con sus tallas en stock y precio resuelto.
// Sizes conserva duplicados: una entrada por oferta disponible.
type FeedItem struct {
	Product  Product
	Sizes    []string
	Offers   map[int64]string // id de oferta → talla
	Price    decimal.Decimal
	OldPrice *decimal.Decimal
	Percent  *int
	Segment  string
}
