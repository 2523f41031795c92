package entity

// ProductFilter predicado compilado sobre los elementos del catálogo.
// SectionIDs ya viene con los subárboles expandidos y deduplicados.
type ProductFilter struct {
	SectionIDs     []int64
	SubtypeProduct []string
	Collection     []string
	UpperMaterial  []string
	LiningMaterial []string
	RhodeProduct   []string
	Season         []string
	Country        []string
	Brand          []string
}

// OfferFilter predicado compilado sobre las ofertas.
type OfferFilter struct {
	Sizes []string
}

// FilterSpec filtro compilado e inmutable: única fuente de verdad para los
// resolvers. Los punteros nil significan "sin límite" (distinto de cero).
type FilterSpec struct {
	Product     ProductFilter
	Offer       OfferFilter
	PriceMin    *int64
	PriceMax    *int64
	Segment     string
	PercentFrom *int
	PercentTo   *int
}
