package entity

// StockMode política de disponibilidad: qué canal de entrega cuenta como "en stock".
type StockMode int

const (
	// StockModeUndefined ninguna combinación válida de flags; las consultas de stock no se restringen.
	StockModeUndefined StockMode = 0
	// StockModeDelivery solo cuentan los almacenes con entrega a domicilio.
	StockModeDelivery StockMode = 1
	// StockModeReservation solo cuentan los almacenes con reserva en tienda.
	StockModeReservation StockMode = 2
)

// FeedSettings configuración de un feed: se carga una vez por ejecución y es inmutable después.
type FeedSettings struct {
	ID   int64
	Code string
	Name string

	// Location nombre legible de la localidad para stock y precios (vacío = sin restricción).
	Location string

	// Entradas crudas del filtro.
	SectionIDs     []int64
	PriceFrom      *int64
	PriceTo        *int64
	PriceSegmentID string
	OfferSizes     string // lista delimitada de tallas permitidas
	PercentFrom    *int
	PercentTo      *int

	// Predicados por atributo del producto.
	SubtypeProduct []string
	Collection     []string
	UpperMaterial  []string
	LiningMaterial []string
	RhodeProduct   []string
	Season         []string
	Country        []string
	Brand          []string

	// Stores override explícito de almacén; si está vacío se usa el modo derivado de los flags.
	Stores      string
	Reservation bool
	Delivery    bool
}

// DeriveStockMode deriva el modo de stock de los flags de la configuración:
// delivery aporta el bit 1 y reservation el bit 2. Solo las sumas exactas 1 y 2
// corresponden a un modo conocido; cualquier otra combinación (ninguno o ambos)
// queda en StockModeUndefined y la consulta de disponibilidad no se restringe.
func (s FeedSettings) DeriveStockMode() StockMode {
	mode := 0
	if s.Delivery {
		mode += 1
	}
	if s.Reservation {
		mode += 2
	}
	switch mode {
	case 1:
		return StockModeDelivery
	case 2:
		return StockModeReservation
	default:
		return StockModeUndefined
	}
}
