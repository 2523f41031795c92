package entity

// Offer variante comprable de un producto (una talla). Siempre referencia
// exactamente un producto padre.
type Offer struct {
	ID        int64
	ProductID int64
	Size      string
}
