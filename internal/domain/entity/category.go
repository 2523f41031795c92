package entity

// CategoryNode nodo del árbol de secciones del catálogo en codificación
// nested-interval (modified preorder): los descendientes de un nodo son
// exactamente los nodos cuyo intervalo cae estrictamente dentro del suyo.
type CategoryNode struct {
	ID         int64
	LeftBound  int
	RightBound int
	Sort       int
}

// CategoryEntry entrada del árbol plano de tres niveles del feed
// (Vid → Typeproduct → Subtypeproduct).
type CategoryEntry struct {
	ID       string
	ParentID string // vacío en las raíces
	Title    string
}
