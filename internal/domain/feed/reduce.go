// Package feed: transformaciones puras sobre los identificadores del feed.
package feed

import "regexp"

// zeroRun corrida de ceros que queda entre un no-dígito y un dígito: es el
// relleno que introduce la concatenación ingenua de códigos (ej. "OB" + "001").
var zeroRun = regexp.MustCompile(`([^0-9])0+([0-9])`)

// ReduceCategoryID elimina los ceros de relleno de un id compuesto de
// categoría para respetar el límite de 20 caracteres del esquema externo.
// Nunca toca el primer dígito de la frontera ni ceros entre dígitos.
// Determinista e idempotente: reduce(reduce(x)) == reduce(x).
func ReduceCategoryID(id string) string {
	for {
		reduced := zeroRun.ReplaceAllString(id, "$1$2")
		if reduced == id {
			return id
		}
		id = reduced
	}
}
