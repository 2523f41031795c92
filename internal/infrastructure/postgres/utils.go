package postgres

import "github.com/Masterminds/squirrel"

// whereIn añade un predicado IN solo si hay valores: una lista vacía no
// restringe la consulta.
func whereIn[T any](b squirrel.SelectBuilder, column string, values []T) squirrel.SelectBuilder {
	if len(values) == 0 {
		return b
	}
	return b.Where(squirrel.Eq{column: values})
}
