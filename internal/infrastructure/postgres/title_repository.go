package postgres

import (
	"context"
	"fmt"

	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
)

var _ appfeed.TitleStore = (*TitleRepo)(nil)

// refTables tablas de referencia permitidas por nombre de entidad. El nombre
// nunca se interpola: fuera de esta lista la consulta no se ejecuta.
var refTables = map[string]string{
	"Vid":            "ref_vid",
	"Typeproduct":    "ref_typeproduct",
	"Subtypeproduct": "ref_subtypeproduct",
}

// TitleRepo implementación del puerto TitleStore sobre PostgreSQL. Cada nivel
// de la taxonomía tiene su propia tabla de referencia (code, title).
type TitleRepo struct {
	q Querier
}

// NewTitleRepository construye el adaptador de títulos de la taxonomía.
func NewTitleRepository(q Querier) *TitleRepo {
	return &TitleRepo{q: q}
}

// TitlesByCodes títulos legibles por código externo para una entidad de
// referencia. Una entidad desconocida o una lista vacía devuelven mapa vacío.
func (r *TitleRepo) TitlesByCodes(ctx context.Context, entityName string, codes []string) (map[string]string, error) {
	out := make(map[string]string, len(codes))
	table, ok := refTables[entityName]
	if !ok || len(codes) == 0 {
		return out, nil
	}

	query, args, err := psql.Select("code", "title").
		From(table).
		Where("code = ANY(?)", codes).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build titles query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list titles %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var code, title string
		if err := rows.Scan(&code, &title); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		out[code] = title
	}
	return out, rows.Err()
}
