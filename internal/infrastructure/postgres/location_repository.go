package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
)

var _ appfeed.LocationStore = (*LocationRepo)(nil)

// LocationRepo implementación del puerto LocationStore sobre PostgreSQL.
// Los nombres de localidad viven en una tabla aparte por idioma.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de localidades.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// CodeByName resuelve el nombre legible de una localidad a su código en el
// idioma dado. Devuelve cadena vacía si el nombre no existe en ese idioma.
func (r *LocationRepo) CodeByName(ctx context.Context, name, language string) (string, error) {
	query := `
		SELECT l.code
		FROM locations l
		JOIN location_names n ON n.location_id = l.id
		WHERE n.name = $1 AND n.language = $2`
	var code string
	err := r.q.QueryRow(ctx, query, name, language).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get location code: %w", err)
	}
	return code, nil
}
