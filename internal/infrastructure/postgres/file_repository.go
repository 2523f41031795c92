package postgres

import (
	"context"
	"fmt"

	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
)

var _ appfeed.FileStore = (*FileRepo)(nil)

// FileRepo implementación del puerto FileStore sobre PostgreSQL. El almacén
// de archivos guarda subdirectorio y nombre; la ruta pública se compone aquí.
type FileRepo struct {
	q Querier
}

// NewFileRepository construye el adaptador del almacén de archivos.
func NewFileRepository(q Querier) *FileRepo {
	return &FileRepo{q: q}
}

// FilesByIDs resuelve ids de archivo a rutas públicas en un solo viaje.
// Los ids sin fila simplemente no aparecen en el mapa.
func (r *FileRepo) FilesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := psql.Select("id", "subdir", "file_name").
		From("files").
		Where("id = ANY(?)", ids).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build files query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id               int64
			subdir, fileName string
		)
		if err := rows.Scan(&id, &subdir, &fileName); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		out[id] = "/upload/" + subdir + "/" + fileName
	}
	return out, rows.Err()
}
