// Package filesystem contiene los adaptadores sobre el sistema de archivos:
// el lock de ejecución única y la verificación de imágenes.
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
	"github.com/jhoicas/feed-export/internal/domain"
)

var _ appfeed.RunLock = (*RunLock)(nil)

// RunLock lock consultivo basado en un archivo marcador que guarda la hora de
// inicio. No es un flock del sistema operativo: un marcador huérfano tras un
// crash requiere limpieza manual. Se prefiere omitir ejecuciones a correr dos
// exportaciones sobre el mismo archivo.
type RunLock struct {
	path string
}

// NewRunLock construye el lock sobre la ruta del marcador.
func NewRunLock(path string) *RunLock {
	return &RunLock{path: path}
}

// Acquire crea el marcador con la hora de inicio; si ya existe devuelve
// ErrAlreadyRunning. La creación usa O_EXCL para que dos procesos no puedan
// ganar la carrera a la vez.
func (l *RunLock) Acquire(now time.Time) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("crear directorio del marcador: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return domain.ErrAlreadyRunning
		}
		return fmt.Errorf("crear marcador: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(now.Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("escribir marcador: %w", err)
	}
	return nil
}

// Release elimina el marcador y devuelve la duración transcurrida desde la
// hora registrada. Si el marcador persiste tras el borrado devuelve
// ErrLockNotReleased: un lock atascado compromete las ejecuciones futuras.
func (l *RunLock) Release(now time.Time) (time.Duration, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Ya no hay marcador: nada que liberar.
			return 0, nil
		}
		return 0, fmt.Errorf("leer marcador: %w", err)
	}

	var duration time.Duration
	if started, perr := time.Parse(time.RFC3339Nano, strings.TrimSpace(string(raw))); perr == nil {
		duration = now.Sub(started)
	}

	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return duration, domain.ErrLockNotReleased
	}
	if _, err := os.Stat(l.path); err == nil {
		return duration, domain.ErrLockNotReleased
	}
	return duration, nil
}
