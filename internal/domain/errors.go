package domain

import "errors"

// Errores del dominio del feed (sin dependencias externas).
var (
	// ErrSettingsNotFound la configuración del feed no existe o está inactiva; aborta antes de resolver nada.
	ErrSettingsNotFound = errors.New("configuración del feed no encontrada o inactiva")
	// ErrNoProducts el filtro compilado no dejó ningún producto; un feed vacío no es una salida válida.
	ErrNoProducts = errors.New("ningún producto coincide con el filtro del feed")
	// ErrLocationNotFound la localidad configurada no se pudo resolver a un código.
	ErrLocationNotFound = errors.New("localidad configurada no encontrada")
	// ErrAlreadyRunning ya hay una exportación en curso; el caller debe omitir en silencio.
	ErrAlreadyRunning = errors.New("ya hay una exportación en curso")
	// ErrLockNotReleased el marcador de ejecución sigue existiendo tras intentar borrarlo.
	ErrLockNotReleased = errors.New("no se pudo liberar el marcador de ejecución")
)
