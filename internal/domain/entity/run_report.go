package entity

import "time"

// RunStatus estado final de una ejecución de exportación.
type RunStatus string

const (
	RunSuccess RunStatus = "success"
	RunFailed  RunStatus = "failed"
	// RunSkipped había otra exportación en curso; no es un fallo.
	RunSkipped RunStatus = "skipped"
)

// RunReport resultado estructurado de una ejecución. Una ejecución exitosa
// nunca lleva entradas en Errors.
type RunReport struct {
	RunID    string
	Status   RunStatus
	Duration time.Duration
	Items    int
	Errors   []string
}
