// Package http expone el disparo bajo demanda de la exportación.
package http

import (
	"github.com/gofiber/fiber/v2"
	appfeed "github.com/jhoicas/feed-export/internal/application/feed"
	"github.com/jhoicas/feed-export/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Exporter *appfeed.Exporter
}

// Router registra las rutas del servicio.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	handler := NewFeedHandler(deps.Exporter)
	app.Post("/feeds/:code/export", handler.Export)
}

// FeedHandler maneja el disparo manual de exportaciones.
type FeedHandler struct {
	exporter *appfeed.Exporter
}

// NewFeedHandler construye el handler inyectando el exportador.
func NewFeedHandler(exporter *appfeed.Exporter) *FeedHandler {
	return &FeedHandler{exporter: exporter}
}

// runResponse respuesta del disparo de una exportación.
type runResponse struct {
	RunID           string   `json:"run_id"`
	Status          string   `json:"status"`
	DurationSeconds float64  `json:"duration_seconds"`
	Items           int      `json:"items"`
	Errors          []string `json:"errors,omitempty"`
}

// Export ejecuta la exportación del feed indicado y devuelve el reporte.
// Una ejecución omitida por lock no es un error: responde 200 con status
// skipped para que el cliente pueda reintentar más tarde.
func (h *FeedHandler) Export(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code es requerido"})
	}

	report := h.exporter.Run(c.Context(), code)

	status := fiber.StatusOK
	if report.Status == entity.RunFailed {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(runResponse{
		RunID:           report.RunID,
		Status:          string(report.Status),
		DurationSeconds: report.Duration.Seconds(),
		Items:           report.Items,
		Errors:          report.Errors,
	})
}
