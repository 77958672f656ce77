package integrity

import (
	"errors"

	"testset-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck runs every check.
// @Summary Run All Integrity Checks
// @Description Checks the test-management schema and, when configured, the result bucket.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report := make(map[string]interface{})

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	missing, err := h.service.CheckStorage(c.Context())
	switch {
	case errors.Is(err, ErrStorageDisabled):
		report["storage"] = map[string]interface{}{"status": "disabled"}
	case err != nil:
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
	default:
		report["storage"] = map[string]interface{}{"status": "ok", "missing": missing}
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks the test-management schema.
// @Summary Check Schema
// @Description Checks if the test-management tables match the expected columns.
// @Tags integrity
// @Produce json
// @Success 200 {object} testrepo.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Schema mismatch detected")
	}
	return c.JSON(report)
}

// HandleStorageCheck checks and optionally fixes the result bucket folders.
// @Summary Check Storage
// @Description Checks the bucket and the result and archive folders. Optionally creates missing folders.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create missing folders"
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Failure 404 {object} map[string]string "Storage not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	missing, err := h.service.CheckStorage(c.Context())
	if errors.Is(err, ErrStorageDisabled) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(missing) > 0 && fix {
		l.Warn("Missing folders detected", zap.Strings("missing", missing))
		if err := h.service.FixStorage(c.Context(), missing); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to fix storage",
				"details": err.Error(),
				"missing": missing,
			})
		}
		return c.JSON(fiber.Map{
			"status": "fixed",
			"fixed":  missing,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}
