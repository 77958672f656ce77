package sync

import (
	"bytes"
	"errors"

	"testset-sync/core/logger"
	"testset-sync/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FilenameHeader names the uploaded result file.
const FilenameHeader = "X-Filename"

// Handler handles HTTP requests for reconciliation runs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/", h.HandleSync)
	group.Post("/upload", h.HandleUpload)
	group.Get("/testsets", h.HandleTestSets)
}

// HandleSync runs a reconciliation pass.
// @Summary Run Reconciliation
// @Description Runs one reconciliation pass over the configured result files. Body fields override configuration.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body Request false "Run overrides"
// @Success 200 {object} reconcile.Report "Run report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "A run is already in progress"
// @Failure 502 {object} map[string]string "Test repository unavailable"
// @Router /sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
		}
	}

	l.Info("Triggering reconciliation", zap.String("file", req.File), zap.String("path", req.Path), zap.Bool("dry_run", req.DryRun))
	report, err := h.service.Sync(c.Context(), req)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandleUpload applies an uploaded result file.
// @Summary Upload Result File
// @Description Parses the request body as a result file and applies it to the matching test sets.
// @Tags sync
// @Accept plain
// @Produce json
// @Param test_set_name query string false "Test-set name"
// @Param X-Filename header string false "File name used to derive the test-set name"
// @Param dry_run query boolean false "Match without applying"
// @Success 200 {object} reconcile.Report "Run report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Test repository unavailable"
// @Router /sync/upload [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name := c.Query("test_set_name")
	filename := c.Get(FilenameHeader)
	dryRun := c.Query("dry_run") == "true"

	report, err := h.service.Upload(c.Context(), name, filename, bytes.NewReader(c.Body()), dryRun)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandleTestSets lists matching test sets.
// @Summary Find Test Sets
// @Description Lists the test sets a result file with the given name would be applied to.
// @Tags sync
// @Produce json
// @Param path query string false "Test-set folder"
// @Param name query string true "Test-set name"
// @Success 200 {array} testrepo.TestSet "Matching test sets"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Test repository unavailable"
// @Router /sync/testsets [get]
func (h *Handler) HandleTestSets(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	sets, err := h.service.TestSets(c.Context(), c.Query("path"), name)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(sets)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrBusy):
		status = fiber.StatusConflict
	case errors.Is(err, ErrMissingName), errors.Is(err, ErrPathNotAllowed):
		status = fiber.StatusBadRequest
	case errors.Is(err, reconcile.ErrConnect):
		status = fiber.StatusBadGateway
	}
	l.Error("Sync request failed", zap.Int("status", status), zap.Error(err))
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
