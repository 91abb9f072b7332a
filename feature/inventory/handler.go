package inventory

import (
	stdsync "sync"

	"laim/core/logger"
	inventorysync "laim/feature/inventory/sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventory synchronization.
type Handler struct {
	service *inventorysync.Service
	logger  *zap.Logger

	// Guards against overlapping manual sync triggers. Scheduled runs are
	// serialized separately by the scheduler itself.
	running stdsync.Mutex
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *inventorysync.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Post("/:source", h.HandleTriggerSync)
	group.Get("/logs", h.HandleGetLogs)
}

// HandleTriggerSync runs a sync against the named source ("all", "librenms"
// or "netdisco") and returns the run's ledger entry plus its summary.
func (h *Handler) HandleTriggerSync(c *fiber.Ctx) error {
	source := c.Params("source")
	l := logger.WithRayID(h.logger, c)

	switch source {
	case inventorysync.SourceAll, inventorysync.SourceLibreNMS, inventorysync.SourceNetdisco:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown sync source: " + source,
		})
	}

	if !h.running.TryLock() {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "a sync run is already in progress",
		})
	}
	defer h.running.Unlock()

	l.Info("Manual sync triggered", zap.String("source", source))

	syncLog, result, err := h.service.SyncSource(c.Context(), source)
	if err != nil {
		l.Error("Sync run could not be recorded", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"log":    syncLog,
		"result": result,
	})
}

// HandleGetLogs returns the most recent sync ledger entries, newest first.
func (h *Handler) HandleGetLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	l := logger.WithRayID(h.logger, c)

	logs, err := h.service.RecentLogs(c.Context(), limit)
	if err != nil {
		l.Error("Failed to read sync logs", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"logs": logs,
	})
}
