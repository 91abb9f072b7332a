package inventory

import (
	inventorysync "laim/feature/inventory/sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *inventorysync.Service
	handler *Handler
}

// NewFeature creates the inventory feature around an existing sync service.
func NewFeature(service *inventorysync.Service, logger *zap.Logger) *Feature {
	h := NewHandler(service, logger)
	return &Feature{service: service, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "inventory"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
