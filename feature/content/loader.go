package content

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature registers the content HTTP surface with the loader.
type Feature struct {
	store   *Store
	handler *Handler
}

// NewFeature creates a new content feature.
func NewFeature(store *Store, logger *zap.Logger) *Feature {
	return &Feature{store: store, handler: NewHandler(store, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "content"
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
