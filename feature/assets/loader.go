package assets

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
	enabled bool
}

// NewFeature creates a new Assets feature. It is disabled when no storage client is configured.
func NewFeature(service *Service) *Feature {
	return &Feature{
		handler: NewHandler(service),
		enabled: service != nil && service.client != nil,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "assets"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
