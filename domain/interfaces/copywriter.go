package interfaces

import (
	"context"

	"pinpilot/domain/entities"
)

// Copywriter generates SEO pin copy from a product record.
type Copywriter interface {
	GeneratePinContent(ctx context.Context, product entities.Product) (entities.PinContent, error)
}
