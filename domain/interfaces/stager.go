package interfaces

import (
	"context"

	"pinpilot/domain/entities"
)

// MediaStager resolves a pin's image reference into a local file ready for
// upload. Stage returns (nil, nil) when there is no image to stage; errors
// mean the publish should proceed without an image, never abort.
type MediaStager interface {
	Stage(ctx context.Context, imageRef string) (*entities.StagedMedia, error)

	// Release deletes any temporary file behind the staged media. Safe to
	// call more than once and with nil.
	Release(media *entities.StagedMedia) error
}
