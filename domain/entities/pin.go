package entities

import (
	"fmt"
	"time"
)

// PinRequest describes a single pin to publish. ImageRef may be an absolute
// local path or a remote URL; an empty ImageRef publishes the pin without an
// image.
type PinRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	ImageRef      string     `json:"imageRef,omitempty"`
	Board         string     `json:"board"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty"`
}

// Validate checks the request invariants. Title is the only required field.
func (p PinRequest) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("pin title is required")
	}
	return nil
}
