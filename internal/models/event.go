package models

import (
	"github.com/google/uuid"
)

// EventAction describes what happened to a resource.
type EventAction string

const (
	EventCreated  EventAction = "created"
	EventUpdated  EventAction = "updated"
	EventDeleted  EventAction = "deleted"
	EventImported EventAction = "imported"
	EventSettled  EventAction = "settled"
)

// Event is one entry of the audit trail.
//
// Events are written asynchronously by the events worker, the API only
// reads them. Losing events under load is acceptable, blocking requests
// is not.
type Event struct {
	DefaultModel
	Action     EventAction
	Resource   string
	ResourceID uuid.UUID
	Note       string
}

func (e Event) Self() string {
	return "Event"
}
