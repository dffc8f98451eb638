package v1

import (
	"github.com/google/uuid"
	"github.com/splitpot/backend/internal/models"
)

// Event is one entry of the audit trail. Events are read only, they are
// written by the events worker when resources change.
type Event struct {
	models.DefaultModel
	Action     models.EventAction `json:"action" example:"created"`                                  // What happened
	Resource   string             `json:"resource" example:"Transaction"`                            // The type of the resource the event is about
	ResourceID uuid.UUID          `json:"resourceId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // ID of the resource the event is about
	Note       string             `json:"note" example:"Supermarket"`                                // Free form context, usually the resource name
}

func newEvent(model models.Event) Event {
	return Event{
		DefaultModel: model.DefaultModel,
		Action:       model.Action,
		Resource:     model.Resource,
		ResourceID:   model.ResourceID,
		Note:         model.Note,
	}
}

type EventListResponse struct {
	Data       []Event     `json:"data"`                                                          // List of Events
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type EventQueryFilter struct {
	Action   models.EventAction `form:"action"`                     // By action
	Resource string             `form:"resource"`                   // By resource type
	Offset   uint               `form:"offset" filterField:"false"` // The offset of the first Event returned. Defaults to 0.
	Limit    int                `form:"limit" filterField:"false"`  // Maximum number of Events to return. Defaults to 50.
}

func (f EventQueryFilter) model() (models.Event, error) {
	return models.Event{
		Action:   f.Action,
		Resource: f.Resource,
	}, nil
}
