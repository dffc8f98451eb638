package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/splitpot/backend/internal/httputil"
	"github.com/splitpot/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterEventRoutes registers the routes for events with
// the RouterGroup that is passed.
func RegisterEventRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsEventList)
	r.GET("", GetEvents)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Events
// @Success		204
// @Router			/v1/events [options]
func OptionsEventList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get events
// @Description	Returns the audit trail, newest events first
// @Tags			Events
// @Produce		json
// @Success		200	{object}	EventListResponse
// @Failure		500	{object}	EventListResponse
// @Router			/v1/events [get]
// @Param			action		query	string	false	"Filter by action"
// @Param			resource	query	string	false	"Filter by resource type"
// @Param			offset		query	uint	false	"The offset of the first Event returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Events to return. Defaults to 50."
func GetEvents(c *gin.Context) {
	var filter EventQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EventListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("datetime(created_at) DESC").
		Where(&filterModel, queryFields...)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Events and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var events []models.Event
	err = q.Find(&events).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EventListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), EventListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Event, 0, len(events))
	for _, event := range events {
		data = append(data, newEvent(event))
	}

	c.JSON(http.StatusOK, EventListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}
