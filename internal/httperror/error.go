package httperror

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Error struct {
	Message string `json:"error" example:"You must specify a transaction ID"`
}

func New(e error) Error {
	return Error{
		Message: e.Error(),
	}
}

func NewFromString(msg string) Error {
	return Error{
		Message: msg,
	}
}

// Handler logs err and responds with an internal server error that
// references the request ID, so that a report from an API consumer can
// be matched to the log.
func Handler(c *gin.Context, err error) {
	requestID := requestid.Get(c)
	log.Error().Str("request-id", requestID).Msgf("%T: %v", err, err.Error())

	c.JSON(http.StatusInternalServerError, NewFromString("an error occurred on the server during your request, the request id is '"+requestID+"'"))
}
