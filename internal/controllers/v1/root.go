package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/splitpot/backend/internal/httputil"
	"github.com/splitpot/backend/internal/models"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.DELETE("", Cleanup)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Ledgers      string `json:"ledgers" example:"https://example.com/api/v1/ledgers"`           // URL of Ledger collection endpoint
	Members      string `json:"members" example:"https://example.com/api/v1/members"`           // URL of Member collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of Transaction collection endpoint
	Rules        string `json:"rules" example:"https://example.com/api/v1/rules"`               // URL of Category Rule collection endpoint
	Events       string `json:"events" example:"https://example.com/api/v1/events"`             // URL of Event collection endpoint
	Import       string `json:"import" example:"https://example.com/api/v1/import"`             // URL of import endpoint
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Ledgers:      url + "/v1/ledgers",
			Members:      url + "/v1/members",
			Transactions: url + "/v1/transactions",
			Rules:        url + "/v1/rules",
			Events:       url + "/v1/events",
			Import:       url + "/v1/import",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}
