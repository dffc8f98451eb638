package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/splitpot/backend/internal/models"
)

// RuleEditable represents all user configurable parameters
type RuleEditable struct {
	Priority uint   `json:"priority" example:"2" default:"0"`         // Rules with lower priority are evaluated first
	Match    string `json:"match" example:"Supermarket*" default:""`  // Glob pattern matched against the transaction name, * matches any number of characters
	Category string `json:"category" example:"Groceries" default:""`  // Category to assign to matching transactions
}

func (editable RuleEditable) model() models.CategoryRule {
	return models.CategoryRule{
		Priority: editable.Priority,
		Match:    editable.Match,
		Category: editable.Category,
	}
}

type RuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/rules/95685c82-53c6-455d-b235-f49960b73b21"` // The category rule itself
}

type Rule struct {
	models.DefaultModel
	RuleEditable
	Links RuleLinks `json:"links"`
}

func newRule(c *gin.Context, model models.CategoryRule) Rule {
	url := c.GetString(string(models.DBContextURL))

	return Rule{
		DefaultModel: model.DefaultModel,
		RuleEditable: RuleEditable{
			Priority: model.Priority,
			Match:    model.Match,
			Category: model.Category,
		},
		Links: RuleLinks{
			Self: fmt.Sprintf("%s/v1/rules/%s", url, model.ID),
		},
	}
}

type RuleListResponse struct {
	Data       []Rule      `json:"data"`                                                          // List of Category Rules
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type RuleCreateResponse struct {
	Data  []RuleResponse `json:"data"`                                                          // List of the created Category Rules or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *RuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RuleResponse struct {
	Data  *Rule   `json:"data"`                                                          // Data for the Category Rule
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RuleQueryFilter struct {
	Priority uint   `form:"priority"`                     // By priority
	Match    string `form:"match" filterField:"false"`    // By match pattern
	Category string `form:"category" filterField:"false"` // By category
	Offset   uint   `form:"offset" filterField:"false"`   // The offset of the first Category Rule returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`    // Maximum number of Category Rules to return. Defaults to 50.
}

func (f RuleQueryFilter) model() (models.CategoryRule, error) {
	return models.CategoryRule{
		Priority: f.Priority,
	}, nil
}
