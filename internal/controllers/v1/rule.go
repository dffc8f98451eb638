package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/splitpot/backend/internal/events"
	"github.com/splitpot/backend/internal/httputil"
	"github.com/splitpot/backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterRuleRoutes registers the routes for category rules with
// the RouterGroup that is passed.
func RegisterRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRuleList)
		r.GET("", GetRules)
		r.POST("", CreateRules)
	}

	// Category rule with ID
	{
		r.OPTIONS("/:id", OptionsRuleDetail)
		r.GET("/:id", GetRule)
		r.PATCH("/:id", UpdateRule)
		r.DELETE("/:id", DeleteRule)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategoryRules
// @Success		204
// @Router			/v1/rules [options]
func OptionsRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategoryRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rules/{id} [options]
func OptionsRuleDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.CategoryRule{})
}

// @Summary		Create category rules
// @Description	Creates new category rules
// @Tags			CategoryRules
// @Produce		json
// @Success		201		{object}	RuleCreateResponse
// @Failure		400		{object}	RuleCreateResponse
// @Failure		500		{object}	RuleCreateResponse
// @Param			rules	body		[]RuleEditable	true	"Category Rules"
// @Router			/v1/rules [post]
func CreateRules(c *gin.Context) {
	var editables []RuleEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RuleCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RuleCreateResponse{}

	for _, editable := range editables {
		rule := editable.model()

		err = models.DB.Create(&rule).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		events.Record(models.Event{
			Action:     models.EventCreated,
			Resource:   rule.Self(),
			ResourceID: rule.ID,
			Note:       rule.Match,
		})

		data := newRule(c, rule)
		r.Data = append(r.Data, RuleResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get category rules
// @Description	Returns a list of category rules
// @Tags			CategoryRules
// @Produce		json
// @Success		200	{object}	RuleListResponse
// @Failure		500	{object}	RuleListResponse
// @Router			/v1/rules [get]
// @Param			priority	query	uint	false	"Filter by priority"
// @Param			match		query	string	false	"Filter by match pattern"
// @Param			category	query	string	false	"Filter by category"
// @Param			offset		query	uint	false	"The offset of the first Category Rule returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Category Rules to return. Defaults to 50."
func GetRules(c *gin.Context) {
	var filter RuleQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	filterModel, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleListResponse{
			Error: &s,
		})
		return
	}

	// Evaluation order is part of what a rule is, the list is always
	// sorted the way the rules are applied
	q := models.DB.
		Order("priority ASC, match ASC").
		Where(&filterModel, queryFields...)

	if filter.Match != "" {
		q = q.Where("match LIKE ?", fmt.Sprintf("%%%s%%", filter.Match))
	} else if slices.Contains(setFields, "Match") {
		q = q.Where("match = ''")
	}

	if filter.Category != "" {
		q = q.Where("category LIKE ?", fmt.Sprintf("%%%s%%", filter.Category))
	} else if slices.Contains(setFields, "Category") {
		q = q.Where("category = ''")
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Category Rules and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var rules []models.CategoryRule
	err = q.Find(&rules).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RuleListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		data = append(data, newRule(c, rule))
	}

	c.JSON(http.StatusOK, RuleListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get category rule
// @Description	Returns a specific category rule
// @Tags			CategoryRules
// @Produce		json
// @Success		200	{object}	RuleResponse
// @Failure		400	{object}	RuleResponse
// @Failure		404	{object}	RuleResponse
// @Failure		500	{object}	RuleResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rules/{id} [get]
func GetRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	var rule models.CategoryRule
	err = models.DB.First(&rule, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	data := newRule(c, rule)
	c.JSON(http.StatusOK, RuleResponse{Data: &data})
}

// @Summary		Update category rule
// @Description	Updates an existing category rule. Only values to be updated need to be specified.
// @Tags			CategoryRules
// @Accept			json
// @Produce		json
// @Success		200		{object}	RuleResponse
// @Failure		400		{object}	RuleResponse
// @Failure		404		{object}	RuleResponse
// @Failure		500		{object}	RuleResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			rule	body		RuleEditable	true	"Category Rule"
// @Router			/v1/rules/{id} [patch]
func UpdateRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	var rule models.CategoryRule
	err = models.DB.First(&rule, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, RuleEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	var data RuleEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	err = models.DB.Model(&rule).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RuleResponse{
			Error: &s,
		})
		return
	}

	events.Record(models.Event{
		Action:     models.EventUpdated,
		Resource:   rule.Self(),
		ResourceID: rule.ID,
		Note:       rule.Match,
	})

	r := newRule(c, rule)
	c.JSON(http.StatusOK, RuleResponse{Data: &r})
}

// @Summary		Delete category rule
// @Description	Deletes a category rule
// @Tags			CategoryRules
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/rules/{id} [delete]
func DeleteRule(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var rule models.CategoryRule
	err = models.DB.First(&rule, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&rule).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.Record(models.Event{
		Action:     models.EventDeleted,
		Resource:   rule.Self(),
		ResourceID: rule.ID,
		Note:       rule.Match,
	})

	c.JSON(http.StatusNoContent, nil)
}
