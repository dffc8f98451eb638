package v1

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/splitpot/backend/internal/events"
	"github.com/splitpot/backend/internal/exchange"
	"github.com/splitpot/backend/internal/httputil"
	"github.com/splitpot/backend/internal/models"
	"github.com/splitpot/backend/internal/split"
	sp_uuid "github.com/splitpot/backend/internal/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{})
}

// @Summary		Create transactions
// @Description	Creates new transactions. The paid amounts of every transaction are divided up between its members by weight.
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		404				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/transactions [post]
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, editable := range editables {
		inputs, err := editable.contributions()
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		transaction := editable.model()

		var ledger models.Ledger
		err = models.DB.First(&ledger, transaction.LedgerID).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		// The ledger currency is the currency balances are kept in.
		// Amounts in any other currency are converted with the rate at
		// creation time, later updates do not rewrite history.
		transaction.Currency = strings.ToUpper(strings.TrimSpace(transaction.Currency))
		if transaction.Currency == "" {
			transaction.Currency = ledger.Currency
		}

		if transaction.Currency != ledger.Currency {
			rate, err := exchange.Rate(c.Request.Context(), transaction.Currency, ledger.Currency)
			if err != nil {
				status = r.appendError(err, status)
				continue
			}
			transaction.ExchangeRate = rate
		}

		// Transactions arriving without a category get one from the
		// first matching category rule
		if transaction.Category == "" && transaction.Name != "" {
			rules, err := models.CategoryRules(models.DB)
			if err != nil {
				status = r.appendError(err, status)
				continue
			}

			if category, ok := models.MatchCategory(rules, transaction.Name); ok {
				transaction.Category = category
			}
		}

		err = createTransaction(&transaction, inputs)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		events.Record(models.Event{
			Action:     models.EventCreated,
			Resource:   transaction.Self(),
			ResourceID: transaction.ID,
			Note:       transaction.Name,
		})

		data, err := newTransaction(c, transaction, split.Options{})
		if err != nil {
			status = r.appendError(err, status)
			continue
		}
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			ledger		query	string	false	"Filter by ledger ID"
// @Param			member		query	string	false	"Filter by ID of a member taking part"
// @Param			name		query	string	false	"Filter by name"
// @Param			category	query	string	false	"Filter by category"
// @Param			currency	query	string	false	"Filter by currency"
// @Param			type		query	string	false	"Filter by type"
// @Param			template	query	bool	false	"Is the transaction a template?"
// @Param			fromDate	query	string	false	"Transactions at or after this date"
// @Param			untilDate	query	string	false	"Transactions before or at this date"
// @Param			search		query	string	false	"Search for this text in name and category"
// @Param			offset		query	uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of Transactions to return. Defaults to 50."
// @Param			shape		query	string	false	"Shape of the member breakdown: list, object or map. Defaults to object."
// @Param			money		query	string	false	"Render amounts in cents or decimal units. Defaults to decimal."
// @Param			convert		query	bool	false	"Convert paid amounts into the ledger currency. Defaults to false."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields set in the filter
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	// Convert the QueryFilter to a Create struct
	model, err := filter.model()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	q := models.DB.
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Preload("Contributions.Member").
		Where(&model, queryFields...)

	if !filter.FromDate.IsZero() {
		q = q.Where("transactions.date >= date(?)", time.Date(filter.FromDate.Year(), filter.FromDate.Month(), filter.FromDate.Day(), 0, 0, 0, 0, time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("transactions.date < date(?)", time.Date(filter.UntilDate.Year(), filter.UntilDate.Month(), filter.UntilDate.Day()+1, 0, 0, 0, 0, time.UTC))
	}

	if filter.MemberID != sp_uuid.Nil {
		q = q.
			Joins("JOIN contributions ON contributions.transaction_id = transactions.id").
			Where("contributions.member_id = ?", filter.MemberID)
	}

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	if filter.Category != "" {
		q = q.Where("category LIKE ?", fmt.Sprintf("%%%s%%", filter.Category))
	} else if slices.Contains(setFields, "Category") {
		q = q.Where("category = ''")
	}

	if filter.Search != "" {
		q = q.Where(
			models.DB.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Search)).Or(
				models.DB.Where("category LIKE ?", fmt.Sprintf("%%%s%%", filter.Search)),
			),
		)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 Transactions and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &e,
		})
		return
	}

	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		apiResource, err := newTransaction(c, transaction, filter.options())
		if err != nil {
			s := err.Error()
			c.JSON(status(err), TransactionListResponse{
				Error: &s,
			})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction with its member breakdown
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			shape	query	string	false	"Shape of the member breakdown: list, object or map. Defaults to object."
// @Param			money	query	string	false	"Render amounts in cents or decimal units. Defaults to decimal."
// @Param			convert	query	bool	false	"Convert paid amounts into the ledger currency. Defaults to false."
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var options RenderOptions
	if err := c.Bind(&options); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.Preload("Contributions.Member").First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data, err := newTransaction(c, transaction, options.split())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified. When one of members, amounts and weights is specified, all three must be and the contributions are replaced as a whole.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.Preload("Contributions.Member").First(&transaction, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, TransactionEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	var data TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	// The member arrays are no columns of the transaction, they replace
	// the contributions as a whole
	replaceContributions := slices.Contains(updateFields, "Members") ||
		slices.Contains(updateFields, "Amounts") ||
		slices.Contains(updateFields, "Weights")
	updateFields = slices.DeleteFunc(updateFields, func(field any) bool {
		return field == "Members" || field == "Amounts" || field == "Weights"
	})

	model := data.model()

	// A new currency or ledger changes the rate amounts are converted
	// with. The rate is fetched once and stored, like on create.
	if slices.Contains(updateFields, "Currency") || slices.Contains(updateFields, "LedgerID") {
		currency := transaction.Currency
		if slices.Contains(updateFields, "Currency") {
			currency = strings.ToUpper(strings.TrimSpace(model.Currency))
		}

		ledgerID := transaction.LedgerID
		if slices.Contains(updateFields, "LedgerID") {
			ledgerID = model.LedgerID
		}

		var ledger models.Ledger
		err = models.DB.First(&ledger, ledgerID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), TransactionResponse{
				Error: &s,
			})
			return
		}

		if currency == "" {
			currency = ledger.Currency
		}

		rate := decimal.NewFromInt(1)
		if currency != ledger.Currency {
			rate, err = exchange.Rate(c.Request.Context(), currency, ledger.Currency)
			if err != nil {
				s := err.Error()
				c.JSON(status(err), TransactionResponse{
					Error: &s,
				})
				return
			}
		}

		model.Currency = currency
		model.ExchangeRate = rate
		for _, field := range []any{"Currency", "ExchangeRate"} {
			if !slices.Contains(updateFields, field) {
				updateFields = append(updateFields, field)
			}
		}
	}

	tx := models.DB.Begin()

	err = tx.Model(&transaction).Select("", updateFields...).Updates(model).Error
	if err != nil {
		tx.Rollback()
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	if replaceContributions {
		inputs, err := data.contributions()
		if err != nil {
			tx.Rollback()
			s := err.Error()
			c.JSON(status(err), TransactionResponse{
				Error: &s,
			})
			return
		}

		err = transaction.ReplaceContributions(tx, inputs)
		if err != nil {
			tx.Rollback()
			s := err.Error()
			c.JSON(status(err), TransactionResponse{
				Error: &s,
			})
			return
		}
	}

	err = tx.Commit().Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	events.Record(models.Event{
		Action:     models.EventUpdated,
		Resource:   transaction.Self(),
		ResourceID: transaction.ID,
		Note:       transaction.Name,
	})

	r, err := newTransaction(c, transaction, split.Options{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: &r})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	events.Record(models.Event{
		Action:     models.EventDeleted,
		Resource:   transaction.Self(),
		ResourceID: transaction.ID,
		Note:       transaction.Name,
	})

	c.JSON(http.StatusNoContent, nil)
}

// createTransaction persists the transaction and its contributions in
// one database transaction. Half created transactions are worse than
// rejected ones.
func createTransaction(transaction *models.Transaction, inputs []models.ContributionInput) error {
	return models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(transaction).Error
		if err != nil {
			return err
		}

		return transaction.ReplaceContributions(tx, inputs)
	})
}
