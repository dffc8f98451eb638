package v1

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/splitpot/backend/internal/events"
	"github.com/splitpot/backend/internal/httputil"
	"github.com/splitpot/backend/internal/importer"
	"github.com/splitpot/backend/internal/importer/parser/splitjson"
	"github.com/splitpot/backend/internal/models"
)

// RegisterImportRoutes registers the routes for imports.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsImport)
	r.POST("", ImportDump)
}

type ImportQuery struct {
	Ledger string `form:"ledger" binding:"required"` // Name for the new ledger
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, error) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		return nil, errNoFilePost
	}

	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		return nil, fmt.Errorf("%w: %s", errWrongFileSuffix, suffix)
	}

	f, err := formFile.Open()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Import
// @Success		204
// @Router			/v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Import a ledger
// @Description	Imports a Splitpot JSON dump into a new ledger
// @Tags			Import
// @Accept			multipart/form-data
// @Produce		json
// @Success		201		{object}	LedgerResponse
// @Failure		400		{object}	LedgerResponse
// @Failure		500		{object}	LedgerResponse
// @Param			file	formData	file		true	"File to import"
// @Param			ledger	query		ImportQuery	false	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/import [post]
func ImportDump(c *gin.Context) {
	var query ImportQuery
	if err := c.BindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errLedgerNameNotSet.Error()})
		return
	}

	// Verify that the ledger does not exist yet. Imports only go into
	// new ledgers.
	var ledger models.Ledger
	err := models.DB.Where(&models.Ledger{
		Name: query.Ledger,
	}).First(&ledger).Error

	if err == nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errLedgerNameInUse.Error(),
		})
		return
	} else if !errors.Is(err, models.ErrResourceNotFound) {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	f, err := getUploadedFile(c, ".json")
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	resources, err := splitjson.Parse(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	// The name of the new ledger is the query parameter, not whatever
	// the dump says
	resources.Ledger.Name = query.Ledger

	ledger, err = importer.Create(models.DB, resources)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LedgerResponse{
			Error: &s,
		})
		return
	}

	events.Record(models.Event{
		Action:     models.EventImported,
		Resource:   ledger.Self(),
		ResourceID: ledger.ID,
		Note:       fmt.Sprintf("%d transactions", len(resources.Transactions)),
	})

	data := newLedger(c, ledger)
	c.JSON(http.StatusCreated, LedgerResponse{Data: &data})
}
