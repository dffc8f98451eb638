package v1

import (
	"errors"
	"net/http"

	"github.com/splitpot/backend/internal/exchange"
	"github.com/splitpot/backend/internal/models"
	"github.com/splitpot/backend/internal/split"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	// Broken arithmetic guarantees and unreachable rate services are
	// never the client's fault
	if errors.Is(err, split.ErrInvariant) || errors.Is(err, exchange.ErrUnavailable) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Transaction errors
var (
	errArraysLengthMismatch = errors.New("members, amounts and weights must have the same length")
	errAmountPrecision      = errors.New("amounts can have at most two decimal places")
)

// Import errors
var (
	errNoFilePost       = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix  = errors.New("this endpoint only supports files of the following types")
	errLedgerNameNotSet = errors.New("the ledger parameter must be set")
	errLedgerNameInUse  = errors.New("this ledger name is already in use. Imports create a new ledger, therefore the name needs to be unique")
)
