package v1_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	v1 "github.com/splitpot/backend/internal/controllers/v1"
	"github.com/splitpot/backend/internal/models"
	"github.com/splitpot/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestImportSuccess imports the example dump and verifies the created
// resources by following the links of the new ledger.
func (suite *TestSuiteStandard) TestImportSuccess() {
	// Category rules existing at import time fill in empty categories
	_ = createTestRule(suite.T(), v1.RuleEditable{Priority: 1, Match: "Supermarket*", Category: "Groceries"})
	_ = createTestRule(suite.T(), v1.RuleEditable{Priority: 2, Match: "Imported*", Category: "Misc"})

	body, headers := test.LoadTestFile(suite.T(), "importer/dump.json")
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/import?ledger=Lake house 2023", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var ledger v1.LedgerResponse
	test.DecodeResponse(suite.T(), &recorder, &ledger)

	assert.Equal(suite.T(), "Lake house 2023", ledger.Data.Name, "The ledger name must be the query parameter, not the name in the dump")
	assert.Equal(suite.T(), "EUR", ledger.Data.Currency)
	assert.Equal(suite.T(), "Summer trip", ledger.Data.Note)

	suite.T().Run("Members", func(t *testing.T) {
		recorder := test.Request(t, http.MethodGet, ledger.Data.Links.Members, "")
		test.AssertHTTPStatus(t, &recorder, http.StatusOK)

		var members v1.MemberListResponse
		test.DecodeResponse(t, &recorder, &members)

		if !assert.Len(t, members.Data, 4) {
			assert.FailNow(t, "Response does not have exactly 4 items")
		}

		for i, name := range []string{"Ann", "Ben", "Cleo", "Dana"} {
			assert.Equal(t, name, members.Data[i].Name)
		}

		assert.Equal(t, "Organizer", members.Data[1].Note)
		assert.True(t, members.Data[3].Archived, "Dana is archived in the dump")
		assert.Equal(t, "Left before the trip", members.Data[3].Note)
	})

	suite.T().Run("Transactions", func(t *testing.T) {
		recorder := test.Request(t, http.MethodGet, ledger.Data.Links.Transactions, "")
		test.AssertHTTPStatus(t, &recorder, http.StatusOK)

		var transactions v1.TransactionListResponse
		test.DecodeResponse(t, &recorder, &transactions)

		if !assert.Len(t, transactions.Data, 4) {
			assert.FailNow(t, "Response does not have exactly 4 items")
		}

		// Transactions are sorted by date, newest first. The unnamed
		// transaction gets the fallback name, which in turn matches the
		// "Imported*" category rule.
		names := []string{"Deposit refund", "Imported transaction", "Ferry tickets", "Supermarket"}
		categories := []string{"", "Misc", "Travel", "Groceries"}
		for i := range names {
			assert.Equal(t, names[i], transactions.Data[i].Name)
			assert.Equal(t, categories[i], transactions.Data[i].Category, "Wrong category for %s", names[i])
		}

		// The exchange rate is taken over from the dump, it is not fetched again
		ferry := transactions.Data[2]
		assert.Equal(t, "USD", ferry.Currency)
		assert.True(t, ferry.ExchangeRate.Equal(decimal.NewFromFloat(0.92)), "Exchange rate is %s, should be 0.92", ferry.ExchangeRate)
	})

	suite.T().Run("Balances", func(t *testing.T) {
		recorder := test.Request(t, http.MethodGet, ledger.Data.Links.Balances, "")
		test.AssertHTTPStatus(t, &recorder, http.StatusOK)

		var balances v1.BalanceListResponse
		test.DecodeResponse(t, &recorder, &balances)

		// Dana is archived with a zero balance and does not appear
		if !assert.Len(t, balances.Data, 3) {
			assert.FailNow(t, "Response does not have exactly 3 items")
		}

		tests := []struct {
			member  string
			paid    int64
			owed    int64
			balance int64
		}{
			{"Ann", 1560, 1620, -60},
			{"Ben", 2760, 1020, 1740},
			{"Cleo", 1200, 2880, -1680},
		}

		for i, tt := range tests {
			assert.Equal(t, tt.member, balances.Data[i].Member)
			assert.Equal(t, tt.paid, balances.Data[i].Paid, "Paid for %s is wrong", tt.member)
			assert.Equal(t, tt.owed, balances.Data[i].Owed, "Owed for %s is wrong", tt.member)
			assert.Equal(t, tt.balance, balances.Data[i].Balance, "Balance for %s is wrong", tt.member)
		}
	})

	suite.T().Run("Settlement", func(t *testing.T) {
		recorder := test.Request(t, http.MethodGet, ledger.Data.Links.Settlement, "")
		test.AssertHTTPStatus(t, &recorder, http.StatusOK)

		var settlement v1.SettlementListResponse
		test.DecodeResponse(t, &recorder, &settlement)

		if !assert.Len(t, settlement.Data, 2) {
			assert.FailNow(t, "Response does not have exactly 2 items")
		}

		assert.Equal(t, "Cleo", settlement.Data[0].Payer)
		assert.Equal(t, "Ben", settlement.Data[0].Payee)
		assert.Equal(t, int64(1680), settlement.Data[0].Amount)

		assert.Equal(t, "Ann", settlement.Data[1].Payer)
		assert.Equal(t, "Ben", settlement.Data[1].Payee)
		assert.Equal(t, int64(60), settlement.Data[1].Amount)
	})

	suite.T().Run("Event", func(t *testing.T) {
		flushEvents()

		recorder := test.Request(t, http.MethodGet, "http://example.com/v1/events?action=imported", "")
		test.AssertHTTPStatus(t, &recorder, http.StatusOK)

		var events v1.EventListResponse
		test.DecodeResponse(t, &recorder, &events)

		if !assert.Len(t, events.Data, 1) {
			assert.FailNow(t, "Response does not have exactly 1 item")
		}

		assert.Equal(t, "Ledger", events.Data[0].Resource)
		assert.Equal(t, "4 transactions", events.Data[0].Note)
	})
}

// TestImportFails tests failing imports for the dump import endpoint.
func (suite *TestSuiteStandard) TestImportFails() {
	tests := []struct {
		name          string
		ledgerName    string
		expectedError string
		status        int
		file          string
		preTest       func()
	}{
		{"No ledger name", "", "the ledger parameter must be set", http.StatusBadRequest, "", func() {}},
		{"No file sent", "File free", "you must send a file to this endpoint", http.StatusBadRequest, "", func() {}},
		{"Wrong file suffix", "Suffix", "this endpoint only supports files of the following types: .json", http.StatusBadRequest, "importer/wrong-suffix.csv", func() {}},
		{"Corrupt file", "Corrupt", "not a valid Splitpot dump", http.StatusBadRequest, "importer/corrupt.json", func() {}},
		{"Three decimal places", "Precise", "the amount 1.005 for member \"Ann\" has more than two decimal places", http.StatusBadRequest, "importer/three-decimals.json", func() {}},
		{"Unknown member", "Broken", "the ledger has no member with this name: Zed", http.StatusBadRequest, "importer/unknown-member.json", func() {}},
		{"Duplicate ledger name", "Import Test", "this ledger name is already in use", http.StatusBadRequest, "", func() {
			_ = createTestLedger(suite.T(), v1.LedgerEditable{Name: "Import Test"})
		}},
		{"Database error. This test must be the last one.", "Nope. DB is closed.", models.ErrGeneral.Error(), http.StatusInternalServerError, "", func() {
			suite.CloseDB()
		}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			tt.preTest()

			path := fmt.Sprintf("http://example.com/v1/import?ledger=%s", tt.ledgerName)

			var body *bytes.Buffer
			var headers map[string]string
			var recorder httptest.ResponseRecorder
			if tt.file != "" {
				body, headers = test.LoadTestFile(t, tt.file)
				recorder = test.Request(t, http.MethodPost, path, body, headers)
			} else {
				recorder = test.Request(t, http.MethodPost, path, "")
			}

			test.AssertHTTPStatus(t, &recorder, tt.status)
			var response v1.LedgerResponse
			test.DecodeResponse(t, &recorder, &response)
			assert.Contains(t, *response.Error, tt.expectedError)
		})
	}
}
