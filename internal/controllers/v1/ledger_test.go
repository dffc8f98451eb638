package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	v1 "github.com/splitpot/backend/internal/controllers/v1"
	"github.com/splitpot/backend/internal/models"
	"github.com/splitpot/backend/internal/types"
	"github.com/splitpot/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLedger(t *testing.T, c v1.LedgerEditable, expectedStatus ...int) v1.LedgerResponse {
	if c.Name == "" {
		c.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.LedgerEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/ledgers", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.LedgerCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.LedgerResponse{}
}

// TestLedgersDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestLedgersDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestLedger(t, v1.LedgerEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/ledgers", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.LedgerListResponse
				test.DecodeResponse(t, &recorder, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestLedgersOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestLedgersOptions() {
	tests := []struct {
		name   string
		id     string // path at the ledgers endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Ledger with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Ledger exists", createTestLedger(suite.T(), v1.LedgerEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/ledgers", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestLedgersGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestLedgersGetSingle() {
	l := createTestLedger(suite.T(), v1.LedgerEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Ledger", l.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No Ledger with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodPatch},
		{"PATCH Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodPatch},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodDelete},
		{"DELETE Invalid ID (positive number)", "23", http.StatusBadRequest, http.MethodDelete},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/ledgers/%s", tt.id), "")

			var ledger v1.LedgerResponse
			test.DecodeResponse(t, &r, &ledger)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestLedgersCreate verifies the defaults for new ledgers.
func (suite *TestSuiteStandard) TestLedgersCreate() {
	tests := []struct {
		name     string
		ledger   v1.LedgerEditable
		testFunc func(t *testing.T, l v1.LedgerResponse)
	}{
		{
			"Currency defaults to EUR",
			v1.LedgerEditable{Name: "Flat 12"},
			func(t *testing.T, l v1.LedgerResponse) {
				assert.Equal(t, "EUR", l.Data.Currency)
			},
		},
		{
			"Currency is upper cased",
			v1.LedgerEditable{Name: "Road trip", Currency: "usd"},
			func(t *testing.T, l v1.LedgerResponse) {
				assert.Equal(t, "USD", l.Data.Currency)
			},
		},
		{
			"Whitespace is trimmed",
			v1.LedgerEditable{Name: "  Lunch group ", Note: " Office lunches\t"},
			func(t *testing.T, l v1.LedgerResponse) {
				assert.Equal(t, "Lunch group", l.Data.Name)
				assert.Equal(t, "Office lunches", l.Data.Note)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			l := createTestLedger(t, tt.ledger)

			if tt.testFunc != nil {
				tt.testFunc(t, l)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestLedgersCreateFails() {
	// Test ledger for uniqueness
	l := createTestLedger(suite.T(), v1.LedgerEditable{Name: "Unique Ledger Name"})

	tests := []struct {
		name     string
		body     any
		status   int                                           // expected HTTP status
		testFunc func(t *testing.T, l v1.LedgerCreateResponse) // tests to perform against the response
	}{
		{
			"Broken Body", `[{ "note": 2 }]`, http.StatusBadRequest,
			func(t *testing.T, l v1.LedgerCreateResponse) {
				assert.Equal(t, "json: cannot unmarshal number into Go struct field LedgerEditable.note of type string", *l.Error)
			},
		},
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, l v1.LedgerCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *l.Error)
			},
		},
		{
			"Duplicate name",
			[]v1.LedgerEditable{{Name: l.Data.Name}},
			http.StatusBadRequest,
			func(t *testing.T, l v1.LedgerCreateResponse) {
				assert.Equal(t, "the ledger name must be unique", *l.Data[0].Error)
			},
		},
		{
			"Invalid currency",
			[]v1.LedgerEditable{{Name: "Skiing", Currency: "MONOPOLY"}},
			http.StatusBadRequest,
			func(t *testing.T, l v1.LedgerCreateResponse) {
				assert.Equal(t, "the currency must be a valid ISO 4217 code", *l.Data[0].Error)
			},
		},
		{
			"One success, one failure",
			[]v1.LedgerEditable{{Name: "Kayaking"}, {Name: l.Data.Name}},
			http.StatusBadRequest,
			func(t *testing.T, l v1.LedgerCreateResponse) {
				require.Len(t, l.Data, 2)
				assert.NotNil(t, l.Data[0].Data)
				require.NotNil(t, l.Data[1].Error)
				assert.Equal(t, "the ledger name must be unique", *l.Data[1].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/ledgers", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var l v1.LedgerCreateResponse
			test.DecodeResponse(t, &r, &l)

			if tt.testFunc != nil {
				tt.testFunc(t, l)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestLedgersGetFilter() {
	_ = createTestLedger(suite.T(), v1.LedgerEditable{
		Name:     "Flat 12",
		Note:     "Shared costs for the flat",
		Archived: true,
	})

	_ = createTestLedger(suite.T(), v1.LedgerEditable{
		Name:     "Road trip",
		Note:     "Summer 2024",
		Currency: "USD",
	})

	_ = createTestLedger(suite.T(), v1.LedgerEditable{
		Name: "Lunch group",
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Currency EUR", "currency=EUR", 2},
		{"Currency is case insensitive", "currency=usd", 1},
		{"Currency without match", "currency=GBP", 0},
		{"Fuzzy name", "name=trip", 1},
		{"Empty name", "name=", 0},
		{"Fuzzy note", "note=Summer", 1},
		{"Empty note", "note=", 1},
		{"Name & Note", "name=Flat&note=flat", 1},
		{"Archived", "archived=true", 1},
		{"Not archived", "archived=false", 2},
		{"Search for 'uN'", "search=uN", 2},
		{"Search without match", "search=does-not-exist", 0},
		{"Offset 2", "offset=2", 1},
		{"Offset 0, limit 2", "offset=0&limit=2", 2},
		{"Limit 4", "limit=4", 3},
		{"Limit 0", "limit=0", 0},
		{"Limit -1", "limit=-1", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.LedgerListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/ledgers?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

// TestLedgersGetSorted verifies that ledgers are sorted by name.
func (suite *TestSuiteStandard) TestLedgersGetSorted() {
	_ = createTestLedger(suite.T(), v1.LedgerEditable{Name: "Road trip"})
	_ = createTestLedger(suite.T(), v1.LedgerEditable{Name: "Flat 12"})
	_ = createTestLedger(suite.T(), v1.LedgerEditable{Name: "Lunch group"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/ledgers", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.LedgerListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), "Flat 12", response.Data[0].Name)
	assert.Equal(suite.T(), "Lunch group", response.Data[1].Name)
	assert.Equal(suite.T(), "Road trip", response.Data[2].Name)
}

func (suite *TestSuiteStandard) TestLedgersPagination() {
	for i := 0; i < 10; i++ {
		createTestLedger(suite.T(), v1.LedgerEditable{Name: fmt.Sprint(i)})
	}

	tests := []struct {
		name          string
		offset        uint
		limit         int
		expectedCount int
	}{
		{"All", 0, -1, 10},
		{"First 5", 0, 5, 5},
		{"Last 3", 7, -1, 3},
		{"Offset past the end", 10, 50, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/ledgers?offset=%d&limit=%d", tt.offset, tt.limit), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.LedgerListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.expectedCount, response.Pagination.Count)
			assert.Equal(t, tt.offset, response.Pagination.Offset)
			assert.Equal(t, tt.limit, response.Pagination.Limit)
			assert.Equal(t, int64(10), response.Pagination.Total)
		})
	}
}

// Verify that updating ledgers works as desired
func (suite *TestSuiteStandard) TestLedgersUpdate() {
	ledger := createTestLedger(suite.T(), v1.LedgerEditable{Name: "Name of the ledger"})

	tests := []struct {
		name     string
		ledger   map[string]any                          // the updates to perform. This is not a struct because that would set all fields on the request
		testFunc func(t *testing.T, l v1.LedgerResponse) // tests to perform against the updated ledger resource
	}{
		{
			"Name, Note",
			map[string]any{
				"name": "Another name",
				"note": "New note!",
			},
			func(t *testing.T, l v1.LedgerResponse) {
				assert.Equal(t, "New note!", l.Data.Note)
				assert.Equal(t, "Another name", l.Data.Name)
			},
		},
		{
			"Currency",
			map[string]any{
				"currency": "chf",
			},
			func(t *testing.T, l v1.LedgerResponse) {
				assert.Equal(t, "CHF", l.Data.Currency)
			},
		},
		{
			"Archived",
			map[string]any{
				"archived": true,
			},
			func(t *testing.T, l v1.LedgerResponse) {
				assert.True(t, l.Data.Archived)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, ledger.Data.Links.Self, tt.ledger)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var l v1.LedgerResponse
			test.DecodeResponse(t, &r, &l)

			if tt.testFunc != nil {
				tt.testFunc(t, l)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestLedgersUpdateFails() {
	taken := createTestLedger(suite.T(), v1.LedgerEditable{})
	ledger := createTestLedger(suite.T(), v1.LedgerEditable{})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Invalid type", `{"name": 2}`, http.StatusBadRequest},
		{"Broken JSON", `{ "name": 2" }`, http.StatusBadRequest},
		{"Duplicate name", map[string]any{"name": taken.Data.Name}, http.StatusBadRequest},
		{"Invalid currency", map[string]any{"currency": "NOTACURRENCY"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, ledger.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestLedgersDelete verifies that ledgers can be deleted.
func (suite *TestSuiteStandard) TestLedgersDelete() {
	l := createTestLedger(suite.T(), v1.LedgerEditable{})

	r := test.Request(suite.T(), http.MethodDelete, l.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// Deleting a deleted ledger is a 404
	r = test.Request(suite.T(), http.MethodDelete, l.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

// TestLedgerBalances verifies the per-member net positions for a ledger
// with expenses, an income and a transfer.
func (suite *TestSuiteStandard) TestLedgerBalances() {
	ledger := createTestLedger(suite.T(), v1.LedgerEditable{Name: "Flat 12"})

	for _, name := range []string{"Ann", "Ben", "Cleo"} {
		createTestMember(suite.T(), v1.MemberEditable{Name: name, LedgerID: ledger.Data.ID})
	}

	// Ann lays out 30.00, divided equally
	createTestTransaction(suite.T(), v1.TransactionEditable{
		LedgerID: ledger.Data.ID,
		Name:     "Groceries",
		Members:  []string{"Ann", "Ben", "Cleo"},
		Amounts:  []decimal.Decimal{decimal.New(30, 0), decimal.Zero, decimal.Zero},
		Weights:  []float64{1, 1, 1},
	})

	// Ben pays 24.00 for himself and Cleo, Cleo gets the double share
	createTestTransaction(suite.T(), v1.TransactionEditable{
		LedgerID: ledger.Data.ID,
		Name:     "Cinema",
		Members:  []string{"Ben", "Cleo"},
		Amounts:  []decimal.Decimal{decimal.New(24, 0), decimal.Zero},
		Weights:  []float64{1, 2},
	})

	// Ann receives 9.00 for the group, every member gets an equal share
	createTestTransaction(suite.T(), v1.TransactionEditable{
		LedgerID: ledger.Data.ID,
		Name:     "Deposit refund",
		Type:     types.TypeIncome,
		Members:  []string{"Ann", "Ben", "Cleo"},
		Amounts:  []decimal.Decimal{decimal.New(9, 0), decimal.Zero, decimal.Zero},
		Weights:  []float64{1, 1, 1},
	})

	// Cleo hands Ann 3.00 in cash
	createTestTransaction(suite.T(), v1.TransactionEditable{
		LedgerID: ledger.Data.ID,
		Name:     "Repayment",
		Type:     types.TypeTransfer,
		Members:  []string{"Ann", "Cleo"},
		Amounts:  []decimal.Decimal{decimal.Zero, decimal.New(3, 0)},
		Weights:  []float64{1, 0},
	})

	// Templates never count towards balances
	createTestTransaction(suite.T(), v1.TransactionEditable{
		LedgerID:   ledger.Data.ID,
		Name:       "Rent",
		Template:   true,
		Recurrence: types.RecurrenceMonthly,
		Members:    []string{"Ann"},
		Amounts:    []decimal.Decimal{decimal.New(100, 0)},
		Weights:    []float64{1},
	})

	r := test.Request(suite.T(), http.MethodGet, ledger.Data.Links.Balances, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	expected := []v1.MemberBalance{
		{Member: "Ann", Paid: 2100, Owed: 1000, Balance: 1100},
		{Member: "Ben", Paid: 2400, Owed: 1500, Balance: 900},
		{Member: "Cleo", Paid: 300, Owed: 2300, Balance: -2000},
	}

	require.Len(suite.T(), response.Data, len(expected))
	for i, e := range expected {
		suite.T().Run(e.Member, func(t *testing.T) {
			balance := response.Data[i]
			assert.Equal(t, e.Member, balance.Member)
			assert.Equal(t, e.Paid, balance.Paid, "Paid is off")
			assert.Equal(t, e.Owed, balance.Owed, "Owed is off")
			assert.Equal(t, e.Balance, balance.Balance, "Balance is off")
			assert.True(t, balance.BalanceDecimal.Equal(decimal.New(e.Balance, -2)), "BalanceDecimal is %s", balance.BalanceDecimal)
		})
	}

	// The settlement brings everyone to zero with two transfers
	r = test.Request(suite.T(), http.MethodGet, ledger.Data.Links.Settlement, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var settlement v1.SettlementListResponse
	test.DecodeResponse(suite.T(), &r, &settlement)

	require.Len(suite.T(), settlement.Data, 2)

	assert.Equal(suite.T(), "Cleo", settlement.Data[0].Payer)
	assert.Equal(suite.T(), "Ann", settlement.Data[0].Payee)
	assert.Equal(suite.T(), int64(1100), settlement.Data[0].Amount)
	assert.True(suite.T(), settlement.Data[0].AmountDecimal.Equal(decimal.New(11, 0)))

	assert.Equal(suite.T(), "Cleo", settlement.Data[1].Payer)
	assert.Equal(suite.T(), "Ben", settlement.Data[1].Payee)
	assert.Equal(suite.T(), int64(900), settlement.Data[1].Amount)
	assert.True(suite.T(), settlement.Data[1].AmountDecimal.Equal(decimal.New(9, 0)))
}

// TestLedgerBalancesEmpty verifies that a ledger without transactions
// returns zero balances, not null.
func (suite *TestSuiteStandard) TestLedgerBalancesEmpty() {
	ledger := createTestLedger(suite.T(), v1.LedgerEditable{})
	createTestMember(suite.T(), v1.MemberEditable{Name: "Ann", LedgerID: ledger.Data.ID})

	r := test.Request(suite.T(), http.MethodGet, ledger.Data.Links.Balances, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Ann", response.Data[0].Member)
	assert.Equal(suite.T(), int64(0), response.Data[0].Balance)
	assert.True(suite.T(), response.Data[0].BalanceDecimal.IsZero())

	r = test.Request(suite.T(), http.MethodGet, ledger.Data.Links.Settlement, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var settlement v1.SettlementListResponse
	test.DecodeResponse(suite.T(), &r, &settlement)
	assert.NotNil(suite.T(), settlement.Data)
	assert.Len(suite.T(), settlement.Data, 0)
}

// TestLedgerBalancesArchived verifies that archived members with a zero
// balance are not part of the response.
func (suite *TestSuiteStandard) TestLedgerBalancesArchived() {
	ledger := createTestLedger(suite.T(), v1.LedgerEditable{})
	createTestMember(suite.T(), v1.MemberEditable{Name: "Ann", LedgerID: ledger.Data.ID})
	createTestMember(suite.T(), v1.MemberEditable{Name: "Dana", LedgerID: ledger.Data.ID, Archived: true})

	r := test.Request(suite.T(), http.MethodGet, ledger.Data.Links.Balances, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BalanceListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Ann", response.Data[0].Member)
}

// TestLedgerBalancesCorrupted verifies that an archived member with a
// balance left is reported as a server side problem. The API refuses to
// get into this state, so reaching it means the data was edited.
func (suite *TestSuiteStandard) TestLedgerBalancesCorrupted() {
	ledger := createTestLedger(suite.T(), v1.LedgerEditable{})
	createTestMember(suite.T(), v1.MemberEditable{Name: "Ann", LedgerID: ledger.Data.ID})
	zed := createTestMember(suite.T(), v1.MemberEditable{Name: "Zed", LedgerID: ledger.Data.ID})

	createTestTransaction(suite.T(), v1.TransactionEditable{
		LedgerID: ledger.Data.ID,
		Name:     "Taxi",
		Members:  []string{"Zed", "Ann"},
		Amounts:  []decimal.Decimal{decimal.New(10, 0), decimal.Zero},
		Weights:  []float64{0, 1},
	})

	// Archive Zed behind the back of the model hooks that would refuse it
	err := models.DB.Model(&models.Member{}).
		Where("id = ?", zed.Data.ID).
		UpdateColumn("archived", true).Error
	require.Nil(suite.T(), err)

	for _, path := range []string{ledger.Data.Links.Balances, ledger.Data.Links.Settlement} {
		r := test.Request(suite.T(), http.MethodGet, path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

		var response v1.BalanceListResponse
		test.DecodeResponse(suite.T(), &r, &response)
		assert.Contains(suite.T(), *response.Error, "inactive member")
	}
}

// TestLedgerBalancesNotFound verifies the error handling of the computed
// endpoints for bad ledger IDs.
func (suite *TestSuiteStandard) TestLedgerBalancesNotFound() {
	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Ledger with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
	}

	for _, tt := range tests {
		for _, endpoint := range []string{"balances", "settlement"} {
			suite.T().Run(fmt.Sprintf("%s %s", tt.name, endpoint), func(t *testing.T) {
				r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/ledgers/%s/%s", tt.id, endpoint), "")
				test.AssertHTTPStatus(t, &r, tt.status)
			})
		}
	}
}
