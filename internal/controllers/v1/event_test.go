package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	v1 "github.com/splitpot/backend/internal/controllers/v1"
	"github.com/splitpot/backend/internal/models"
	"github.com/splitpot/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestEventsDBClosed() {
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/events", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)

	var response v1.EventListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Contains(suite.T(), *response.Error, models.ErrGeneral.Error())
}

// TestEventsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestEventsOptions() {
	r := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/events", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", r.Header().Get("allow"))
}

// TestEventsRecorded verifies that mutations leave an audit trail.
func (suite *TestSuiteStandard) TestEventsRecorded() {
	ledger := createTestLedger(suite.T(), v1.LedgerEditable{Name: "Road trip"})
	ann := createTestMember(suite.T(), v1.MemberEditable{Name: "Ann", LedgerID: ledger.Data.ID})
	_ = createTestMember(suite.T(), v1.MemberEditable{Name: "Ben", LedgerID: ledger.Data.ID})

	createTestTransaction(suite.T(), v1.TransactionEditable{
		LedgerID: ledger.Data.ID,
		Name:     "Fuel",
		Members:  []string{"Ann", "Ben"},
		Amounts:  []decimal.Decimal{decimal.New(40, 0), decimal.Zero},
		Weights:  []float64{0, 1},
	})

	r := test.Request(suite.T(), http.MethodPatch, ann.Data.Links.Self, map[string]any{"note": "Driver"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/ledgers/%s/settlement", ledger.Data.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	flushEvents()

	re := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/events", "")
	test.AssertHTTPStatus(suite.T(), &re, http.StatusOK)

	var response v1.EventListResponse
	test.DecodeResponse(suite.T(), &re, &response)

	type entry struct {
		action   models.EventAction
		resource string
		note     string
	}

	entries := make([]entry, 0, len(response.Data))
	for _, event := range response.Data {
		entries = append(entries, entry{event.Action, event.Resource, event.Note})
	}

	assert.ElementsMatch(suite.T(), []entry{
		{models.EventCreated, "Ledger", "Road trip"},
		{models.EventCreated, "Member", "Ann"},
		{models.EventCreated, "Member", "Ben"},
		{models.EventCreated, "Transaction", "Fuel"},
		{models.EventUpdated, "Member", "Ann"},
		{models.EventSettled, "Ledger", "1 transfers"},
	}, entries)
}

// TestEventsGetSorted verifies that the newest events come first.
func (suite *TestSuiteStandard) TestEventsGetSorted() {
	createTestLedger(suite.T(), v1.LedgerEditable{Name: "First"})
	flushEvents()

	// Sleep so that the second event has a later timestamp
	time.Sleep(1 * time.Second)

	createTestLedger(suite.T(), v1.LedgerEditable{Name: "Second"})
	flushEvents()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/events", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.EventListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Second", response.Data[0].Note)
	assert.Equal(suite.T(), "First", response.Data[1].Note)
}

func (suite *TestSuiteStandard) TestEventsGetFilter() {
	ledger := createTestLedger(suite.T(), v1.LedgerEditable{Name: "Trips"})
	member := createTestMember(suite.T(), v1.MemberEditable{Name: "Ann", LedgerID: ledger.Data.ID})

	r := test.Request(suite.T(), http.MethodPatch, member.Data.Links.Self, map[string]any{"note": "Organizer"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodDelete, member.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	flushEvents()

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 4},
		{"Created", "action=created", 2},
		{"Updated", "action=updated", 1},
		{"Deleted", "action=deleted", 1},
		{"Imported", "action=imported", 0},
		{"Ledgers", "resource=Ledger", 1},
		{"Members", "resource=Member", 3},
		{"Created members", "action=created&resource=Member", 1},
		{"Offset 3", "offset=3", 1},
		{"Limit 2", "limit=2", 2},
		{"Limit 0", "limit=0", 0},
		{"Limit -1", "limit=-1", 4},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.EventListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/events?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

func (suite *TestSuiteStandard) TestEventsPagination() {
	for i := 0; i < 10; i++ {
		createTestLedger(suite.T(), v1.LedgerEditable{Name: fmt.Sprint(i)})
	}
	flushEvents()

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
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/events?offset=%d&limit=%d", tt.offset, tt.limit), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.EventListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.expectedCount, response.Pagination.Count)
			assert.Equal(t, tt.offset, response.Pagination.Offset)
			assert.Equal(t, tt.limit, response.Pagination.Limit)
			assert.Equal(t, int64(10), response.Pagination.Total)
		})
	}
}
