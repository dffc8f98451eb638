package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	v1 "github.com/splitpot/backend/internal/controllers/v1"
	"github.com/splitpot/backend/internal/models"
	"github.com/splitpot/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRule(t *testing.T, c v1.RuleEditable, expectedStatus ...int) v1.RuleResponse {
	if c.Match == "" {
		c.Match = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.RuleEditable{c}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/rules", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.RuleCreateResponse
	test.DecodeResponse(t, &r, &response)

	if r.Code == http.StatusCreated {
		return response.Data[0]
	}

	return v1.RuleResponse{}
}

// TestRulesDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestRulesDBClosed() {
	tests := []struct {
		name string             // Name of the test
		test func(t *testing.T) // Code to run
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				createTestRule(t, v1.RuleEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				recorder := test.Request(t, http.MethodGet, "http://example.com/v1/rules", "")
				test.AssertHTTPStatus(t, &recorder, http.StatusInternalServerError)

				var response v1.RuleListResponse
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

// TestRulesOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestRulesOptions() {
	tests := []struct {
		name   string
		id     string // path at the rules endpoint to test
		status int    // Expected HTTP status code
	}{
		{"No Category Rule with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Category Rule exists", createTestRule(suite.T(), v1.RuleEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/rules", tt.id)
			r := test.Request(t, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}
}

// TestRulesGetSingle verifies that requests for the resource endpoints are
// handled correctly.
func (suite *TestSuiteStandard) TestRulesGetSingle() {
	rule := createTestRule(suite.T(), v1.RuleEditable{})

	tests := []struct {
		name   string
		id     string
		status int
		method string
	}{
		{"GET Existing Category Rule", rule.Data.ID.String(), http.StatusOK, http.MethodGet},
		{"GET ID nil", uuid.Nil.String(), http.StatusNotFound, http.MethodGet},
		{"GET No Category Rule with this ID", uuid.New().String(), http.StatusNotFound, http.MethodGet},
		{"GET Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodGet},
		{"GET Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodGet},
		{"PATCH Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodPatch},
		{"PATCH Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodPatch},
		{"DELETE Invalid ID (negative number)", "-56", http.StatusBadRequest, http.MethodDelete},
		{"DELETE Invalid ID (string)", "notaUUID", http.StatusBadRequest, http.MethodDelete},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, tt.method, fmt.Sprintf("http://example.com/v1/rules/%s", tt.id), "")

			var rule v1.RuleResponse
			test.DecodeResponse(t, &r, &rule)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestRulesCreate verifies that rule creation trims the match pattern.
func (suite *TestSuiteStandard) TestRulesCreate() {
	rule := createTestRule(suite.T(), v1.RuleEditable{Priority: 2, Match: " Cafe* ", Category: "Eating out"})

	assert.Equal(suite.T(), uint(2), rule.Data.Priority)
	assert.Equal(suite.T(), "Cafe*", rule.Data.Match)
	assert.Equal(suite.T(), "Eating out", rule.Data.Category)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/rules/%s", rule.Data.ID), rule.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestRulesCreateFails() {
	// Test rule for uniqueness
	rule := createTestRule(suite.T(), v1.RuleEditable{Match: "Unique match pattern*"})

	tests := []struct {
		name     string
		body     any
		status   int                                         // expected HTTP status
		testFunc func(t *testing.T, r v1.RuleCreateResponse) // tests to perform against the response
	}{
		{
			"Broken Body", `[{ "priority": "high" }]`, http.StatusBadRequest,
			func(t *testing.T, r v1.RuleCreateResponse) {
				assert.Equal(t, "json: cannot unmarshal string into Go struct field RuleEditable.priority of type uint", *r.Error)
			},
		},
		{
			"No body", "", http.StatusBadRequest,
			func(t *testing.T, r v1.RuleCreateResponse) {
				assert.Equal(t, "the request body must not be empty", *r.Error)
			},
		},
		{
			"Empty match",
			`[{ "category": "Misc" }]`,
			http.StatusBadRequest,
			func(t *testing.T, r v1.RuleCreateResponse) {
				assert.Equal(t, "the match pattern must not be empty", *r.Data[0].Error)
			},
		},
		{
			"Duplicate match",
			[]v1.RuleEditable{
				{
					Match: rule.Data.Match,
				},
			},
			http.StatusBadRequest,
			func(t *testing.T, r v1.RuleCreateResponse) {
				assert.Equal(t, "the match pattern must be unique", *r.Data[0].Error)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/rules", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.RuleCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

// TestRulesApply verifies that transactions arriving without a category
// get one from the first matching rule.
func (suite *TestSuiteStandard) TestRulesApply() {
	createTestRule(suite.T(), v1.RuleEditable{Priority: 1, Match: "Super*", Category: "Groceries"})
	createTestRule(suite.T(), v1.RuleEditable{Priority: 2, Match: "*", Category: "Other"})

	tests := []struct {
		name     string
		create   v1.TransactionEditable
		category string
	}{
		{"First match wins", v1.TransactionEditable{Name: "Supermarket run"}, "Groceries"},
		{"Catch-all", v1.TransactionEditable{Name: "Cinema"}, "Other"},
		{"Explicit category is kept", v1.TransactionEditable{Name: "Train to Vienna", Category: "Travel"}, "Travel"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			transaction := createTestTransaction(t, tt.create)
			assert.Equal(t, tt.category, transaction.Data.Category)
		})
	}
}

func (suite *TestSuiteStandard) TestRulesGetFilter() {
	_ = createTestRule(suite.T(), v1.RuleEditable{Priority: 1, Match: "Super*", Category: "Groceries"})
	_ = createTestRule(suite.T(), v1.RuleEditable{Priority: 1, Match: "Refund*"})
	_ = createTestRule(suite.T(), v1.RuleEditable{Priority: 2, Match: "*", Category: "Other"})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"Priority 1", "priority=1", 2},
		{"Priority 2", "priority=2", 1},
		{"Priority 0", "priority=0", 0},
		{"Fuzzy match", "match=Super", 1},
		{"Fuzzy match in the middle", "match=fund", 1},
		{"Empty match", "match=", 0},
		{"Fuzzy category", "category=Other", 1},
		{"Empty category", "category=", 1},
		{"Offset 1", "offset=1", 2},
		{"Limit 1", "limit=1", 1},
		{"Limit 0", "limit=0", 0},
		{"Limit -1", "limit=-1", 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			var re v1.RuleListResponse
			r := test.Request(t, http.MethodGet, fmt.Sprintf("/v1/rules?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)
			test.DecodeResponse(t, &r, &re)

			assert.Equal(t, tt.len, len(re.Data), "Request ID: %s", r.Result().Header.Get("x-request-id"))
		})
	}
}

// TestRulesGetSorted verifies that rules are listed in evaluation order.
func (suite *TestSuiteStandard) TestRulesGetSorted() {
	createTestRule(suite.T(), v1.RuleEditable{Priority: 2, Match: "Zebra*"})
	createTestRule(suite.T(), v1.RuleEditable{Priority: 1, Match: "Beta*"})
	createTestRule(suite.T(), v1.RuleEditable{Priority: 1, Match: "Alpha*"})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/rules", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.RuleListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 3)
	assert.Equal(suite.T(), "Alpha*", response.Data[0].Match)
	assert.Equal(suite.T(), "Beta*", response.Data[1].Match)
	assert.Equal(suite.T(), "Zebra*", response.Data[2].Match)
}

func (suite *TestSuiteStandard) TestRulesPagination() {
	for i := 0; i < 10; i++ {
		createTestRule(suite.T(), v1.RuleEditable{Match: fmt.Sprint(i)})
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
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/rules?offset=%d&limit=%d", tt.offset, tt.limit), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.RuleListResponse
			test.DecodeResponse(t, &r, &response)

			assert.Equal(t, tt.expectedCount, response.Pagination.Count)
			assert.Equal(t, tt.offset, response.Pagination.Offset)
			assert.Equal(t, tt.limit, response.Pagination.Limit)
			assert.Equal(t, int64(10), response.Pagination.Total)
		})
	}
}

// Verify that updating rules works as desired
func (suite *TestSuiteStandard) TestRulesUpdate() {
	rule := createTestRule(suite.T(), v1.RuleEditable{Priority: 1, Match: "Bakery*", Category: "Groceries"})

	tests := []struct {
		name     string
		rule     map[string]any                        // the updates to perform. This is not a struct because that would set all fields on the request
		testFunc func(t *testing.T, r v1.RuleResponse) // tests to perform against the updated rule resource
	}{
		{
			"Category",
			map[string]any{
				"category": "Eating out",
			},
			func(t *testing.T, r v1.RuleResponse) {
				assert.Equal(t, "Eating out", r.Data.Category)
			},
		},
		{
			"Priority",
			map[string]any{
				"priority": 5,
			},
			func(t *testing.T, r v1.RuleResponse) {
				assert.Equal(t, uint(5), r.Data.Priority)
			},
		},
		{
			"Match",
			map[string]any{
				"match": "Boulangerie*",
			},
			func(t *testing.T, r v1.RuleResponse) {
				assert.Equal(t, "Boulangerie*", r.Data.Match)
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, rule.Data.Links.Self, tt.rule)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.RuleResponse
			test.DecodeResponse(t, &r, &response)

			if tt.testFunc != nil {
				tt.testFunc(t, response)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestRulesUpdateFails() {
	taken := createTestRule(suite.T(), v1.RuleEditable{Match: "Taken*"})
	rule := createTestRule(suite.T(), v1.RuleEditable{Match: "Bar*", Category: "Eating out"})

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Invalid type", `{"priority": "high"}`, http.StatusBadRequest},
		{"Broken JSON", `{ "priority": 2" }`, http.StatusBadRequest},
		{"Cleared match", map[string]any{"match": ""}, http.StatusBadRequest},
		{"Duplicate match", map[string]any{"match": taken.Data.Match}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, rule.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestRulesDelete verifies that rules can be deleted.
func (suite *TestSuiteStandard) TestRulesDelete() {
	rule := createTestRule(suite.T(), v1.RuleEditable{Match: "Fleeting*"})

	r := test.Request(suite.T(), http.MethodDelete, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodDelete, rule.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
