package v1_test

import (
	"net/http"
	"testing"

	"github.com/splitpot/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/", "OPTIONS, GET"},
		{"http://example.com/healthz", "OPTIONS, GET"},
		{"http://example.com/version", "OPTIONS, GET"},
		{"http://example.com/v1", "OPTIONS, GET, DELETE"},
		{"http://example.com/v1/events", "OPTIONS, GET"},
		{"http://example.com/v1/import", "OPTIONS, POST"},
		{"http://example.com/v1/ledgers", "OPTIONS, GET, POST"},
		{"http://example.com/v1/members", "OPTIONS, GET, POST"},
		{"http://example.com/v1/rules", "OPTIONS, GET, POST"},
		{"http://example.com/v1/transactions", "OPTIONS, GET, POST"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, recorder.Header().Get("allow"), tt.response)
		})
	}
}
