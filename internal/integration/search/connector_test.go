package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/config"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/entity"
	"github.com/ModawnAI/samsung-geo-tool-sub004/internal/pkg/retry"
	pkghttp "github.com/ModawnAI/samsung-geo-tool-sub004/pkg/http"
)

func testConfig(url string) config.SearchConnectorConfig {
	return config.SearchConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			RequestTimeout: 5 * time.Second,
			Token:          "search-key",
			Url:            url,
		},
		SearchEndpoint:  "/search",
		ResultsPerQuery: 5,
		SearchDepth:     "basic",
		Retry:           retry.RetryConfig{Attempts: 2, Delay: time.Millisecond, MaxDelay: time.Millisecond},
	}
}

func TestConnector_Search(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer search-key", r.Header.Get("Authorization"))

		var req entity.WebSearchRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Galaxy S25 review", req.Query)
		assert.Equal(t, 5, req.MaxResults)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"title":"Review","url":"https://r.example","content":"great camera","published_date":"2025-02-03T00:00:00Z"}]}`))
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())

	results, err := c.Search(context.Background(), "Galaxy S25 review")
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, results, 1)
	assert.Equal(t, "great camera", results[0].Snippet)
	assert.Equal(t, "https://r.example", results[0].URL)
}

func TestConnector_SearchClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())

	_, err := c.Search(context.Background(), "q")

	var httpErr *pkghttp.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestConnector_SearchToleratesPublishedDateLayouts(t *testing.T) {
	tests := []struct {
		name string
		date string
		want *time.Time
	}{
		{name: "date only", date: `"2025-02-03"`, want: ptrTime(time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC))},
		{name: "rfc1123", date: `"Mon, 03 Feb 2025 10:00:00 GMT"`, want: ptrTime(time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC))},
		{name: "empty", date: `""`},
		{name: "garbage", date: `"last tuesday"`},
		{name: "null", date: `null`},
		{name: "number", date: `1738540800`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"results":[` +
					`{"title":"A","url":"https://a.example","content":"camera","published_date":` + tt.date + `},` +
					`{"title":"B","url":"https://b.example","content":"battery"}]}`))
			}))
			defer srv.Close()

			c := NewConnector(testConfig(srv.URL), zap.NewNop())

			results, err := c.Search(context.Background(), "q")
			require.NoError(t, err)
			require.Len(t, results, 2)

			assert.Equal(t, "camera", results[0].Snippet)
			if tt.want == nil {
				assert.Nil(t, results[0].PublishedDate)
			} else {
				require.NotNil(t, results[0].PublishedDate)
				assert.True(t, tt.want.Equal(*results[0].PublishedDate))
			}
			assert.Nil(t, results[1].PublishedDate)
		})
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
