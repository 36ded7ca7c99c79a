package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerpAPISearch(t *testing.T) {
	ctx := context.Background()

	t.Run("parses organic_results from query params", func(t *testing.T) {
		var gotQuery, gotAPIKey, gotEngine string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			gotAPIKey = r.URL.Query().Get("api_key")
			gotEngine = r.URL.Query().Get("engine")

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"organic_results":[
				{"title":"Analysis","snippet":"Context here","link":"https://example.org/a"}
			]}`))
		}))
		defer server.Close()

		c := NewSerpAPIClient("key-2", 5*time.Second)
		c.endpoint = server.URL

		results, err := c.Search(ctx, "some claim")
		require.NoError(t, err)

		assert.Equal(t, "some claim", gotQuery)
		assert.Equal(t, "key-2", gotAPIKey)
		assert.Equal(t, "google", gotEngine)
		require.Len(t, results, 1)
		assert.Equal(t, "Analysis", results[0].Title)
		assert.Equal(t, "https://example.org/a", results[0].URL)
	})

	t.Run("errors on non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewSerpAPIClient("key-2", 5*time.Second)
		c.endpoint = server.URL

		_, err := c.Search(ctx, "query")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}
