package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerperSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("parses organic results", func(t *testing.T) {
		var gotAPIKey string
		var gotQuery string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAPIKey = r.Header.Get("X-API-KEY")
			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			gotQuery = payload["q"]

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"organic":[
				{"title":"Fact check","snippet":"The claim is false","link":"https://example.org/fc"},
				{"title":"Report","snippet":"Background","link":"https://example.org/r"}
			]}`))
		}))
		defer server.Close()

		c := NewSerperClient("key-1", 5*time.Second)
		c.endpoint = server.URL

		results, err := c.Search(ctx, "the earth is flat")
		require.NoError(t, err)

		assert.Equal(t, "key-1", gotAPIKey)
		assert.Equal(t, "the earth is flat", gotQuery)
		require.Len(t, results, 2)
		assert.Equal(t, "Fact check", results[0].Title)
		assert.Equal(t, "https://example.org/fc", results[0].URL)
	})

	t.Run("errors on non-2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		c := NewSerperClient("bad-key", 5*time.Second)
		c.endpoint = server.URL

		_, err := c.Search(ctx, "query")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("empty organic block yields no results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		c := NewSerperClient("key-1", 5*time.Second)
		c.endpoint = server.URL

		results, err := c.Search(ctx, "query")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
