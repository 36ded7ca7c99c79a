package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

const serpAPIEndpoint = "https://serpapi.com/search.json"

type SerpAPIClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewSerpAPIClient(apiKey string, timeout time.Duration) *SerpAPIClient {
	return &SerpAPIClient{
		apiKey:   apiKey,
		endpoint: serpAPIEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *SerpAPIClient) Name() string {
	return "serpapi"
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic_results"`
}

func (c *SerpAPIClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("engine", "google")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Warn().Err(err).Dur("elapsed", elapsed).Msg("serpapi search failed")
		return nil, fmt.Errorf("serpapi request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("serpapi search failed")
		return nil, fmt.Errorf("serpapi returned status %d", resp.StatusCode)
	}

	var parsed serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode serpapi response: %w", err)
	}

	results := make([]SearchResult, 0, len(parsed.OrganicResults))
	for _, item := range parsed.OrganicResults {
		results = append(results, SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     item.Link,
		})
	}

	log.Debug().Int("results", len(results)).Dur("elapsed", elapsed).Msg("serpapi search ok")
	return results, nil
}
