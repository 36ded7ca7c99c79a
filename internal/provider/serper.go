package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const serperEndpoint = "https://google.serper.dev/search"

type SerperClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewSerperClient(apiKey string, timeout time.Duration) *SerperClient {
	return &SerperClient{
		apiKey:   apiKey,
		endpoint: serperEndpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *SerperClient) Name() string {
	return "serper"
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"organic"`
}

func (c *SerperClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	body, err := json.Marshal(map[string]string{"q": query})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Warn().Err(err).Dur("elapsed", elapsed).Msg("serper search failed")
		return nil, fmt.Errorf("serper request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("serper search failed")
		return nil, fmt.Errorf("serper returned status %d", resp.StatusCode)
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode serper response: %w", err)
	}

	results := make([]SearchResult, 0, len(parsed.Organic))
	for _, item := range parsed.Organic {
		results = append(results, SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			URL:     item.Link,
		})
	}

	log.Debug().Int("results", len(results)).Dur("elapsed", elapsed).Msg("serper search ok")
	return results, nil
}
