package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ResourceFetcher retrieves external artifacts (audio clips, résumé
// documents, portfolio pages) over HTTP.
type ResourceFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type httpFetcher struct {
	client *http.Client
}

func NewHTTPFetcher() ResourceFetcher {
	return &httpFetcher{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Fetch implements ResourceFetcher. Transport failures and non-2xx statuses
// both surface as FetchError.
func (f *httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: err.Error()}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Reason: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: err.Error()}
	}

	return body, nil
}
