package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mesh-intelligence/datagrid/pkg/types"
)

// maxResponseBytes caps the search response body.
const maxResponseBytes = 8 << 20

// TVMaze fetches show search results. Each result is a row with a score
// and a nested show object.
type TVMaze struct {
	Endpoint string
	Query    string
	Client   *http.Client
}

// NewTVMaze returns a TVMaze source with defaults filled in from cfg.
func NewTVMaze(cfg types.TVMazeConfig) *TVMaze {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = types.DefaultTVMazeEndpoint
	}
	query := cfg.Query
	if query == "" {
		query = types.DefaultTVMazeQuery
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = types.DefaultTVMazeTimeout
	}
	return &TVMaze{
		Endpoint: endpoint,
		Query:    query,
		Client:   &http.Client{Timeout: timeout},
	}
}

// URL returns the search request URL.
func (s *TVMaze) URL() (string, error) {
	u, err := url.Parse(s.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", s.Query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch issues one GET and decodes the result array.
func (s *TVMaze) Fetch(ctx context.Context) ([]types.Row, error) {
	target, err := s.URL()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: types.DefaultTVMazeTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", target, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	rows, err := decodeResults(body)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func decodeResults(body []byte) ([]types.Row, error) {
	var results []json.RawMessage
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedRecord, err)
	}
	rows := make([]types.Row, 0, len(results))
	for i, rec := range results {
		row, err := decodeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("result %d: %w", i, err)
		}
		if _, err := row.Lookup("show"); err != nil {
			return nil, fmt.Errorf("result %d: %w: missing show", i, types.ErrMalformedRecord)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
