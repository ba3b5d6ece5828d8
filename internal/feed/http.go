package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPSource pulls incidents from a WMATA-style JSON endpoint. The API key is
// passed through as-is in the api_key header; anything beyond that is the
// operator's problem.
type HTTPSource struct {
	Endpoint string
	APIKey   string
	Client   *http.Client
}

func NewHTTPSource(endpoint, apiKey string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPSource{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Client:   &http.Client{Timeout: timeout},
	}
}

// Wire shape of the incidents endpoint. Only the two fields we keep are
// decoded; the rest of the payload is deprecated or unstable upstream.
type incidentsPayload struct {
	Incidents []struct {
		DateUpdated string `json:"DateUpdated"`
		Description string `json:"Description"`
	} `json:"Incidents"`
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]RawIncident, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	if s.APIKey != "" {
		req.Header.Set("api_key", s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch incidents: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("fetch incidents: feed returned %s", resp.Status)
	}

	var payload incidentsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode incidents: %w", err)
	}

	out := make([]RawIncident, 0, len(payload.Incidents))
	for _, in := range payload.Incidents {
		out = append(out, RawIncident{Timestamp: in.DateUpdated, Description: in.Description})
	}
	return out, nil
}
