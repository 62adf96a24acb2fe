package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ayush9889/score-wise/internal/domain/match"
	"github.com/ayush9889/score-wise/internal/domain/model"
)

// client is a thin JSON client for the scoring API.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
	}
}

// apiError mirrors the service's error response shape.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// post sends body as JSON and decodes a snapshot response.
func (c *client) post(ctx context.Context, path string, body any) (*match.Snapshot, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	return decodeSnapshot(resp)
}

func decodeSnapshot(resp *http.Response) (*match.Snapshot, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Code != "" {
			return nil, apiErr
		}
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	var snap match.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// createMatch registers a new match.
func (c *client) createMatch(ctx context.Context, cfg model.Config) (*match.Snapshot, error) {
	return c.post(ctx, "/matches", cfg)
}

// recordBall submits one delivery.
func (c *client) recordBall(ctx context.Context, matchID string, b model.Ball) (*match.Snapshot, error) {
	return c.post(ctx, "/matches/"+matchID+"/balls", b)
}

// startSecondInnings opens the chase.
func (c *client) startSecondInnings(ctx context.Context, matchID string, o model.Openers) (*match.Snapshot, error) {
	return c.post(ctx, "/matches/"+matchID+"/innings", o)
}

// setManOfTheMatch records the award.
func (c *client) setManOfTheMatch(ctx context.Context, matchID, player string) (*match.Snapshot, error) {
	return c.post(ctx, "/matches/"+matchID+"/motm", map[string]string{"player": player})
}
