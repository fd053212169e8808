package lines

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/radieske/paper-sportsbook-poc/pkg/contracts/events"
)

// Client consome a fonte externa de linhas (quote source) via pull HTTP
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

// Fetch busca o snapshot atual de spreads por jogo.
// Um lado ausente (Home/Away nil) é caso válido: aposta não ofertada.
func (c *Client) Fetch(ctx context.Context) ([]events.LineUpdate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/lines", nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lines fetch: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("lines source http %d", res.StatusCode)
	}

	var board []events.LineUpdate
	if err := json.NewDecoder(res.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("lines decode: %w", err)
	}
	return board, nil
}
