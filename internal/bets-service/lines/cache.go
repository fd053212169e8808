package lines

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/paper-sportsbook-poc/pkg/contracts/events"
)

const boardKey = "lines:board"

// Cache guarda o snapshot de linhas no Redis com TTL curto
type Cache struct{ R *redis.Client }

func NewCache(r *redis.Client) *Cache { return &Cache{R: r} }

func (c *Cache) Get(ctx context.Context) ([]events.LineUpdate, bool, error) {
	b, err := c.R.Get(ctx, boardKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var board []events.LineUpdate
	if err := json.Unmarshal(b, &board); err != nil {
		return nil, false, err
	}
	return board, true, nil
}

func (c *Cache) Set(ctx context.Context, board []events.LineUpdate, ttl time.Duration) error {
	b, _ := json.Marshal(board)
	return c.R.Set(ctx, boardKey, b, ttl).Err()
}
