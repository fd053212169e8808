package lines

import (
	"context"
	"time"

	"github.com/radieske/paper-sportsbook-poc/pkg/contracts/events"
)

// Service resolve o quadro de linhas preferencialmente do cache,
// recorrendo à fonte externa no miss
type Service struct {
	Client *Client
	Cache  *Cache
	TTL    time.Duration
}

func NewService(c *Client, cache *Cache) *Service {
	return &Service{Client: c, Cache: cache, TTL: 30 * time.Second}
}

func (s *Service) Current(ctx context.Context) ([]events.LineUpdate, error) {
	if s.Cache != nil {
		if board, ok, _ := s.Cache.Get(ctx); ok {
			return board, nil
		}
	}

	board, err := s.Client.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		_ = s.Cache.Set(ctx, board, s.TTL) // cache best-effort
	}
	return board, nil
}

// FindGame localiza um jogo no quadro pelo id externo
func FindGame(board []events.LineUpdate, externalID string) *events.LineUpdate {
	for i := range board {
		if board[i].GameID == externalID {
			return &board[i]
		}
	}
	return nil
}

// SideQuote retorna a cotação do lado pedido; nil quando o lado não é ofertado
func SideQuote(g *events.LineUpdate, side string) *events.SpreadQuote {
	switch side {
	case "home":
		return g.Home
	case "away":
		return g.Away
	}
	return nil
}
