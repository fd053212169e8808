package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/radieske/paper-sportsbook-poc/internal/shared/kafka"
	"github.com/radieske/paper-sportsbook-poc/pkg/contracts/events"
)

// KafkaPublisher emite eventos de aposta (fire-and-forget do ponto de vista
// da operação do usuário: falha de publicação nunca falha a operação)
type KafkaPublisher struct {
	PlacedWriter  *kafka.Writer
	SettledWriter *kafka.Writer
}

func NewKafkaPublisher(placed, settled *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{PlacedWriter: placed, SettledWriter: settled}
}

func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return kafka.WriteJSON(ctx, p.PlacedWriter, e.BetID, b)
}

func (p *KafkaPublisher) PublishBetSettled(ctx context.Context, e events.BetSettled) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return kafka.WriteJSON(ctx, p.SettledWriter, e.BetID, b)
}
