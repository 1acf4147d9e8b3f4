package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/radieske/sportsbook-catalog-service/pkg/contracts/events"
)

// KafkaPublisher publica mudanças do catálogo no tópico catalog_changes
type KafkaPublisher struct {
	Writer *kafka.Writer
	Topic  string
}

func NewKafkaPublisher(w *kafka.Writer, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

// PublishCatalogChange emite um CatalogChange com id e timestamp preenchidos
func (p *KafkaPublisher) PublishCatalogChange(ctx context.Context, e events.CatalogChange) error {
	e.ChangeID = uuid.NewString()
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(e.Entity), Value: b})
}
