package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/sportsbook-catalog-service/pkg/contracts/events"
)

// RedisBroadcaster transmite avisos de desativação em cascata para os
// front-ends via pub/sub (fan-out, não cache)
type RedisBroadcaster struct {
	r       *redis.Client
	channel string
}

func NewRedisBroadcaster(r *redis.Client, channel string) *RedisBroadcaster {
	return &RedisBroadcaster{r: r, channel: channel}
}

// PublishStatusNotice emite um StatusNotice no canal configurado
func (b *RedisBroadcaster) PublishStatusNotice(ctx context.Context, n events.StatusNotice) error {
	n.TsUnixMs = time.Now().UnixMilli()
	payload, _ := json.Marshal(n)
	return b.r.Publish(ctx, b.channel, payload).Err()
}
