package events

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Provider публикация доменных событий для внешних подписчиков (аналитика, интеграции).
// Ошибки публикации не влияют на основную операцию.
type Provider interface {
	Publish(ctx context.Context, channel string, payload interface{})
}

var Instance Provider = noop{}

func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrapf(err, "некорректный адрес redis %q", redisURL)
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis недоступен")
	}
	return client, nil
}

func NewHandler(client *redis.Client) {
	Instance = NewInstance(client)
}

func NewInstance(client *redis.Client) Provider {
	if client == nil {
		return noop{}
	}
	return &impl{
		client: client,
	}
}

type impl struct {
	client *redis.Client
}

func (i impl) Publish(ctx context.Context, channel string, payload interface{}) {
	logger := log.WithField("channel", channel)
	body, err := json.Marshal(payload)
	if err != nil {
		logger.WithError(err).Error("ошибка сериализации события")
		return
	}
	if err = i.client.Publish(ctx, channel, body).Err(); err != nil {
		logger.WithError(err).Error("ошибка публикации события")
		return
	}
	logger.Debug("событие опубликовано")
}

type noop struct{}

func (noop) Publish(ctx context.Context, channel string, payload interface{}) {}
