package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/lib/events"
)

// InitEvents публикация событий в redis, без REDIS_URL события не отправляются
func InitEvents(ctx context.Context) {
	if config.Conf.Redis.URL == "" {
		log.Warn("redis не настроен, публикация событий отключена")
		return
	}
	client, err := events.NewRedisClient(ctx, config.Conf.Redis.URL)
	if err != nil {
		log.WithError(err).Error("ошибка подключения к redis, публикация событий отключена")
		return
	}
	events.NewHandler(client)
	log.Info("публикация событий в redis включена")
}
