package initializers

import (
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/fiberlog"
)

const httpLogMaxBody = 2048

// InitLogger общий логгер сервиса и отдельный логгер HTTP-запросов.
// Тело запроса не пишется, в нём бывают пароли
func InitLogger() *fiberlog.Config {
	log.SetFormatter(jsonFormatter())
	log.SetLevel(parseLevel(config.Conf.Log.Level, log.InfoLevel))

	httpLogger := log.New()
	httpLogger.SetFormatter(jsonFormatter())
	httpLogger.SetLevel(parseLevel(config.Conf.Log.HTTPLevel, log.DebugLevel))
	return &fiberlog.Config{
		Logger: httpLogger,
		Tags: []string{
			fiberlog.TagRequestID,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagQuery,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagUserID,
		},
		MaxBodyLen: httpLogMaxBody,
	}
}

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

func parseLevel(value string, fallback log.Level) log.Level {
	level, err := log.ParseLevel(value)
	if err != nil {
		log.WithField("level", value).Warn("неизвестный уровень логирования, используется " + fallback.String())
		return fallback
	}
	return level
}
