package fiberlog

import "github.com/sirupsen/logrus"

// Config is config for middleware
type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// MaxBodyLen обрезка тела запроса/ответа в логе, 0 без ограничения
	MaxBodyLen int
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagRequestID,
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		TagUserID,
	},
	MaxBodyLen: 2048,
}
