package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// getLogrusFields calls FuncTag functions on matching keys
func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data) log.Fields {
	f := make(log.Fields)
	for k, ft := range ftm {
		value := ft(c, d)
		strValue, ok := value.(string)
		if ok {
			if strValue != "" {
				f[k] = strValue
			}
		} else {
			f[k] = value
		}
	}
	return f
}

// New creates a new middleware handler
func New(config ...Config) fiber.Handler {
	var cfg Config
	if len(config) == 0 {
		cfg = ConfigDefault
	} else {
		cfg = config[0]
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	pid := os.Getpid()
	return func(c *fiber.Ctx) error {
		// данные на каждый запрос, middleware работает конкурентно
		d := &data{pid: pid, start: time.Now()}
		requestID := c.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(HeaderRequestID, requestID)

		err := c.Next()
		if err != nil {
			// статус ответа выставит обработчик ошибок fiber
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
			err = nil
		}
		d.end = time.Now()
		if c.Method() == fiber.MethodOptions {
			return err
		}

		entry := logger.WithFields(getLogrusFields(getFuncTagMap(cfg, d), c, d))
		if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			entry.Warn(getMessage(c))
		} else {
			entry.Info(getMessage(c))
		}
		return err
	}
}

func getMessage(c *fiber.Ctx) string {
	return "запрос api"
}
