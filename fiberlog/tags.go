package fiberlog

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid       = "pid"
	TagRequestID = "request_id"
	TagMethod    = "method"
	TagPath      = "path"
	TagURL       = "url"
	TagIP        = "ip"
	TagStatus    = "status"
	TagLatency   = "latency"
	TagBody      = "body"
	TagResBody   = "res_body"
	TagQuery     = "query"
	TagUserID    = "user_id"
)

// HeaderRequestID заголовок с идентификатором запроса
const HeaderRequestID = "X-Request-ID"

// LocalsUserID ключ в ctx.Locals, куда middleware авторизации кладёт ид пользователя
const LocalsUserID = "fiberlog_user_id"

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config, d *data) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagRequestID: func(c *fiber.Ctx, d *data) interface{} {
			return string(c.Response().Header.Peek(HeaderRequestID))
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagURL: func(c *fiber.Ctx, d *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return fmt.Sprintf("%v", d.end.Sub(d.start).Round(time.Millisecond))
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			return cut(string(c.Body()), cfg.MaxBodyLen)
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			return cut(string(c.Response().Body()), cfg.MaxBodyLen)
		},
		TagQuery: func(c *fiber.Ctx, d *data) interface{} {
			return string(c.Request().URI().QueryString())
		},
		TagUserID: func(c *fiber.Ctx, d *data) interface{} {
			if userID, ok := c.Locals(LocalsUserID).(uint); ok {
				return userID
			}
			return ""
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func cut(value string, maxLen int) string {
	if maxLen <= 0 || len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "..."
}
