package fiberlog

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	app := fiber.New()
	app.Use(New(Config{
		Logger: logger,
		Tags:   []string{TagRequestID, TagStatus, TagMethod, TagPath, TagBody},
	}))
	app.Post("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	t.Run(`success logged as info with request id`, func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(fiber.MethodPost, "/ok", bytes.NewBufferString(`{"a":1}`))
		req.Header.Set(HeaderRequestID, "req-1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, "req-1", resp.Header.Get(HeaderRequestID))

		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "info", entry["level"])
		require.Equal(t, "req-1", entry[TagRequestID])
		require.Equal(t, "/ok", entry[TagPath])
		require.Equal(t, `{"a":1}`, entry[TagBody])
	})

	t.Run(`error status logged as warning`, func(t *testing.T) {
		buf.Reset()
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		require.NotEmpty(t, resp.Header.Get(HeaderRequestID))

		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "warning", entry["level"])
		require.Equal(t, float64(fiber.StatusNotFound), entry[TagStatus])
	})
}
