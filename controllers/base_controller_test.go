package controllers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
)

func TestSendError(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	cases := map[string]error{
		"/not-found":  apperrors.NewNotFound("кандидат", 1),
		"/forbidden":  apperrors.NewForbidden("нет доступа"),
		"/validation": apperrors.NewValidation("неверные данные"),
		"/conflict":   apperrors.NewConflict("запись изменена"),
		"/storage":    apperrors.NewStorage(errors.New("db down"), "ошибка"),
	}
	for path, err := range cases {
		err := err
		app.Get(path, func(ctx *fiber.Ctx) error {
			return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка")
		})
	}
	expected := map[string]int{
		"/not-found":  fiber.StatusNotFound,
		"/forbidden":  fiber.StatusForbidden,
		"/validation": fiber.StatusBadRequest,
		"/conflict":   fiber.StatusConflict,
		"/storage":    fiber.StatusInternalServerError,
	}
	for path, status := range expected {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		require.Equal(t, status, resp.StatusCode, path)
	}
}

func TestGetID(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	app.Get("/items/:id", func(ctx *fiber.Ctx) error {
		id, err := c.GetID(ctx)
		if err != nil {
			return ctx.SendStatus(fiber.StatusBadRequest)
		}
		return ctx.JSON(id)
	})

	t.Run(`valid id`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/items/12", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
	t.Run(`zero and text rejected`, func(t *testing.T) {
		for _, path := range []string{"/items/0", "/items/abc"} {
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
		}
	})
}

func TestSendAttachment(t *testing.T) {
	c := BaseAPIController{}
	app := fiber.New()
	app.Get("/pdf", func(ctx *fiber.Ctx) error {
		return c.SendAttachment(ctx, []byte("%PDF-1.3"), "application/pdf", "offre_1.pdf")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/pdf", nil))
	require.NoError(t, err)
	require.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	require.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "offre_1.pdf")
}
