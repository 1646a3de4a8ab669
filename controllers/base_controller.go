package controllers

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/fiberlog"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	"hr-pipeline-backend/middleware"
	apimodels "hr-pipeline-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (uint, error) {
	return c.GetUintParam(ctx, "id")
}

func (c *BaseAPIController) GetUintParam(ctx *fiber.Ctx, name string) (uint, error) {
	value, err := strconv.ParseUint(ctx.Params(name), 10, 64)
	if err != nil || value == 0 {
		return 0, errors.Errorf("некорректный параметр %v", name)
	}
	return uint(value), nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("request_id", string(ctx.Response().Header.Peek(fiberlog.HeaderRequestID))).
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError ответ по типу ошибки обработчика, неизвестные ошибки пишутся в лог как 500
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	switch {
	case apperrors.IsNotFound(err):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case apperrors.IsForbidden(err):
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError(err.Error()))
	case apperrors.IsValidation(err):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	case apperrors.IsConflict(err):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

func (c *BaseAPIController) ReadFormFile(ctx *fiber.Ctx, name string) (file *multipart.FileHeader, body []byte, err error) {
	file, err = ctx.FormFile(name)
	if err != nil {
		return nil, nil, apperrors.NewValidation("файл не передан")
	}
	buffer, err := file.Open()
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка открытия файла")
	}
	defer buffer.Close()
	body, err = io.ReadAll(buffer)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка чтения файла")
	}
	return file, body, nil
}

func (c *BaseAPIController) SendAttachment(ctx *fiber.Ctx, body []byte, contentType, fileName string) error {
	ctx.Attachment(fileName)
	if contentType != "" {
		ctx.Set(fiber.HeaderContentType, contentType)
	}
	return ctx.Send(body)
}
