package apperrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// NotFoundError запись не найдена
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s не найден(а): %v", e.Entity, e.ID)
}

// ForbiddenError у пользователя нет прав на операцию
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string {
	return e.Msg
}

// ValidationError некорректные входные данные или недопустимый переход
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ConflictError запись была изменена параллельным запросом
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

// StorageError ошибка хранилища, операция откатывается целиком
type StorageError struct {
	Msg   string
	Cause error
}

func (e *StorageError) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Cause.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

func NewNotFound(entity string, id interface{}) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func NewForbidden(msg string) error {
	return &ForbiddenError{Msg: msg}
}

func NewValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

func NewValidationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func NewConflict(msg string) error {
	return &ConflictError{Msg: msg}
}

// NewStorage оборачивает ошибку хранилища. Ошибки из таксономии возвращаются как есть.
func NewStorage(err error, msg string) error {
	if err == nil {
		return nil
	}
	if IsKnown(err) {
		return err
	}
	return &StorageError{Msg: msg, Cause: err}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target *ForbiddenError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target *StorageError
	return errors.As(err, &target)
}

// IsKnown ошибка уже относится к одному из типов таксономии
func IsKnown(err error) bool {
	return IsNotFound(err) || IsForbidden(err) || IsValidation(err) || IsConflict(err) || IsStorage(err)
}
