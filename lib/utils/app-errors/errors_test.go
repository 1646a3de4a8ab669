package apperrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	t.Run(`typed errors survive wrapping`, func(t *testing.T) {
		err := errors.Wrap(NewNotFound("кандидат", uint(7)), "обновление")
		require.True(t, IsNotFound(err))
		require.False(t, IsForbidden(err))

		err = errors.Wrap(NewForbidden("нет прав"), "обновление")
		require.True(t, IsForbidden(err))
		require.Equal(t, "обновление: нет прав", err.Error())
	})
	t.Run(`storage wraps only unknown errors`, func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewStorage(cause, "ошибка сохранения")
		require.True(t, IsStorage(err))
		require.ErrorIs(t, err, cause)

		validation := NewValidation("пустое имя")
		require.Equal(t, validation, NewStorage(validation, "ошибка сохранения"))
		require.Nil(t, NewStorage(nil, "ошибка сохранения"))
	})
}
