package usershandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	testdb "hr-pipeline-backend/lib/utils/test-db"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	userapimodels "hr-pipeline-backend/models/api/user"
)

func newUser(username string, role models.UserRole) userapimodels.UserCreateData {
	return userapimodels.UserCreateData{
		UserData: userapimodels.UserData{
			Username: username,
			Email:    username + "@example.com",
			Role:     role,
		},
		Password: "secret1",
	}
}

func TestCreate(t *testing.T) {
	conn := testdb.New(t)
	handler := NewInstance(conn)

	id, err := handler.Create(newUser("rh.lead", models.RHRole))
	require.NoError(t, err)
	view, err := handler.GetByID(id)
	require.NoError(t, err)
	require.True(t, view.IsActive)
	require.Equal(t, "rh.lead", view.FullName)

	t.Run(`duplicate username`, func(t *testing.T) {
		_, err := handler.Create(newUser("RH.LEAD", models.RHRole))
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`bad role`, func(t *testing.T) {
		_, err := handler.Create(newUser("someone", "Admin"))
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`short password`, func(t *testing.T) {
		data := newUser("short", models.CORole)
		data.Password = "123"
		_, err := handler.Create(data)
		require.True(t, apperrors.IsValidation(err))
	})
}

func TestList(t *testing.T) {
	conn := testdb.New(t)
	handler := NewInstance(conn)
	rhID, err := handler.Create(newUser("rh", models.RHRole))
	require.NoError(t, err)
	coID, err := handler.Create(newUser("co", models.CORole))
	require.NoError(t, err)
	_, err = handler.Create(newUser("manager", models.ManagerRole))
	require.NoError(t, err)

	list, rowCount, err := handler.List(apimodels.Pagination{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), rowCount)
	require.Len(t, list, 2)

	byRole, err := handler.ListByRoles([]models.UserRole{models.RHRole, models.CORole})
	require.NoError(t, err)
	require.Len(t, byRole, 2)

	t.Run(`inactive users excluded from role pool`, func(t *testing.T) {
		actor := models.Actor{UserID: rhID, Role: models.RHRole}
		require.NoError(t, handler.SetActive(actor, coID, false))
		byRole, err := handler.ListByRoles([]models.UserRole{models.CORole})
		require.NoError(t, err)
		require.Empty(t, byRole)

		err = handler.SetActive(actor, rhID, false)
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`ensure admin is idempotent`, func(t *testing.T) {
		require.NoError(t, handler.EnsureAdmin(newUser("admin", models.CORole)))
		require.NoError(t, handler.EnsureAdmin(newUser("admin", models.CORole)))
		byRole, err := handler.ListByRoles([]models.UserRole{models.RHRole})
		require.NoError(t, err)
		require.Len(t, byRole, 2)
	})
}
