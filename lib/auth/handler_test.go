package authhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"hr-pipeline-backend/config"
	usershandler "hr-pipeline-backend/lib/users"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	testdb "hr-pipeline-backend/lib/utils/test-db"
	"hr-pipeline-backend/models"
	authapimodels "hr-pipeline-backend/models/api/auth"
	userapimodels "hr-pipeline-backend/models/api/user"
)

func initTestConfig(t *testing.T) {
	prev := config.Conf
	conf := &config.Configuration{}
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 60
	conf.Auth.JWTRefreshExpireInSec = 120
	config.Conf = conf
	t.Cleanup(func() {
		config.Conf = prev
	})
}

func TestLogin(t *testing.T) {
	initTestConfig(t)
	conn := testdb.New(t)
	users := usershandler.NewInstance(conn)
	handler := NewInstance(conn)
	userID, err := users.Create(userapimodels.UserCreateData{
		UserData: userapimodels.UserData{
			Username:  "c.dupont",
			FirstName: "Claire",
			LastName:  "Dupont",
			Role:      models.ManagerRole,
		},
		Password: "motdepasse",
	})
	require.NoError(t, err)

	t.Run(`valid credentials`, func(t *testing.T) {
		resp, err := handler.Login("C.Dupont", "motdepasse")
		require.NoError(t, err)
		require.NotEmpty(t, resp.Token)
		require.NotEmpty(t, resp.RefreshToken)

		me, err := handler.Me(userID)
		require.NoError(t, err)
		require.Equal(t, models.ManagerRole, me.Role)
		require.NotEmpty(t, me.LastLogin)
	})

	t.Run(`wrong password`, func(t *testing.T) {
		_, err := handler.Login("c.dupont", "autre")
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`unknown user`, func(t *testing.T) {
		_, err := handler.Login("personne", "motdepasse")
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`refresh`, func(t *testing.T) {
		resp, err := handler.Login("c.dupont", "motdepasse")
		require.NoError(t, err)
		refreshed, err := handler.RefreshToken(resp.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, refreshed.Token)

		// access токен не подходит для обновления
		_, err = handler.RefreshToken(resp.Token)
		require.True(t, apperrors.IsForbidden(err))
	})

	t.Run(`inactive user`, func(t *testing.T) {
		rh := testdb.AddUser(t, conn, models.RHRole, "rh")
		require.NoError(t, users.SetActive(rh.ToActor(), userID, false))
		_, err := handler.Login("c.dupont", "motdepasse")
		require.True(t, apperrors.IsForbidden(err))
		_, err = handler.Me(userID)
		require.True(t, apperrors.IsNotFound(err))
	})
}

func TestChangePassword(t *testing.T) {
	initTestConfig(t)
	conn := testdb.New(t)
	handler := NewInstance(conn)
	userID, err := usershandler.NewInstance(conn).Create(userapimodels.UserCreateData{
		UserData: userapimodels.UserData{
			Username:  "m.martin",
			FirstName: "Marc",
			LastName:  "Martin",
			Role:      models.RHRole,
		},
		Password: "ancienmdp",
	})
	require.NoError(t, err)

	t.Run(`wrong old password`, func(t *testing.T) {
		err := handler.ChangePassword(userID, authapimodels.ChangePasswordRequest{
			OldPassword: "inconnu",
			NewPassword: "nouveaumdp",
		})
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`too short`, func(t *testing.T) {
		err := handler.ChangePassword(userID, authapimodels.ChangePasswordRequest{
			OldPassword: "ancienmdp",
			NewPassword: "abc",
		})
		require.True(t, apperrors.IsValidation(err))
	})

	t.Run(`changed`, func(t *testing.T) {
		err := handler.ChangePassword(userID, authapimodels.ChangePasswordRequest{
			OldPassword: "ancienmdp",
			NewPassword: "nouveaumdp",
		})
		require.NoError(t, err)
		_, err = handler.Login("m.martin", "ancienmdp")
		require.True(t, apperrors.IsForbidden(err))
		_, err = handler.Login("m.martin", "nouveaumdp")
		require.NoError(t, err)
	})
}
