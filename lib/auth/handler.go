package authhandler

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	usersstore "hr-pipeline-backend/lib/users/store"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
	authapimodels "hr-pipeline-backend/models/api/auth"
	userapimodels "hr-pipeline-backend/models/api/user"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Login(username, password string) (*authapimodels.JWTResponse, error)
	RefreshToken(refreshToken string) (*authapimodels.JWTResponse, error)
	Me(userID uint) (*userapimodels.UserView, error)
	ChangePassword(userID uint, data authapimodels.ChangePasswordRequest) error
}

var Instance Provider

func NewHandler(DB *gorm.DB) {
	Instance = NewInstance(DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		store: usersstore.NewInstance(DB),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) Login(username, password string) (*authapimodels.JWTResponse, error) {
	rec, err := i.store.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения пользователя")
	}
	if rec == nil || !rec.IsActive || !authutils.CheckPassword(rec.Password, password) {
		log.WithField("username", username).Warn("неудачная попытка входа")
		return nil, apperrors.NewForbidden("неверный логин или пароль")
	}
	if err = i.store.Update(rec.ID, map[string]interface{}{"last_login": time.Now()}); err != nil {
		log.
			WithField("user_id", rec.ID).
			WithError(err).
			Error("ошибка сохранения даты входа")
	}
	return issueTokens(*rec)
}

func (i impl) RefreshToken(refreshToken string) (*authapimodels.JWTResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewForbidden(err.Error())
	}
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения пользователя")
	}
	if rec == nil || !rec.IsActive {
		return nil, apperrors.NewForbidden("пользователь не найден или заблокирован")
	}
	return issueTokens(*rec)
}

func (i impl) Me(userID uint) (*userapimodels.UserView, error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения пользователя")
	}
	if rec == nil || !rec.IsActive {
		return nil, apperrors.NewNotFound("пользователь", userID)
	}
	result := userapimodels.Convert(*rec)
	return &result, nil
}

func (i impl) ChangePassword(userID uint, data authapimodels.ChangePasswordRequest) error {
	if err := data.Validate(); err != nil {
		return apperrors.NewValidation(err.Error())
	}
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return apperrors.NewStorage(err, "ошибка получения пользователя")
	}
	if rec == nil || !rec.IsActive {
		return apperrors.NewNotFound("пользователь", userID)
	}
	if !authutils.CheckPassword(rec.Password, data.OldPassword) {
		return apperrors.NewValidation("текущий пароль указан неверно")
	}
	hash, err := authutils.HashPassword(data.NewPassword)
	if err != nil {
		return apperrors.NewStorage(err, "ошибка формирования пароля")
	}
	if err = i.store.Update(userID, map[string]interface{}{"password": hash}); err != nil {
		return apperrors.NewStorage(err, "ошибка сохранения пароля")
	}
	log.WithField("user_id", userID).Info("пароль изменён")
	return nil
}

func issueTokens(rec dbmodels.User) (*authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(rec.ID, rec.GetFullName(), rec.Role)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка формирования токена")
	}
	refreshToken, err := authutils.GetRefreshToken(rec.ID, rec.GetFullName())
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка формирования токена")
	}
	return &authapimodels.JWTResponse{
		Token:        token,
		RefreshToken: refreshToken,
	}, nil
}
