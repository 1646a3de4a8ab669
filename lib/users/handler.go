package usershandler

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	usersstore "hr-pipeline-backend/lib/users/store"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
	"hr-pipeline-backend/models"
	apimodels "hr-pipeline-backend/models/api"
	userapimodels "hr-pipeline-backend/models/api/user"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	Create(data userapimodels.UserCreateData) (id uint, err error)
	GetByID(id uint) (*userapimodels.UserView, error)
	List(pagination apimodels.Pagination) (list []userapimodels.UserView, rowCount int64, err error)
	ListByRoles(roles []models.UserRole) ([]userapimodels.UserView, error)
	SetActive(actor models.Actor, id uint, active bool) error
	EnsureAdmin(data userapimodels.UserCreateData) error
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

func (i impl) Create(data userapimodels.UserCreateData) (id uint, err error) {
	if err = data.Validate(); err != nil {
		return 0, apperrors.NewValidation(err.Error())
	}
	username := strings.TrimSpace(data.Username)
	exist, err := i.store.FindByUsername(username)
	if err != nil {
		return 0, apperrors.NewStorage(err, "ошибка проверки уже существующего пользователя")
	}
	if exist != nil {
		return 0, apperrors.NewValidationf("пользователь с логином %q уже существует", username)
	}
	hash, err := authutils.HashPassword(data.Password)
	if err != nil {
		return 0, err
	}
	rec := dbmodels.User{
		Username:  username,
		Password:  hash,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
		IsActive:  true,
		Role:      data.Role,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		log.
			WithField("username", username).
			WithError(err).
			Error("ошибка создания пользователя")
		return 0, apperrors.NewStorage(err, "ошибка создания пользователя")
	}
	return id, nil
}

func (i impl) GetByID(id uint) (*userapimodels.UserView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения пользователя")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("пользователь", id)
	}
	result := userapimodels.Convert(*rec)
	return &result, nil
}

func (i impl) List(pagination apimodels.Pagination) (list []userapimodels.UserView, rowCount int64, err error) {
	recList, rowCount, err := i.store.List(pagination)
	if err != nil {
		return nil, 0, apperrors.NewStorage(err, "ошибка получения списка пользователей")
	}
	return convertList(recList), rowCount, nil
}

func (i impl) ListByRoles(roles []models.UserRole) ([]userapimodels.UserView, error) {
	recList, err := i.store.ListByRoles(roles)
	if err != nil {
		return nil, apperrors.NewStorage(err, "ошибка получения списка пользователей")
	}
	return convertList(recList), nil
}

func (i impl) SetActive(actor models.Actor, id uint, active bool) error {
	if actor.UserID == id && !active {
		return apperrors.NewValidation("нельзя заблокировать самого себя")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return apperrors.NewStorage(err, "ошибка получения пользователя")
	}
	if rec == nil {
		return apperrors.NewNotFound("пользователь", id)
	}
	if err = i.store.Update(id, map[string]interface{}{"is_active": active}); err != nil {
		return apperrors.NewStorage(err, "ошибка обновления пользователя")
	}
	log.
		WithField("user_id", id).
		WithField("actor_id", actor.UserID).
		Infof("пользователь активен: %v", active)
	return nil
}

// EnsureAdmin создаёт первого пользователя RH, если такого логина ещё нет
func (i impl) EnsureAdmin(data userapimodels.UserCreateData) error {
	if data.Username == "" {
		return nil
	}
	exist, err := i.store.FindByUsername(data.Username)
	if err != nil {
		return apperrors.NewStorage(err, "ошибка проверки администратора")
	}
	if exist != nil {
		return nil
	}
	data.Role = models.RHRole
	if _, err = i.Create(data); err != nil {
		return err
	}
	log.Info(fmt.Sprintf("создан пользователь RH: %v", data.Username))
	return nil
}

func convertList(recList []dbmodels.User) []userapimodels.UserView {
	result := make([]userapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, userapimodels.Convert(rec))
	}
	return result
}
