package userapimodels

import (
	"net/mail"
	"strings"

	"github.com/pkg/errors"
	"hr-pipeline-backend/models"
	dbmodels "hr-pipeline-backend/models/db"
)

type UserData struct {
	Username  string          `json:"username"`   // логин
	FirstName string          `json:"first_name"` // имя
	LastName  string          `json:"last_name"`  // фамилия
	Email     string          `json:"email"`      // почта для уведомлений
	Role      models.UserRole `json:"role"`       // роль RH/Manager/CO
}

type UserCreateData struct {
	UserData
	Password string `json:"password"`
}

func (r UserCreateData) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("не указан логин")
	}
	if len(r.Password) < 6 {
		return errors.New("пароль должен содержать не менее 6 символов")
	}
	if r.Email != "" {
		if _, err := mail.ParseAddress(r.Email); err != nil {
			return errors.New("почта имеет неправильный формат")
		}
	}
	return r.Role.Validate()
}

type UserView struct {
	UserData
	ID        uint   `json:"id"`
	RoleName  string `json:"role_name"`
	IsActive  bool   `json:"is_active"`
	FullName  string `json:"full_name"`
	LastLogin string `json:"last_login"`
}

func Convert(rec dbmodels.User) UserView {
	result := UserView{
		UserData: UserData{
			Username:  rec.Username,
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			Email:     rec.Email,
			Role:      rec.Role,
		},
		ID:       rec.ID,
		RoleName: rec.Role.ToHuman(),
		IsActive: rec.IsActive,
		FullName: rec.GetFullName(),
	}
	if rec.LastLogin != nil {
		result.LastLogin = rec.LastLogin.Format("02.01.2006 15:04:05")
	}
	return result
}

type UserActiveData struct {
	IsActive bool `json:"is_active"`
}
