package authapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

const MinPasswordLen = 6

type LoginRequest struct {
	Username string `json:"username"` // логин пользователя
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("не указан логин")
	}
	if r.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type JWTResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type JWTRefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r JWTRefreshRequest) Validate() error {
	if strings.TrimSpace(r.RefreshToken) == "" {
		return errors.New("не указан refresh токен")
	}
	return nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	if r.OldPassword == "" {
		return errors.New("не указан текущий пароль")
	}
	if len(r.NewPassword) < MinPasswordLen {
		return errors.Errorf("пароль должен содержать не менее %d символов", MinPasswordLen)
	}
	if r.NewPassword == r.OldPassword {
		return errors.New("новый пароль совпадает с текущим")
	}
	return nil
}
