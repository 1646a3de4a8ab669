package models

import "github.com/pkg/errors"

type UserRole string

const (
	RHRole      UserRole = "RH"
	ManagerRole UserRole = "Manager"
	CORole      UserRole = "CO"
)

var roleHumanName = map[UserRole]string{
	RHRole:      "Ressources humaines",
	ManagerRole: "Manager",
	CORole:      "Chargé de recrutement",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) Validate() error {
	if _, ok := roleHumanName[r]; !ok {
		return errors.Errorf("неизвестная роль пользователя: %v", r)
	}
	return nil
}

// CanGiveOpinion роли, которым разрешено выставлять мнения по кандидату и менять статус вручную
func (r UserRole) CanGiveOpinion() bool {
	return r == RHRole || r == ManagerRole
}

func (r UserRole) In(roles ...UserRole) bool {
	for _, role := range roles {
		if r == role {
			return true
		}
	}
	return false
}

const SystemUser = "Système"

// Actor пользователь, от имени которого выполняется операция
type Actor struct {
	UserID   uint
	Username string
	Role     UserRole
}

func (a Actor) GetName() string {
	if a.Username == "" {
		return SystemUser
	}
	return a.Username
}
