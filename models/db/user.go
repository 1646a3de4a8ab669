package dbmodels

import (
	"fmt"
	"hr-pipeline-backend/models"
	"time"
)

type User struct {
	BaseModel
	Username  string          `gorm:"type:varchar(150);uniqueIndex"`
	Password  string          `gorm:"type:varchar(128)"`
	FirstName string          `gorm:"type:varchar(150)"`
	LastName  string          `gorm:"type:varchar(150)"`
	Email     string          `gorm:"type:varchar(255)"`
	IsActive  bool
	Role      models.UserRole `gorm:"type:varchar(50);index"`
	LastLogin *time.Time
}

func (r User) GetFullName() string {
	if r.FirstName == "" && r.LastName == "" {
		return r.Username
	}
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}

func (r User) ToActor() models.Actor {
	return models.Actor{
		UserID:   r.ID,
		Username: r.GetFullName(),
		Role:     r.Role,
	}
}
