package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "hr-pipeline-backend/models/db"
)

type migrationItem struct {
	name  string
	model interface{}
}

func migrationList() []migrationItem {
	return []migrationItem{
		{name: "User", model: &dbmodels.User{}},
		{name: "HiringRequest", model: &dbmodels.HiringRequest{}},
		{name: "HiringRequestValidation", model: &dbmodels.HiringRequestValidation{}},
		{name: "Candidate", model: &dbmodels.Candidate{}},
		{name: "Interview", model: &dbmodels.Interview{}},
		{name: "JobOffer", model: &dbmodels.JobOffer{}},
		{name: "MedicalVisit", model: &dbmodels.MedicalVisit{}},
		{name: "StatusHistory", model: &dbmodels.StatusHistory{}},
		{name: "Notification", model: &dbmodels.Notification{}},
	}
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info("Запуск миграций")
	for _, item := range migrationList() {
		if err := db.AutoMigrate(item.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %s", item.name)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
