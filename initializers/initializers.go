package initializers

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/config"
	"hr-pipeline-backend/db"
	"hr-pipeline-backend/fiberlog"
	authhandler "hr-pipeline-backend/lib/auth"
	candidatehandler "hr-pipeline-backend/lib/candidate"
	candidatelifecycle "hr-pipeline-backend/lib/candidate-lifecycle"
	dashboardhandler "hr-pipeline-backend/lib/dashboard"
	"hr-pipeline-backend/lib/events"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	filestorage "hr-pipeline-backend/lib/file-storage"
	hiringrequesthandler "hr-pipeline-backend/lib/hiring-request"
	interviewhandler "hr-pipeline-backend/lib/interview"
	reminderworker "hr-pipeline-backend/lib/interview/reminder-worker"
	jobofferhandler "hr-pipeline-backend/lib/job-offer"
	medicalvisithandler "hr-pipeline-backend/lib/medical-visit"
	notificationhandler "hr-pipeline-backend/lib/notification"
	"hr-pipeline-backend/lib/rbac"
	"hr-pipeline-backend/lib/smtp"
	statushistoryhandler "hr-pipeline-backend/lib/status-history"
	usershandler "hr-pipeline-backend/lib/users"
	connectionhub "hr-pipeline-backend/lib/ws/hub/connection-hub"
	"hr-pipeline-backend/models"
	userapimodels "hr-pipeline-backend/models/api/user"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	InitSmtp()
	InitEvents(ctx)
	s3 := InitS3(ctx)
	filestorage.NewHandler(s3, config.Conf.S3.BucketName)
	connectionhub.Init(db.DB)
	rbac.NewHandler()
	xlsexport.NewHandler()

	usershandler.NewHandler(db.DB)
	authhandler.NewHandler(db.DB)
	statushistoryhandler.NewHandler(db.DB)
	notificationhandler.NewHandler(db.DB, notificationhandler.Options{
		Pusher:      connectionhub.Instance,
		Mailer:      smtp.Instance,
		EmailCopy:   *config.Conf.Notifications.EmailCopy,
		Parallelism: config.Conf.Notifications.Parallelism,
	})
	candidatelifecycle.NewHandler(db.DB, candidatelifecycle.Options{
		Notifier: notificationhandler.Instance,
		Events:   events.Instance,
	})
	hiringrequesthandler.NewHandler(db.DB, hiringrequesthandler.Options{
		Notifier: notificationhandler.Instance,
		Events:   events.Instance,
	})
	candidatehandler.NewHandler(db.DB, candidatehandler.Options{
		Lifecycle:   candidatelifecycle.Instance,
		FileStorage: filestorage.Instance,
		Xls:         xlsexport.Instance,
	})
	interviewhandler.NewHandler(db.DB, interviewhandler.Options{
		Lifecycle: candidatelifecycle.Instance,
		Notifier:  notificationhandler.Instance,
	})
	jobofferhandler.NewHandler(db.DB, jobofferhandler.Options{
		Lifecycle:   candidatelifecycle.Instance,
		FileStorage: filestorage.Instance,
		Company: models.CompanyInfo{
			Name:    config.Conf.Company.Name,
			Address: config.Conf.Company.Address,
			Contact: config.Conf.Company.Contact,
			LogoKey: config.Conf.Company.LogoKey,
			SignKey: config.Conf.Company.SignKey,
		},
	})
	medicalvisithandler.NewHandler(db.DB, candidatelifecycle.Instance)
	dashboardhandler.NewHandler(db.DB, xlsexport.Instance)

	initAdmin()
	go initWorkers(ctx)
}

// initAdmin первый пользователь RH, чтобы в систему можно было войти
func initAdmin() {
	if config.Conf.Admin.Username == "" {
		log.Warn("администратор не добавлен, отсутвует настройка ADMIN_USERNAME")
		return
	}
	err := usershandler.Instance.EnsureAdmin(userapimodels.UserCreateData{
		UserData: userapimodels.UserData{
			Username:  config.Conf.Admin.Username,
			FirstName: config.Conf.Admin.FirstName,
			LastName:  config.Conf.Admin.LastName,
			Email:     config.Conf.Admin.Email,
		},
		Password: config.Conf.Admin.Password,
	})
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
	}
}

func initWorkers(ctx context.Context) {
	// Напоминания о предстоящих собеседованиях
	if config.Conf.Reminder.CronSpec != "" {
		lead := time.Duration(config.Conf.Reminder.LeadHours) * time.Hour
		reminderworker.StartWorker(ctx, interviewhandler.Instance, config.Conf.Reminder.CronSpec, lead)
	}
}
