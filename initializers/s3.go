package initializers

import (
	"context"

	"github.com/minio/minio-go/v7"
	log "github.com/sirupsen/logrus"
	"hr-pipeline-backend/config"
	s3client "hr-pipeline-backend/s3"
)

// InitS3 без настроек хранилища резюме и логотипы недоступны, сервис продолжает работу
func InitS3(ctx context.Context) *minio.Client {
	params := s3client.Params{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
		BucketName:      config.Conf.S3.BucketName,
	}
	if !params.IsConfigured() {
		log.Warn("s3 хранилище не настроено, загрузка файлов отключена")
		return nil
	}
	client, err := s3client.Connect(ctx, params)
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return nil
	}
	return client
}
