package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Params struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	BucketName      string
}

func (p Params) IsConfigured() bool {
	return p.Endpoint != "" && p.BucketName != ""
}

// Connect создаёт клиента и бакет для файлов, если его ещё нет
func Connect(ctx context.Context, params Params) (*minio.Client, error) {
	minioClient, err := minio.New(params.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(params.AccessKeyID, params.SecretAccessKey, ""),
		Secure: params.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания клиента s3")
	}
	if err = makeBucket(ctx, minioClient, params.BucketName); err != nil {
		return nil, errors.Wrapf(err, "ошибка создания бакета %s", params.BucketName)
	}
	log.WithField("bucket", params.BucketName).Info("s3 хранилище подключено")
	return minioClient, nil
}

func makeBucket(ctx context.Context, client *minio.Client, bucketName string) error {
	location := "us-east-1"
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
}
