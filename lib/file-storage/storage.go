package filestorage

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	apperrors "hr-pipeline-backend/lib/utils/app-errors"
)

type Provider interface {
	UploadFile(ctx context.Context, key string, file []byte, contentType string) error
	GetFile(ctx context.Context, key string) ([]byte, error)
	DeleteFile(ctx context.Context, key string) error
}

var Instance Provider = disabled{}

func NewHandler(s3client *minio.Client, bucketName string) {
	Instance = NewInstance(s3client, bucketName)
}

func NewInstance(s3client *minio.Client, bucketName string) Provider {
	if s3client == nil {
		return disabled{}
	}
	return &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func (i impl) UploadFile(ctx context.Context, key string, file []byte, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, bytes.NewReader(file), int64(len(file)), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "ошибка загрузки файла %s", key)
	}
	return nil
}

func (i impl) GetFile(ctx context.Context, key string) ([]byte, error) {
	obj, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка получения файла %s", key)
	}
	defer obj.Close()
	body, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, apperrors.NewNotFound("файл", key)
		}
		return nil, errors.Wrapf(err, "ошибка чтения файла %s", key)
	}
	return body, nil
}

func (i impl) DeleteFile(ctx context.Context, key string) error {
	err := i.s3client.RemoveObject(ctx, i.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrapf(err, "ошибка удаления файла %s", key)
	}
	return nil
}

// disabled хранилище не настроено
type disabled struct{}

func (disabled) UploadFile(ctx context.Context, key string, file []byte, contentType string) error {
	return apperrors.NewValidation("файловое хранилище не настроено")
}

func (disabled) GetFile(ctx context.Context, key string) ([]byte, error) {
	return nil, apperrors.NewValidation("файловое хранилище не настроено")
}

func (disabled) DeleteFile(ctx context.Context, key string) error {
	return nil
}
