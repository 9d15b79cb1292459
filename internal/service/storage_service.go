package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"rhello_flow_backend/internal/config"
	"rhello_flow_backend/internal/util"
	"rhello_flow_backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider abstrai onde os currículos ficam guardados. A chave
// devolvida pelo Upload é o que vai para candidate.cv_path.
type StorageProvider interface {
	Upload(ctx context.Context, file *multipart.FileHeader, key string) (string, error)
	GetURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type StorageService struct {
	provider StorageProvider
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	switch cfg.Storage.Type {
	case util.StorageMinio:
		provider, err := newMinioProvider(cfg)
		if err != nil {
			return nil, err
		}
		return &StorageService{provider: provider}, nil
	case util.StorageLocal:
		return &StorageService{provider: &localProvider{basePath: cfg.Storage.LocalPath}}, nil
	default:
		return nil, fmt.Errorf("tipo de storage desconhecido: %s", cfg.Storage.Type)
	}
}

// UploadCV valida a extensão e grava o arquivo sob uma chave única.
func (s *StorageService) UploadCV(ctx context.Context, candidateID uint, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedCVExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("extensão %s não permitida para currículo", ext)
	}

	key := fmt.Sprintf("cv/%d/%s%s", candidateID, uuid.NewString(), ext)
	return s.provider.Upload(ctx, file, key)
}

func (s *StorageService) GetURL(ctx context.Context, key string) (string, error) {
	return s.provider.GetURL(ctx, key)
}

func (s *StorageService) Delete(ctx context.Context, key string) error {
	return s.provider.Delete(ctx, key)
}

type localProvider struct {
	basePath string
}

func (p *localProvider) Upload(ctx context.Context, file *multipart.FileHeader, key string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dstPath := filepath.Join(p.basePath, key)
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return key, nil
}

func (p *localProvider) GetURL(ctx context.Context, key string) (string, error) {
	// servido pelo próprio gin em /uploads
	return "/uploads/" + key, nil
}

func (p *localProvider) Delete(ctx context.Context, key string) error {
	return os.Remove(filepath.Join(p.basePath, key))
}

type minioProvider struct {
	client *minio.Client
	bucket string
}

func newMinioProvider(cfg *config.Config) (*minioProvider, error) {
	client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
		Secure: cfg.Storage.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Storage.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Storage.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		logger.Log.Info("bucket criado", zap.String("bucket", cfg.Storage.MinioBucket))
	}

	return &minioProvider{client: client, bucket: cfg.Storage.MinioBucket}, nil
}

func (p *minioProvider) Upload(ctx context.Context, file *multipart.FileHeader, key string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	_, err = p.client.PutObject(ctx, p.bucket, key, src, file.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// GetURL emite uma URL pré-assinada de leitura, válida por 1 hora.
func (p *minioProvider) GetURL(ctx context.Context, key string) (string, error) {
	u, err := p.client.PresignedGetObject(ctx, p.bucket, key, time.Hour, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (p *minioProvider) Delete(ctx context.Context, key string) error {
	return p.client.RemoveObject(ctx, p.bucket, key, minio.RemoveObjectOptions{})
}
