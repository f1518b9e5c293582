package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"journal/internal/config"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// NewOSSStorage 创建阿里云 OSS 导出存储
func NewOSSStorage(cfg config.Config) (Storage, error) {
	endpoint := strings.TrimSpace(cfg.StorageOSSEndpoint)
	bucketName := strings.TrimSpace(cfg.StorageOSSBucket)
	accessKey := strings.TrimSpace(cfg.StorageOSSAccessKeyID)
	secretKey := strings.TrimSpace(cfg.StorageOSSAccessKeySecret)
	switch {
	case endpoint == "":
		return nil, errors.New("storage: missing oss endpoint")
	case bucketName == "":
		return nil, errors.New("storage: missing oss bucket")
	case accessKey == "" || secretKey == "":
		return nil, errors.New("storage: missing oss credentials")
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("storage: create oss client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("storage: open oss bucket: %w", err)
	}
	return newBucketStorage(&ossBackend{bucket: bucket}, cfg.StorageOSSPrefix), nil
}

type ossBackend struct {
	bucket *oss.Bucket
}

func (b *ossBackend) name() string { return "oss" }

func (b *ossBackend) exists(ctx context.Context, key string) (bool, error) {
	return b.bucket.IsObjectExist(key, oss.WithContext(ctx))
}

func (b *ossBackend) put(ctx context.Context, key string, obj object) error {
	options := []oss.Option{oss.WithContext(ctx), oss.ContentType(obj.contentType)}
	for k, v := range obj.metadata {
		options = append(options, oss.Meta(k, v))
	}
	return b.bucket.PutObject(key, bytes.NewReader(obj.data), options...)
}
