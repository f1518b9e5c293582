package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"journal/internal/config"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"
)

// NewCOSStorage 创建腾讯云 COS 导出存储
func NewCOSStorage(cfg config.Config) (Storage, error) {
	baseURL := strings.TrimSpace(cfg.StorageCOSBucketURL)
	secretID := strings.TrimSpace(cfg.StorageCOSSecretID)
	secretKey := strings.TrimSpace(cfg.StorageCOSSecretKey)
	switch {
	case baseURL == "":
		return nil, errors.New("storage: missing cos bucket url")
	case secretID == "" || secretKey == "":
		return nil, errors.New("storage: missing cos credentials")
	}
	bucketURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: parse cos bucket url: %w", err)
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: bucketURL}, &http.Client{
		Transport: &cos.AuthorizationTransport{SecretID: secretID, SecretKey: secretKey},
	})
	return newBucketStorage(&cosBackend{client: client}, cfg.StorageCOSPrefix), nil
}

type cosBackend struct {
	client *cos.Client
}

func (b *cosBackend) name() string { return "cos" }

func (b *cosBackend) exists(ctx context.Context, key string) (bool, error) {
	resp, err := b.client.Object.Head(ctx, key, nil)
	closeBody(resp)
	if err == nil {
		return true, nil
	}
	if cos.IsNotFoundError(err) {
		return false, nil
	}
	return false, err
}

func (b *cosBackend) put(ctx context.Context, key string, obj object) error {
	meta := make(http.Header, len(obj.metadata))
	for k, v := range obj.metadata {
		meta.Set("x-cos-meta-"+k, v)
	}
	resp, err := b.client.Object.Put(ctx, key, bytes.NewReader(obj.data), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: obj.contentType,
			XCosMetaXXX: &meta,
		},
	})
	closeBody(resp)
	return err
}

func closeBody(resp *cos.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
