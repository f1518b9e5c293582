package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"journal/internal/config"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// s3Settings 描述一个 S3 兼容桶，S3 与 R2 共用
type s3Settings struct {
	label           string
	bucket          string
	prefix          string
	region          string
	endpoint        string
	accessKeyID     string
	secretAccessKey string
	sessionToken    string
	forcePathStyle  bool
}

func s3SettingsFromConfig(cfg config.Config) s3Settings {
	return s3Settings{
		label:           "s3",
		bucket:          strings.TrimSpace(cfg.StorageS3Bucket),
		prefix:          cfg.StorageS3Prefix,
		region:          strings.TrimSpace(cfg.StorageS3Region),
		endpoint:        strings.TrimSpace(cfg.StorageS3Endpoint),
		accessKeyID:     strings.TrimSpace(cfg.StorageS3AccessKeyID),
		secretAccessKey: strings.TrimSpace(cfg.StorageS3SecretAccessKey),
		sessionToken:    strings.TrimSpace(cfg.StorageS3SessionToken),
		forcePathStyle:  cfg.StorageS3ForcePathStyle,
	}
}

// r2SettingsFromConfig 将 R2 映射为路径风格的 S3 桶，未配置 endpoint 时由账户 ID 推出
func r2SettingsFromConfig(cfg config.Config) (s3Settings, error) {
	endpoint := strings.TrimSpace(cfg.StorageR2Endpoint)
	if endpoint == "" {
		accountID := strings.TrimSpace(cfg.StorageR2AccountID)
		if accountID == "" {
			return s3Settings{}, errors.New("storage: missing R2 endpoint or account id")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}
	region := strings.TrimSpace(cfg.StorageR2Region)
	if region == "" {
		region = "auto"
	}
	return s3Settings{
		label:           "r2",
		bucket:          strings.TrimSpace(cfg.StorageR2Bucket),
		prefix:          cfg.StorageR2Prefix,
		region:          region,
		endpoint:        endpoint,
		accessKeyID:     strings.TrimSpace(cfg.StorageR2AccessKeyID),
		secretAccessKey: strings.TrimSpace(cfg.StorageR2SecretAccessKey),
		forcePathStyle:  true,
	}, nil
}

func (s s3Settings) validate() error {
	switch {
	case s.bucket == "":
		return fmt.Errorf("storage: missing %s bucket", s.label)
	case s.region == "":
		return fmt.Errorf("storage: missing %s region", s.label)
	case s.accessKeyID == "" || s.secretAccessKey == "":
		return fmt.Errorf("storage: missing %s credentials", s.label)
	}
	return nil
}

// NewS3Storage 创建 Amazon S3（或兼容服务）导出存储
func NewS3Storage(cfg config.Config) (Storage, error) {
	return newS3BucketStorage(s3SettingsFromConfig(cfg))
}

// NewR2Storage 创建 Cloudflare R2 导出存储
func NewR2Storage(cfg config.Config) (Storage, error) {
	settings, err := r2SettingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return newS3BucketStorage(settings)
}

func newS3BucketStorage(settings s3Settings) (Storage, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	return newBucketStorage(&s3Backend{
		label:  settings.label,
		client: newS3Client(settings),
		bucket: settings.bucket,
	}, settings.prefix), nil
}

func newS3Client(settings s3Settings) *s3.Client {
	awsCfg := aws.Config{
		Region: settings.region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(settings.accessKeyID, settings.secretAccessKey, settings.sessionToken),
		),
	}

	endpoint := settings.endpoint
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = settings.forcePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
}

type s3Backend struct {
	label  string
	client *s3.Client
	bucket string
}

func (b *s3Backend) name() string { return b.label }

func (b *s3Backend) exists(ctx context.Context, key string) (bool, error) {
	_, err := b.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(b.bucket), Key: aws.String(key)})
	if err == nil {
		return true, nil
	}
	if isS3NotFound(err) {
		return false, nil
	}
	return false, describeS3Error(err)
}

func (b *s3Backend) put(ctx context.Context, key string, obj object) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.data),
		ContentLength: aws.Int64(int64(len(obj.data))),
		ContentType:   aws.String(obj.contentType),
		Metadata:      obj.metadata,
	})
	return describeS3Error(err)
}

// describeS3Error prefixes the service error code and message.
func describeS3Error(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s: %w", apiErr.ErrorCode(), apiErr.ErrorMessage(), err)
	}
	return err
}

func isS3NotFound(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch strings.ToLower(apiErr.ErrorCode()) {
		case "notfound", "nosuchkey", "404":
			return true
		}
	}
	return false
}
