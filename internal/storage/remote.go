package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// MetaChecksum 是对象元数据中保存内容 SHA-256 的键
const MetaChecksum = "sha256"

// object 是写入远端桶的一份数据及其元数据
type object struct {
	data        []byte
	contentType string
	metadata    map[string]string
}

// bucketBackend 是各云厂商 SDK 之上的最小适配层
type bucketBackend interface {
	name() string
	exists(ctx context.Context, key string) (bool, error)
	put(ctx context.Context, key string, obj object) error
}

// bucketStorage 在桶适配层上实现 Storage：统一的键、前缀、跳过已存在对象与校验和元数据
type bucketStorage struct {
	backend bucketBackend
	prefix  string
}

func newBucketStorage(backend bucketBackend, prefix string) *bucketStorage {
	return &bucketStorage{backend: backend, prefix: trimPrefix(prefix)}
}

func (s *bucketStorage) Save(ctx context.Context, data []byte, opts SaveOptions) (string, error) {
	if err := checkPayload(data); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := joinPrefix(s.prefix, ObjectKey(opts))

	if opts.SkipIfExists {
		exists, err := s.backend.exists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("%s: check object %s: %w", s.backend.name(), key, err)
		}
		if exists {
			return key, nil
		}
	}

	obj := object{
		data:        data,
		contentType: contentTypeFor(opts),
		metadata:    map[string]string{MetaChecksum: checksum(data)},
	}
	if err := s.backend.put(ctx, key, obj); err != nil {
		return "", fmt.Errorf("%s: put object %s: %w", s.backend.name(), key, err)
	}
	return key, nil
}

var _ Storage = (*bucketStorage)(nil)

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
