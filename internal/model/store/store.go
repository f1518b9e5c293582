// Package store holds the storage contract shared by the relational and document backends.
package store

import (
	"context"
	"errors"
	"journal/internal/entity"
	"journal/internal/entity/db"
)

var (
	// ErrNotFound is returned when no record matches the given id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Repository 定义数据存储操作接口
//
// Implementations translate their driver's not-found and unique-violation errors into
// ErrNotFound and ErrDuplicate.
type Repository interface {
	// 条目
	CreateEntry(ctx context.Context, entry *db.Entry) error
	FindEntries(ctx context.Context, filter entity.EntryFilter) ([]db.Entry, error)
	GetEntry(ctx context.Context, id string) (*db.Entry, error)
	// UpdateEntry applies updates and returns the entry as stored afterwards.
	UpdateEntry(ctx context.Context, id string, updates entity.EntryUpdates) (*db.Entry, error)
	// DeleteEntry removes the entry and returns it as it was before removal.
	DeleteEntry(ctx context.Context, id string) (*db.Entry, error)
	// UpdateEntries applies update to every entry matching filter and returns how many changed.
	UpdateEntries(ctx context.Context, filter entity.EntryFilter, update entity.EntryBulkUpdate) (int64, error)

	// 标签
	CreateTag(ctx context.Context, tag *db.Tag) error
	ListTags(ctx context.Context) ([]db.Tag, error)
	GetTag(ctx context.Context, id string) (*db.Tag, error)
	FindTagByName(ctx context.Context, name string) (*db.Tag, error)
	FindTagsByIDs(ctx context.Context, ids []string) ([]db.Tag, error)
	CountTagsByIDs(ctx context.Context, ids []string) (int64, error)
	UpdateTag(ctx context.Context, id string, updates entity.TagUpdates) (*db.Tag, error)
	DeleteTag(ctx context.Context, id string) (*db.Tag, error)

	// RunInTransaction runs fn with a repository whose writes commit or roll back together
	// when the backend supports it. Backends without transactions run fn directly.
	RunInTransaction(ctx context.Context, fn func(tx Repository) error) error

	Close() error
}
