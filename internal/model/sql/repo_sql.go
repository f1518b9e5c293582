package sql

import (
	"context"
	"errors"
	"fmt"
	dbentity "journal/internal/entity/db"
	"journal/internal/model/store"
	"strings"

	"gorm.io/gorm"
)

var errNotInitialised = errors.New("repository not initialised")

// GormRepository implements store.Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

var _ store.Repository = (*GormRepository)(nil)

func (r *GormRepository) ready() error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	return nil
}

// RunInTransaction runs fn inside a database transaction.
func (r *GormRepository) RunInTransaction(ctx context.Context, fn func(tx store.Repository) error) error {
	if err := r.ready(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

// Close releases the underlying connection pool.
func (r *GormRepository) Close() error {
	if err := r.ready(); err != nil {
		return err
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translateError maps GORM errors onto the model sentinels.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	default:
		return err
	}
}

// isUniqueViolation catches drivers that do not translate constraint errors.
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// Migrate creates or updates the tables backing the repository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&dbentity.Entry{},
		&dbentity.Tag{},
	)
}
