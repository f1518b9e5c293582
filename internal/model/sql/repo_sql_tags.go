package sql

import (
	"context"
	"fmt"
	"journal/internal/entity"
	"journal/internal/entity/db"
	"journal/internal/model/store"

	"gorm.io/gorm"
)

// ListTags returns all tags ordered by name.
func (r *GormRepository) ListTags(ctx context.Context) ([]db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	tags := []db.Tag{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag inserts a new tag.
func (r *GormRepository) CreateTag(ctx context.Context, tag *db.Tag) error {
	if err := r.ready(); err != nil {
		return err
	}
	if tag == nil {
		return fmt.Errorf("tag is nil")
	}
	return translateError(r.db.WithContext(ctx).Create(tag).Error)
}

// GetTag fetches a tag by id.
func (r *GormRepository) GetTag(ctx context.Context, id string) (*db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return getTag(r.db.WithContext(ctx), id)
}

// FindTagByName fetches a tag by exact name.
func (r *GormRepository) FindTagByName(ctx context.Context, name string) (*db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var tag db.Tag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

// FindTagsByIDs fetches tags by ids. Unknown ids are skipped.
func (r *GormRepository) FindTagsByIDs(ctx context.Context, ids []string) ([]db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []db.Tag{}, nil
	}

	tags := []db.Tag{}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CountTagsByIDs counts how many of ids exist.
func (r *GormRepository) CountTagsByIDs(ctx context.Context, ids []string) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&db.Tag{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateTag updates tag fields and returns the updated tag.
func (r *GormRepository) UpdateTag(ctx context.Context, id string, updates entity.TagUpdates) (*db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var updated *db.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getTag(tx, id); err != nil {
			return err
		}
		if values := updates.ToMap(); len(values) > 0 {
			if err := tx.Model(&db.Tag{}).Where("id = ?", id).Updates(values).Error; err != nil {
				return translateError(err)
			}
		}
		tag, err := getTag(tx, id)
		if err != nil {
			return err
		}
		updated = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTag removes a tag and returns it as it was. Entry references are left to the caller.
func (r *GormRepository) DeleteTag(ctx context.Context, id string) (*db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var deleted *db.Tag
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag, err := getTag(tx, id)
		if err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&db.Tag{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrNotFound
		}
		deleted = tag
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func getTag(tx *gorm.DB, id string) (*db.Tag, error) {
	var tag db.Tag
	if err := tx.Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}
