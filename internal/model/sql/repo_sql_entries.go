package sql

import (
	"context"
	"fmt"
	"journal/internal/entity"
	"journal/internal/entity/db"
	"journal/internal/model/store"

	"gorm.io/gorm"
)

// CreateEntry inserts a new entry.
func (r *GormRepository) CreateEntry(ctx context.Context, entry *db.Entry) error {
	if err := r.ready(); err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("entry is nil")
	}
	if entry.TagIDs == nil {
		entry.TagIDs = entity.StringArray{}
	}
	return translateError(r.db.WithContext(ctx).Create(entry).Error)
}

// FindEntries returns the entries matching filter ordered by datetime.
func (r *GormRepository) FindEntries(ctx context.Context, filter entity.EntryFilter) ([]db.Entry, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return findEntries(r.db.WithContext(ctx), filter)
}

// GetEntry fetches an entry by id.
func (r *GormRepository) GetEntry(ctx context.Context, id string) (*db.Entry, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return getEntry(r.db.WithContext(ctx), id)
}

// UpdateEntry applies the supplied fields and returns the updated entry.
func (r *GormRepository) UpdateEntry(ctx context.Context, id string, updates entity.EntryUpdates) (*db.Entry, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var updated *db.Entry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getEntry(tx, id); err != nil {
			return err
		}
		if values := updates.ToMap(); len(values) > 0 {
			if err := tx.Model(&db.Entry{}).Where("id = ?", id).Updates(values).Error; err != nil {
				return translateError(err)
			}
		}
		entry, err := getEntry(tx, id)
		if err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteEntry removes an entry and returns it as it was.
func (r *GormRepository) DeleteEntry(ctx context.Context, id string) (*db.Entry, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var deleted *db.Entry
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := getEntry(tx, id)
		if err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&db.Entry{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return store.ErrNotFound
		}
		deleted = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// UpdateEntries applies a bulk update to every matching entry.
//
// Tag references live in a JSON text column, so pulling a reference rewrites the
// array of each entry that holds it.
func (r *GormRepository) UpdateEntries(ctx context.Context, filter entity.EntryFilter, update entity.EntryBulkUpdate) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	if update.IsEmpty() {
		return 0, nil
	}
	if filter.TagID == "" {
		filter.TagID = update.PullTagID
	}

	var changed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries, err := findEntries(tx, filter)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if !e.TagIDs.Contains(update.PullTagID) {
				continue
			}
			result := tx.Model(&db.Entry{}).Where("id = ?", e.ID).Update("tag_ids", e.TagIDs.Without(update.PullTagID))
			if result.Error != nil {
				return result.Error
			}
			changed += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

func findEntries(tx *gorm.DB, filter entity.EntryFilter) ([]db.Entry, error) {
	query := tx.Model(&db.Entry{})
	if filter.Type != "" {
		query = query.Where("entry_type = ?", filter.Type)
	}
	if filter.From != nil {
		query = query.Where("datetime >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("datetime <= ?", filter.To.UTC())
	}
	if filter.TagID != "" {
		query = query.Where("tag_ids LIKE ?", tagPattern(filter.TagID))
	}

	entries := []db.Entry{}
	if err := query.Order("datetime ASC").Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func getEntry(tx *gorm.DB, id string) (*db.Entry, error) {
	var entry db.Entry
	if err := tx.Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

// tagPattern matches a tag id as a quoted element of the JSON array.
func tagPattern(tagID string) string {
	return `%"` + tagID + `"%`
}
