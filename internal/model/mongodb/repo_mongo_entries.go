package mongodb

import (
	"context"
	"fmt"
	"journal/internal/entity"
	"journal/internal/entity/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateEntry inserts a new entry.
func (r *Repository) CreateEntry(ctx context.Context, entry *db.Entry) error {
	if err := r.ready(); err != nil {
		return err
	}
	if entry == nil {
		return fmt.Errorf("entry is nil")
	}
	if entry.TagIDs == nil {
		entry.TagIDs = entity.StringArray{}
	}
	r.stamp(&entry.CreatedAt, &entry.UpdatedAt)

	_, err := r.entries.InsertOne(r.scope(ctx), entry)
	return translateError(err)
}

// FindEntries returns the entries matching filter ordered by datetime.
func (r *Repository) FindEntries(ctx context.Context, filter entity.EntryFilter) ([]db.Entry, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "datetime", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.entries.Find(r.scope(ctx), entryQuery(filter), opts)
	if err != nil {
		return nil, err
	}

	entries := []db.Entry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry fetches an entry by id.
func (r *Repository) GetEntry(ctx context.Context, id string) (*db.Entry, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var entry db.Entry
	if err := r.entries.FindOne(r.scope(ctx), bson.M{"_id": id}).Decode(&entry); err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

// UpdateEntry applies the supplied fields and returns the updated entry.
func (r *Repository) UpdateEntry(ctx context.Context, id string, updates entity.EntryUpdates) (*db.Entry, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	values := updates.ToMap()
	if len(values) == 0 {
		return r.GetEntry(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var entry db.Entry
	err := r.entries.FindOneAndUpdate(r.scope(ctx), bson.M{"_id": id}, r.setWithTimestamp(values), opts).Decode(&entry)
	if err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

// DeleteEntry removes an entry and returns it as it was.
func (r *Repository) DeleteEntry(ctx context.Context, id string) (*db.Entry, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var entry db.Entry
	if err := r.entries.FindOneAndDelete(r.scope(ctx), bson.M{"_id": id}).Decode(&entry); err != nil {
		return nil, translateError(err)
	}
	return &entry, nil
}

// UpdateEntries applies a bulk update to every matching entry.
func (r *Repository) UpdateEntries(ctx context.Context, filter entity.EntryFilter, update entity.EntryBulkUpdate) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	if update.IsEmpty() {
		return 0, nil
	}
	if filter.TagID == "" {
		filter.TagID = update.PullTagID
	}

	change := r.setWithTimestamp(nil)
	change["$pull"] = bson.M{"tag_ids": update.PullTagID}

	result, err := r.entries.UpdateMany(r.scope(ctx), entryQuery(filter), change)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func entryQuery(filter entity.EntryFilter) bson.M {
	query := bson.M{}
	if filter.Type != "" {
		query["entry_type"] = filter.Type
	}
	if filter.From != nil || filter.To != nil {
		window := bson.M{}
		if filter.From != nil {
			window["$gte"] = filter.From.UTC()
		}
		if filter.To != nil {
			window["$lte"] = filter.To.UTC()
		}
		query["datetime"] = window
	}
	if filter.TagID != "" {
		query["tag_ids"] = filter.TagID
	}
	return query
}
