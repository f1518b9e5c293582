package mongodb

import (
	"context"
	"fmt"
	"journal/internal/entity"
	"journal/internal/entity/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListTags returns all tags ordered by name.
func (r *Repository) ListTags(ctx context.Context) ([]db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return r.findTags(ctx, bson.M{})
}

// CreateTag inserts a new tag.
func (r *Repository) CreateTag(ctx context.Context, tag *db.Tag) error {
	if err := r.ready(); err != nil {
		return err
	}
	if tag == nil {
		return fmt.Errorf("tag is nil")
	}
	r.stamp(&tag.CreatedAt, &tag.UpdatedAt)

	_, err := r.tags.InsertOne(r.scope(ctx), tag)
	return translateError(err)
}

// GetTag fetches a tag by id.
func (r *Repository) GetTag(ctx context.Context, id string) (*db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return r.findTag(ctx, bson.M{"_id": id})
}

// FindTagByName fetches a tag by exact name.
func (r *Repository) FindTagByName(ctx context.Context, name string) (*db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	return r.findTag(ctx, bson.M{"name": name})
}

// FindTagsByIDs fetches tags by ids. Unknown ids are skipped.
func (r *Repository) FindTagsByIDs(ctx context.Context, ids []string) ([]db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []db.Tag{}, nil
	}
	return r.findTags(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// CountTagsByIDs counts how many of ids exist.
func (r *Repository) CountTagsByIDs(ctx context.Context, ids []string) (int64, error) {
	if err := r.ready(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return r.tags.CountDocuments(r.scope(ctx), bson.M{"_id": bson.M{"$in": ids}})
}

// UpdateTag updates tag fields and returns the updated tag.
func (r *Repository) UpdateTag(ctx context.Context, id string, updates entity.TagUpdates) (*db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	values := updates.ToMap()
	if len(values) == 0 {
		return r.GetTag(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var tag db.Tag
	err := r.tags.FindOneAndUpdate(r.scope(ctx), bson.M{"_id": id}, r.setWithTimestamp(values), opts).Decode(&tag)
	if err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

// DeleteTag removes a tag and returns it as it was. Entry references are left to the caller.
func (r *Repository) DeleteTag(ctx context.Context, id string) (*db.Tag, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	var tag db.Tag
	if err := r.tags.FindOneAndDelete(r.scope(ctx), bson.M{"_id": id}).Decode(&tag); err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

func (r *Repository) findTag(ctx context.Context, query bson.M) (*db.Tag, error) {
	var tag db.Tag
	if err := r.tags.FindOne(r.scope(ctx), query).Decode(&tag); err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

func (r *Repository) findTags(ctx context.Context, query bson.M) ([]db.Tag, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.tags.Find(r.scope(ctx), query, opts)
	if err != nil {
		return nil, err
	}

	tags := []db.Tag{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
