// Package mongodb implements store.Repository on a MongoDB database.
//
// Entries and tags live in the "entries" and "tags" collections and use their string id
// as _id. Removing a tag reference from entries is a single $pull.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"journal/internal/model/store"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	entriesCollection = "entries"
	tagsCollection    = "tags"
)

var errNotInitialised = errors.New("repository not initialised")

// Repository implements store.Repository using the official MongoDB driver
type Repository struct {
	client       *mongo.Client
	entries      *mongo.Collection
	tags         *mongo.Collection
	transactions bool
	session      mongo.Session
	now          func() time.Time
}

// NewRepository creates a repository on database. With transactions enabled,
// RunInTransaction uses a multi-document transaction, which needs a replica set.
func NewRepository(client *mongo.Client, database *mongo.Database, transactions bool) *Repository {
	return &Repository{
		client:       client,
		entries:      database.Collection(entriesCollection),
		tags:         database.Collection(tagsCollection),
		transactions: transactions,
		now:          time.Now,
	}
}

var _ store.Repository = (*Repository)(nil)

// EnsureIndexes creates the indexes the queries rely on. The unique name index backs
// tag name uniqueness under concurrent writes.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	if err := r.ready(); err != nil {
		return err
	}
	_, err := r.tags.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_tags_name"),
	})
	if err != nil {
		return fmt.Errorf("create tag indexes: %w", err)
	}
	_, err = r.entries.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "entry_type", Value: 1}, {Key: "datetime", Value: 1}},
			Options: options.Index().SetName("idx_entries_type_datetime"),
		},
		{
			Keys:    bson.D{{Key: "tag_ids", Value: 1}},
			Options: options.Index().SetName("idx_entries_tag_ids"),
		},
	})
	if err != nil {
		return fmt.Errorf("create entry indexes: %w", err)
	}
	return nil
}

func (r *Repository) ready() error {
	if r == nil || r.entries == nil || r.tags == nil {
		return errNotInitialised
	}
	return nil
}

// scope binds ctx to the open transaction, if any.
func (r *Repository) scope(ctx context.Context) context.Context {
	if r.session != nil {
		return mongo.NewSessionContext(ctx, r.session)
	}
	return ctx
}

// RunInTransaction runs fn in a multi-document transaction when enabled. Otherwise fn
// runs directly and its writes are applied one after another.
func (r *Repository) RunInTransaction(ctx context.Context, fn func(tx store.Repository) error) error {
	if err := r.ready(); err != nil {
		return err
	}
	if !r.transactions || r.session != nil {
		return fn(r)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		tx := *r
		tx.session = mongo.SessionFromContext(sc)
		return nil, fn(&tx)
	})
	return err
}

// Close disconnects the client.
func (r *Repository) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.client.Disconnect(ctx)
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	default:
		return err
	}
}

// stamp fills the bookkeeping timestamps the relational store sets on its own.
func (r *Repository) stamp(createdAt, updatedAt *time.Time) {
	now := r.now().UTC().Truncate(time.Millisecond)
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

func (r *Repository) setWithTimestamp(values map[string]interface{}) bson.M {
	set := bson.M{}
	for k, v := range values {
		set[k] = v
	}
	set["updated_at"] = r.now().UTC().Truncate(time.Millisecond)
	return bson.M{"$set": set}
}
