// Package export writes a JSON snapshot of every tag and entry to the configured storage.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"journal/internal/apperr"
	"journal/internal/entity"
	"journal/internal/entity/converter"
	"journal/internal/entity/dto"
	"journal/internal/model"
	"journal/internal/storage"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultPrefix = "exports"

// Snapshot is the exported document.
type Snapshot struct {
	ExportedAt time.Time   `json:"exported_at"`
	Tags       []dto.Tag   `json:"tags"`
	Entries    []dto.Entry `json:"entries"`
}

// Options controls a single export.
type Options struct {
	// Name overrides the default journal-<unix> file name.
	Name string
	// SkipIfExists keeps an object already stored under the same key.
	SkipIfExists bool
}

// Result describes a written snapshot.
type Result struct {
	Key        string    `json:"key"`
	Tags       int       `json:"tags"`
	Entries    int       `json:"entries"`
	ExportedAt time.Time `json:"exported_at"`
}

// Exporter builds snapshots and saves them through a storage backend.
type Exporter struct {
	repo   model.Repository
	store  storage.Storage
	prefix string
	now    func() time.Time
}

// NewExporter 创建导出器
func NewExporter(repo model.Repository, store storage.Storage, prefix string) *Exporter {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Exporter{
		repo:   repo,
		store:  store,
		prefix: prefix,
		now:    time.Now,
	}
}

// Build reads every tag and entry. Entries are ordered by datetime with tags resolved.
func (e *Exporter) Build(ctx context.Context) (Snapshot, error) {
	tags, err := e.repo.ListTags(ctx)
	if err != nil {
		return Snapshot{}, apperr.Wrap(apperr.CodeRetrievalFailed, "failed to list tags", err)
	}
	entries, err := e.repo.FindEntries(ctx, entity.EntryFilter{})
	if err != nil {
		return Snapshot{}, apperr.Wrap(apperr.CodeRetrievalFailed, "failed to list entries", err)
	}

	return Snapshot{
		ExportedAt: e.now().UTC().Truncate(time.Millisecond),
		Tags:       converter.TagsToDTOs(tags),
		Entries:    converter.EntriesToDTOs(entries, converter.NewTagIndex(tags)),
	}, nil
}

// Export builds a snapshot and stores it under <prefix>/YYYY/MM/DD/<name>.json.
func (e *Exporter) Export(ctx context.Context, opts Options) (Result, error) {
	if e.store == nil {
		return Result{}, apperr.New(apperr.CodeOperationFailed, "export storage is not configured")
	}

	snapshot, err := e.Build(ctx)
	if err != nil {
		return Result{}, err
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return Result{}, apperr.Wrap(apperr.CodeOperationFailed, "failed to encode snapshot", err)
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = fmt.Sprintf("journal-%d", snapshot.ExportedAt.Unix())
	}

	key, err := e.store.Save(ctx, data, storage.SaveOptions{
		Category:     e.prefix,
		BaseName:     name,
		Extension:    "json",
		ContentType:  "application/json",
		Time:         snapshot.ExportedAt,
		SkipIfExists: opts.SkipIfExists,
	})
	if err != nil {
		logrus.WithError(err).WithField("name", name).Error("failed to store snapshot")
		return Result{}, apperr.Wrap(apperr.CodeOperationFailed, "failed to store snapshot", err)
	}

	result := Result{
		Key:        key,
		Tags:       len(snapshot.Tags),
		Entries:    len(snapshot.Entries),
		ExportedAt: snapshot.ExportedAt,
	}
	logrus.WithFields(logrus.Fields{
		"key":     result.Key,
		"tags":    result.Tags,
		"entries": result.Entries,
	}).Info("journal exported")
	return result, nil
}
