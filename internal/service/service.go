// Package service holds the entry and tag services: type binding, tag reference
// validation and resolution, tag cascade delete and day-window queries.
package service

import (
	"context"
	"errors"
	"journal/internal/apperr"
	"journal/internal/entity"
	"journal/internal/entity/converter"
	"journal/internal/entity/db"
	"journal/internal/model"

	"github.com/sirupsen/logrus"
)

// TagResolver reports whether tag references resolve to existing tags.
type TagResolver interface {
	DoAllTagsExist(ctx context.Context, ids []string) (bool, error)
}

// wrapStorage turns a storage failure into a generic error of the given kind.
// Errors that already carry a kind pass through.
func wrapStorage(code apperr.Code, msg string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Wrap(code, msg, err)
}

// resolveTags loads the tags referenced by entries. Dangling references are simply
// absent from the index.
func resolveTags(ctx context.Context, repo model.Repository, entries ...db.Entry) (converter.TagIndex, error) {
	ids := converter.ReferencedTagIDs(entries...)
	if len(ids) == 0 {
		return converter.TagIndex{}, nil
	}
	tags, err := repo.FindTagsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return converter.NewTagIndex(tags), nil
}

// updateEntries applies a bulk update across entries of every type.
func updateEntries(ctx context.Context, repo model.Repository, filter entity.EntryFilter, update entity.EntryBulkUpdate) (bool, error) {
	changed, err := repo.UpdateEntries(ctx, filter, update)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"tag_id":      filter.TagID,
			"pull_tag_id": update.PullTagID,
		}).Error("failed to update entries")
		return false, wrapStorage(apperr.CodeUpdateFailed, "failed to update entries", err)
	}
	logrus.WithFields(logrus.Fields{
		"pull_tag_id": update.PullTagID,
		"changed":     changed,
	}).Debug("entries updated")
	return true, nil
}
