package service

import (
	"context"
	"errors"
	"fmt"
	"journal/internal/apperr"
	"journal/internal/entity"
	"journal/internal/entity/converter"
	"journal/internal/entity/db"
	"journal/internal/entity/dto"
	"journal/internal/model"
	"journal/internal/utils"
	"journal/internal/validation"
	"time"

	"github.com/sirupsen/logrus"
)

// EntryService 条目服务，每个实例绑定一种条目类型
type EntryService struct {
	repo      model.Repository
	entryType entity.EntryType
	tags      TagResolver
	validator *validation.Validator
	now       func() time.Time
}

// NewEntryService creates a service bound to entryType. tags may be nil, in which case
// any write that references tags fails with MissingTagService.
func NewEntryService(repo model.Repository, entryType entity.EntryType, tags TagResolver) *EntryService {
	return &EntryService{
		repo:      repo,
		entryType: entryType,
		tags:      tags,
		validator: validation.New(),
		now:       time.Now,
	}
}

// Type returns the entry type the service is bound to.
func (s *EntryService) Type() entity.EntryType {
	return s.entryType
}

// AddEntry stores a new entry of the bound type and returns it with tags resolved.
func (s *EntryService) AddEntry(ctx context.Context, in dto.EntryInput, expected entity.EntryType) (dto.Entry, error) {
	if err := s.checkType(in.Type, expected); err != nil {
		return dto.Entry{}, err
	}
	if err := s.checkTags(ctx, in.Tags); err != nil {
		return dto.Entry{}, err
	}

	entry := converter.EntryFromInput(in, utils.NewID(), s.now())
	if err := s.validator.ValidateEntry(&entry); err != nil {
		return dto.Entry{}, apperr.Reclassify(apperr.CodeOperationFailed, "invalid entry", err)
	}

	if err := s.repo.CreateEntry(ctx, &entry); err != nil {
		s.logFailure(err, entry.ID, "failed to create entry")
		return dto.Entry{}, apperr.Wrap(apperr.CodeOperationFailed, "failed to create entry", err)
	}

	index, err := resolveTags(ctx, s.repo, entry)
	if err != nil {
		s.logFailure(err, entry.ID, "failed to resolve tags")
		return dto.Entry{}, apperr.Wrap(apperr.CodeOperationFailed, "failed to resolve tags", err)
	}
	return converter.EntryToDTO(&entry, index), nil
}

// GetEntryByDate returns the entries of the bound type within the UTC calendar day
// containing date, oldest first. No match is an empty slice.
func (s *EntryService) GetEntryByDate(ctx context.Context, date time.Time, expected entity.EntryType) ([]dto.Entry, error) {
	if expected != s.entryType {
		return nil, s.typeMismatch(expected)
	}

	start, end := utils.DayWindow(date)
	entries, err := s.repo.FindEntries(ctx, entity.EntryFilter{
		Type: s.entryType,
		From: &start,
		To:   &end,
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"entry_type": s.entryType,
			"date":       start.Format(time.DateOnly),
		}).Error("failed to query entries")
		return nil, apperr.Wrap(apperr.CodeRetrievalFailed, "failed to query entries", err)
	}

	index, err := resolveTags(ctx, s.repo, entries...)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeRetrievalFailed, "failed to resolve tags", err)
	}
	return converter.EntriesToDTOs(entries, index), nil
}

// GetEntry returns a single entry of the bound type.
func (s *EntryService) GetEntry(ctx context.Context, id string) (dto.Entry, error) {
	entry, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return dto.Entry{}, apperr.ErrEntryNotFound
		}
		s.logFailure(err, id, "failed to get entry")
		return dto.Entry{}, apperr.Wrap(apperr.CodeRetrievalFailed, "failed to get entry", err)
	}
	if entry.Type != s.entryType {
		return dto.Entry{}, apperr.ErrEntryNotFound
	}

	index, err := resolveTags(ctx, s.repo, *entry)
	if err != nil {
		return dto.Entry{}, apperr.Wrap(apperr.CodeRetrievalFailed, "failed to resolve tags", err)
	}
	return converter.EntryToDTO(entry, index), nil
}

// UpdateEntry applies the supplied fields. A non-empty tag list is validated like on
// add; an empty one clears the references.
func (s *EntryService) UpdateEntry(ctx context.Context, id string, in dto.EntryUpdateInput) (dto.Entry, error) {
	existing, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return dto.Entry{}, apperr.ErrEntryNotFound
		}
		s.logFailure(err, id, "failed to load entry")
		return dto.Entry{}, apperr.Wrap(apperr.CodeUpdateFailed, "failed to load entry", err)
	}
	if existing.Type != s.entryType {
		return dto.Entry{}, apperr.New(apperr.CodeInvalidEntryType,
			fmt.Sprintf("entry %s is a %s entry, not %s", id, existing.Type, s.entryType))
	}
	if in.Tags != nil {
		if err := s.checkTags(ctx, *in.Tags); err != nil {
			return dto.Entry{}, err
		}
	}

	updates := converter.EntryUpdatesFromInput(in)
	merged := applyUpdates(*existing, updates)
	if err := s.validator.ValidateEntry(&merged); err != nil {
		return dto.Entry{}, apperr.Reclassify(apperr.CodeUpdateFailed, "invalid entry", err)
	}

	updated, err := s.repo.UpdateEntry(ctx, id, updates)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return dto.Entry{}, apperr.ErrEntryNotFound
		}
		s.logFailure(err, id, "failed to update entry")
		return dto.Entry{}, apperr.Wrap(apperr.CodeUpdateFailed, "failed to update entry", err)
	}

	index, err := resolveTags(ctx, s.repo, *updated)
	if err != nil {
		return dto.Entry{}, apperr.Wrap(apperr.CodeUpdateFailed, "failed to resolve tags", err)
	}
	return converter.EntryToDTO(updated, index), nil
}

// DeleteEntry removes an entry of the bound type and returns its last representation.
// An entry of another type is reported as not found.
func (s *EntryService) DeleteEntry(ctx context.Context, id string) (dto.Entry, error) {
	existing, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return dto.Entry{}, apperr.ErrEntryNotFound
		}
		s.logFailure(err, id, "failed to load entry")
		return dto.Entry{}, apperr.Wrap(apperr.CodeOperationFailed, "failed to load entry", err)
	}
	if existing.Type != s.entryType {
		return dto.Entry{}, apperr.ErrEntryNotFound
	}

	deleted, err := s.repo.DeleteEntry(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return dto.Entry{}, apperr.ErrEntryNotFound
		}
		s.logFailure(err, id, "failed to delete entry")
		return dto.Entry{}, apperr.Wrap(apperr.CodeOperationFailed, "failed to delete entry", err)
	}

	index, err := resolveTags(ctx, s.repo, *deleted)
	if err != nil {
		return dto.Entry{}, apperr.Wrap(apperr.CodeOperationFailed, "failed to resolve tags", err)
	}
	return converter.EntryToDTO(deleted, index), nil
}

// UpdateEntries applies a bulk update across entries of every type and reports whether
// the store acknowledged it.
func (s *EntryService) UpdateEntries(ctx context.Context, filter entity.EntryFilter, update entity.EntryBulkUpdate) (bool, error) {
	return updateEntries(ctx, s.repo, filter, update)
}

func (s *EntryService) checkType(actual, expected entity.EntryType) error {
	if expected != s.entryType {
		return s.typeMismatch(expected)
	}
	if actual != expected {
		return apperr.New(apperr.CodeInvalidEntryType,
			fmt.Sprintf("entry type %q does not match %q", actual, expected))
	}
	return nil
}

func (s *EntryService) typeMismatch(expected entity.EntryType) error {
	return apperr.New(apperr.CodeInvalidEntryType,
		fmt.Sprintf("service is bound to %q, not %q", s.entryType, expected))
}

// checkTags gates writes that reference tags.
func (s *EntryService) checkTags(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if s.tags == nil {
		return apperr.ErrMissingTagService
	}

	ok, err := s.tags.DoAllTagsExist(ctx, ids)
	if err != nil {
		return wrapStorage(apperr.CodeRetrievalFailed, "failed to check tags", err)
	}
	if !ok {
		return apperr.ErrInvalidTag
	}
	return nil
}

func (s *EntryService) logFailure(err error, id, msg string) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"entry_id":   id,
		"entry_type": s.entryType,
	}).Error(msg)
}

// applyUpdates returns e with updates applied, for validating the result before it is written.
func applyUpdates(e db.Entry, u entity.EntryUpdates) db.Entry {
	if u.Content != nil {
		e.Content = *u.Content
	}
	if u.Datetime != nil {
		e.Datetime = *u.Datetime
	}
	if u.TagIDs != nil {
		e.TagIDs = *u.TagIDs
	}
	return e
}
