package service

import (
	"context"
	"errors"
	"journal/internal/apperr"
	"journal/internal/entity"
	"journal/internal/entity/converter"
	"journal/internal/entity/dto"
	"journal/internal/model"
	"journal/internal/utils"
	"journal/internal/validation"
	"time"

	"github.com/sirupsen/logrus"
)

// TagService 标签服务
type TagService struct {
	repo      model.Repository
	validator *validation.Validator
	now       func() time.Time
}

// NewTagService 创建标签服务实例
func NewTagService(repo model.Repository) *TagService {
	return &TagService{
		repo:      repo,
		validator: validation.New(),
		now:       time.Now,
	}
}

var _ TagResolver = (*TagService)(nil)

// AddTag creates a tag. Names are unique and matched exactly.
func (s *TagService) AddTag(ctx context.Context, in dto.TagInput) (dto.Tag, error) {
	if err := s.validator.Validate(in); err != nil {
		return dto.Tag{}, err
	}
	tag := converter.TagFromInput(in, utils.NewID(), utils.NormalizeTime(s.now()))
	if tag.Name == "" {
		return dto.Tag{}, apperr.InvalidInput("tag name must not be blank")
	}

	_, err := s.repo.FindTagByName(ctx, tag.Name)
	switch {
	case err == nil:
		return dto.Tag{}, apperr.ErrTagNameExists
	case !errors.Is(err, model.ErrNotFound):
		logrus.WithError(err).WithField("name", tag.Name).Error("failed to check tag name")
		return dto.Tag{}, apperr.Wrap(apperr.CodeOperationFailed, "failed to create tag", err)
	}

	if err := s.repo.CreateTag(ctx, &tag); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			return dto.Tag{}, apperr.ErrTagNameExists
		}
		logrus.WithError(err).WithField("name", tag.Name).Error("failed to create tag")
		return dto.Tag{}, apperr.Wrap(apperr.CodeOperationFailed, "failed to create tag", err)
	}
	return converter.TagToDTO(&tag), nil
}

// DoAllTagsExist reports whether every reference resolves, using one batched lookup.
// Duplicate references count once; an empty list is trivially true.
func (s *TagService) DoAllTagsExist(ctx context.Context, ids []string) (bool, error) {
	unique := entity.StringArray(ids).Unique()
	if len(unique) == 0 {
		return true, nil
	}

	count, err := s.repo.CountTagsByIDs(ctx, unique)
	if err != nil {
		logrus.WithError(err).WithField("tag_ids", unique).Error("failed to check tags")
		return false, apperr.Wrap(apperr.CodeRetrievalFailed, "failed to check tags", err)
	}
	return count == int64(len(unique)), nil
}

// GetAllTags returns every tag ordered by name.
func (s *TagService) GetAllTags(ctx context.Context) ([]dto.Tag, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list tags")
		return nil, apperr.Wrap(apperr.CodeRetrievalFailed, "failed to list tags", err)
	}
	return converter.TagsToDTOs(tags), nil
}

// GetTag returns a single tag.
func (s *TagService) GetTag(ctx context.Context, id string) (dto.Tag, error) {
	tag, err := s.repo.GetTag(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return dto.Tag{}, apperr.ErrTagNotFound
		}
		logrus.WithError(err).WithField("tag_id", id).Error("failed to get tag")
		return dto.Tag{}, apperr.Wrap(apperr.CodeRetrievalFailed, "failed to get tag", err)
	}
	return converter.TagToDTO(tag), nil
}

// UpdateTag applies the supplied fields. A rename is checked against every other tag.
func (s *TagService) UpdateTag(ctx context.Context, id string, in dto.TagUpdateInput) (dto.Tag, error) {
	if err := s.validator.Validate(in); err != nil {
		return dto.Tag{}, err
	}
	updates := converter.TagUpdatesFromInput(in)
	if updates.Name != nil && *updates.Name == "" {
		return dto.Tag{}, apperr.InvalidInput("tag name must not be blank")
	}

	var result dto.Tag
	err := s.repo.RunInTransaction(ctx, func(tx model.Repository) error {
		if _, err := tx.GetTag(ctx, id); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return apperr.ErrTagNotFound
			}
			return err
		}

		if updates.Name != nil {
			other, err := tx.FindTagByName(ctx, *updates.Name)
			switch {
			case err == nil && other.ID != id:
				return apperr.ErrTagNameExists
			case err != nil && !errors.Is(err, model.ErrNotFound):
				return err
			}
		}

		tag, err := tx.UpdateTag(ctx, id, updates)
		switch {
		case errors.Is(err, model.ErrNotFound):
			return apperr.ErrTagNotFound
		case errors.Is(err, model.ErrDuplicate):
			return apperr.ErrTagNameExists
		case err != nil:
			return err
		}
		result = converter.TagToDTO(tag)
		return nil
	})
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeOperationFailed {
			logrus.WithError(err).WithField("tag_id", id).Error("failed to update tag")
		}
		return dto.Tag{}, wrapStorage(apperr.CodeUpdateFailed, "failed to update tag", err)
	}
	return result, nil
}

// DeleteTag removes a tag and pulls its reference from every entry, then returns the
// deleted tag. Both writes share a transaction when the store supports one.
func (s *TagService) DeleteTag(ctx context.Context, id string) (dto.Tag, error) {
	var result dto.Tag
	err := s.repo.RunInTransaction(ctx, func(tx model.Repository) error {
		tag, err := tx.DeleteTag(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return apperr.ErrTagNotFound
			}
			return apperr.Wrap(apperr.CodeOperationFailed, "failed to delete tag", err)
		}

		if _, err := updateEntries(ctx, tx, entity.EntryFilter{TagID: id}, entity.EntryBulkUpdate{PullTagID: id}); err != nil {
			return err
		}
		result = converter.TagToDTO(tag)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperr.ErrTagNotFound) {
			logrus.WithError(err).WithField("tag_id", id).Error("failed to delete tag")
		}
		return dto.Tag{}, wrapStorage(apperr.CodeOperationFailed, "failed to delete tag", err)
	}
	return result, nil
}
