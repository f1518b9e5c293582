// Package usecase exposes one operation object per user action. Each delegates to a
// single service method.
package usecase

import (
	"context"
	"journal/internal/entity"
	"journal/internal/entity/dto"
	"time"
)

// EntryRepository is the entry service surface the entry use cases need.
type EntryRepository interface {
	AddEntry(ctx context.Context, in dto.EntryInput, expected entity.EntryType) (dto.Entry, error)
	GetEntryByDate(ctx context.Context, date time.Time, expected entity.EntryType) ([]dto.Entry, error)
	UpdateEntry(ctx context.Context, id string, in dto.EntryUpdateInput) (dto.Entry, error)
	DeleteEntry(ctx context.Context, id string) (dto.Entry, error)
}

// TagRepository is the tag service surface the tag use cases need.
type TagRepository interface {
	AddTag(ctx context.Context, in dto.TagInput) (dto.Tag, error)
	GetAllTags(ctx context.Context) ([]dto.Tag, error)
	UpdateTag(ctx context.Context, id string, in dto.TagUpdateInput) (dto.Tag, error)
	DeleteTag(ctx context.Context, id string) (dto.Tag, error)
}

// AddEntry records a new entry of one type.
type AddEntry struct {
	repo      EntryRepository
	entryType entity.EntryType
}

func NewAddEntry(repo EntryRepository, entryType entity.EntryType) *AddEntry {
	return &AddEntry{repo: repo, entryType: entryType}
}

func (u *AddEntry) Execute(ctx context.Context, in dto.EntryInput) (dto.Entry, error) {
	return u.repo.AddEntry(ctx, in, u.entryType)
}

// GetEntryByDate lists the entries of one type recorded on a UTC calendar day.
type GetEntryByDate struct {
	repo      EntryRepository
	entryType entity.EntryType
}

func NewGetEntryByDate(repo EntryRepository, entryType entity.EntryType) *GetEntryByDate {
	return &GetEntryByDate{repo: repo, entryType: entryType}
}

func (u *GetEntryByDate) Execute(ctx context.Context, date time.Time) ([]dto.Entry, error) {
	return u.repo.GetEntryByDate(ctx, date, u.entryType)
}

// UpdateEntry changes the supplied fields of an entry.
type UpdateEntry struct {
	repo EntryRepository
}

func NewUpdateEntry(repo EntryRepository) *UpdateEntry {
	return &UpdateEntry{repo: repo}
}

func (u *UpdateEntry) Execute(ctx context.Context, id string, in dto.EntryUpdateInput) (dto.Entry, error) {
	return u.repo.UpdateEntry(ctx, id, in)
}

// DeleteEntry removes an entry.
type DeleteEntry struct {
	repo EntryRepository
}

func NewDeleteEntry(repo EntryRepository) *DeleteEntry {
	return &DeleteEntry{repo: repo}
}

func (u *DeleteEntry) Execute(ctx context.Context, id string) (dto.Entry, error) {
	return u.repo.DeleteEntry(ctx, id)
}

// AddTag creates a tag.
type AddTag struct {
	repo TagRepository
}

func NewAddTag(repo TagRepository) *AddTag {
	return &AddTag{repo: repo}
}

func (u *AddTag) Execute(ctx context.Context, in dto.TagInput) (dto.Tag, error) {
	return u.repo.AddTag(ctx, in)
}

// GetAllTags lists every tag.
type GetAllTags struct {
	repo TagRepository
}

func NewGetAllTags(repo TagRepository) *GetAllTags {
	return &GetAllTags{repo: repo}
}

func (u *GetAllTags) Execute(ctx context.Context) ([]dto.Tag, error) {
	return u.repo.GetAllTags(ctx)
}

// UpdateTag changes the supplied fields of a tag.
type UpdateTag struct {
	repo TagRepository
}

func NewUpdateTag(repo TagRepository) *UpdateTag {
	return &UpdateTag{repo: repo}
}

func (u *UpdateTag) Execute(ctx context.Context, id string, in dto.TagUpdateInput) (dto.Tag, error) {
	return u.repo.UpdateTag(ctx, id, in)
}

// DeleteTag removes a tag and its references.
type DeleteTag struct {
	repo TagRepository
}

func NewDeleteTag(repo TagRepository) *DeleteTag {
	return &DeleteTag{repo: repo}
}

func (u *DeleteTag) Execute(ctx context.Context, id string) (dto.Tag, error) {
	return u.repo.DeleteTag(ctx, id)
}

// EntryUseCases groups the use cases of one entry type.
type EntryUseCases struct {
	Add       *AddEntry
	GetByDate *GetEntryByDate
	Update    *UpdateEntry
	Delete    *DeleteEntry
}

// NewEntryUseCases builds the use cases bound to entryType.
func NewEntryUseCases(repo EntryRepository, entryType entity.EntryType) EntryUseCases {
	return EntryUseCases{
		Add:       NewAddEntry(repo, entryType),
		GetByDate: NewGetEntryByDate(repo, entryType),
		Update:    NewUpdateEntry(repo),
		Delete:    NewDeleteEntry(repo),
	}
}

// TagUseCases groups the tag use cases.
type TagUseCases struct {
	Add    *AddTag
	GetAll *GetAllTags
	Update *UpdateTag
	Delete *DeleteTag
}

// NewTagUseCases builds the tag use cases.
func NewTagUseCases(repo TagRepository) TagUseCases {
	return TagUseCases{
		Add:    NewAddTag(repo),
		GetAll: NewGetAllTags(repo),
		Update: NewUpdateTag(repo),
		Delete: NewDeleteTag(repo),
	}
}
