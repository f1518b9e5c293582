package service

import (
	"context"
	"journal/internal/apperr"
	"journal/internal/config"
	"journal/internal/entity"
	"journal/internal/entity/dto"
	"journal/internal/model"
	"journal/internal/validation"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo      model.Repository
	tags      *TagService
	mood      *EntryService
	journal   *EntryService
	gratitude *EntryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo, err := model.NewRepositoryFactory().CreateRepository(&config.Config{
		DBType: model.DBTypeSQLite,
		DBPath: filepath.Join(t.TempDir(), "journal.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	tags := NewTagService(repo)
	return &fixture{
		repo:      repo,
		tags:      tags,
		mood:      NewEntryService(repo, entity.EntryTypeMood, tags),
		journal:   NewEntryService(repo, entity.EntryTypeJournal, tags),
		gratitude: NewEntryService(repo, entity.EntryTypeGratitude, tags),
	}
}

func (f *fixture) addTag(t *testing.T, name string) dto.Tag {
	t.Helper()
	tag, err := f.tags.AddTag(context.Background(), dto.TagInput{Name: name})
	require.NoError(t, err)
	return tag
}

func ptr[T any](v T) *T {
	return &v
}

func moodInput(text string, when time.Time, tags ...string) dto.EntryInput {
	return dto.EntryInput{
		Type:     entity.EntryTypeMood,
		Content:  entity.TextContent(text),
		Tags:     tags,
		Datetime: &when,
	}
}

func tagNames(tags []dto.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

func assertCode(t *testing.T, err error, code apperr.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperr.CodeOf(err), "unexpected error: %v", err)
}

func newTestValidator(now time.Time) *validation.Validator {
	return validation.NewWithClock(func() time.Time { return now })
}
