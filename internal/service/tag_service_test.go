package service

import (
	"context"
	"testing"
	"time"

	"journal/internal/apperr"
	"journal/internal/entity/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTagUniqueName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.tags.AddTag(ctx, dto.TagInput{Name: "x", Description: ptr("first")})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	require.NotNil(t, first.Description)
	assert.Equal(t, "first", *first.Description)

	_, err = f.tags.AddTag(ctx, dto.TagInput{Name: "x"})
	assertCode(t, err, apperr.CodeTagNameExists)

	_, err = f.tags.AddTag(ctx, dto.TagInput{Name: " x "})
	assertCode(t, err, apperr.CodeTagNameExists)

	_, err = f.tags.AddTag(ctx, dto.TagInput{Name: "X"})
	assert.NoError(t, err, "names are matched exactly")
}

func TestAddTagRejectsBlankName(t *testing.T) {
	f := newFixture(t)

	_, err := f.tags.AddTag(context.Background(), dto.TagInput{Name: "   "})
	assertCode(t, err, apperr.CodeInvalidInput)
}

func TestDoAllTagsExist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	work := f.addTag(t, "work")
	home := f.addTag(t, "home")

	tests := []struct {
		name string
		ids  []string
		want bool
	}{
		{"empty", nil, true},
		{"all exist", []string{work.ID, home.ID}, true},
		{"duplicates count once", []string{work.ID, work.ID, home.ID}, true},
		{"one missing", []string{work.ID, "6f1c1a52-4c55-4a3e-9a39-3f1f6a0b8c21"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := f.tags.DoAllTagsExist(ctx, tt.ids)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestGetAllTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tags, err := f.tags.GetAllTags(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tags)
	assert.Len(t, tags, 0)

	f.addTag(t, "work")
	f.addTag(t, "family")

	tags, err = f.tags.GetAllTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"family", "work"}, tagNames(tags))
}

func TestGetTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	work := f.addTag(t, "work")

	got, err := f.tags.GetTag(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, "work", got.Name)

	_, err = f.tags.GetTag(ctx, "6f1c1a52-4c55-4a3e-9a39-3f1f6a0b8c21")
	assertCode(t, err, apperr.CodeTagNotFound)
}

func TestUpdateTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	work := f.addTag(t, "work")
	f.addTag(t, "family")

	t.Run("rename to other tag's name", func(t *testing.T) {
		_, err := f.tags.UpdateTag(ctx, work.ID, dto.TagUpdateInput{Name: ptr("family")})
		assertCode(t, err, apperr.CodeTagNameExists)
	})

	t.Run("rename to own name", func(t *testing.T) {
		got, err := f.tags.UpdateTag(ctx, work.ID, dto.TagUpdateInput{Name: ptr("work")})
		require.NoError(t, err)
		assert.Equal(t, "work", got.Name)
	})

	t.Run("only supplied fields change", func(t *testing.T) {
		got, err := f.tags.UpdateTag(ctx, work.ID, dto.TagUpdateInput{Description: ptr("day job")})
		require.NoError(t, err)
		assert.Equal(t, "work", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, "day job", *got.Description)
		assert.True(t, got.CreatedAt.Equal(work.CreatedAt))
	})

	t.Run("missing tag", func(t *testing.T) {
		_, err := f.tags.UpdateTag(ctx, "6f1c1a52-4c55-4a3e-9a39-3f1f6a0b8c21", dto.TagUpdateInput{Name: ptr("new")})
		assertCode(t, err, apperr.CodeTagNotFound)
	})
}

func TestDeleteTagCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doomed := f.addTag(t, "doomed")
	kept := f.addTag(t, "kept")
	when := time.Date(2020, 10, 25, 9, 0, 0, 0, time.UTC)

	e1, err := f.mood.AddEntry(ctx, dto.EntryInput{
		Type:     "mood",
		Subject:  ptr("morning"),
		Quote:    ptr("carpe diem"),
		Content:  moodInput("calm", when).Content,
		Tags:     []string{doomed.ID, kept.ID},
		Datetime: &when,
	}, "mood")
	require.NoError(t, err)

	e2, err := f.journal.AddEntry(ctx, dto.EntryInput{
		Type:     "journal",
		Content:  moodInput("long day", when).Content,
		Tags:     []string{doomed.ID},
		Datetime: &when,
	}, "journal")
	require.NoError(t, err)

	deleted, err := f.tags.DeleteTag(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, "doomed", deleted.Name)

	got1, err := f.mood.GetEntry(ctx, e1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, tagNames(got1.Tags))
	assert.Equal(t, e1.Subject, got1.Subject)
	assert.Equal(t, e1.Quote, got1.Quote)
	assert.Equal(t, e1.Content, got1.Content)
	assert.Equal(t, e1.Type, got1.Type)
	assert.True(t, got1.Datetime.Equal(e1.Datetime))

	got2, err := f.journal.GetEntry(ctx, e2.ID)
	require.NoError(t, err)
	assert.Len(t, got2.Tags, 0)
	assert.Equal(t, e2.Content, got2.Content)

	stored, err := f.repo.GetEntry(ctx, e1.ID)
	require.NoError(t, err)
	assert.False(t, stored.TagIDs.Contains(doomed.ID), "reference is pulled, not just hidden")

	_, err = f.tags.DeleteTag(ctx, doomed.ID)
	assertCode(t, err, apperr.CodeTagNotFound)
}
