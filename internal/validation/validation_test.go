package validation_test

import (
	"errors"
	"journal/internal/apperr"
	"journal/internal/entity"
	"journal/internal/entity/db"
	"journal/internal/entity/dto"
	"journal/internal/validation"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newValidator() *validation.Validator {
	return validation.NewWithClock(func() time.Time { return fixedNow })
}

func details(t *testing.T, err error) map[string]string {
	t.Helper()
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr), "expected *apperr.Error, got %T", err)
	assert.Equal(t, apperr.CodeInvalidInput, appErr.Code)
	fields, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	return fields
}

func TestValidateEntryDocument(t *testing.T) {
	v := newValidator()
	past := fixedNow.Add(-time.Hour)

	tests := []struct {
		name      string
		entry     db.Entry
		badFields []string
	}{
		{
			name:  "valid mood",
			entry: db.Entry{Type: entity.EntryTypeMood, Content: entity.TextContent("ok"), Datetime: past},
		},
		{
			name:  "valid gratitude",
			entry: db.Entry{Type: entity.EntryTypeGratitude, Content: entity.ListContent([]string{"tea"}), Datetime: past},
		},
		{
			name:      "gratitude with text",
			entry:     db.Entry{Type: entity.EntryTypeGratitude, Content: entity.TextContent("tea"), Datetime: past},
			badFields: []string{"content"},
		},
		{
			name:      "journal with list",
			entry:     db.Entry{Type: entity.EntryTypeJournal, Content: entity.ListContent([]string{"a"}), Datetime: past},
			badFields: []string{"content"},
		},
		{
			name:      "empty gratitude list",
			entry:     db.Entry{Type: entity.EntryTypeGratitude, Content: entity.ListContent(nil), Datetime: past},
			badFields: []string{"content"},
		},
		{
			name:      "future datetime",
			entry:     db.Entry{Type: entity.EntryTypeMood, Content: entity.TextContent("ok"), Datetime: fixedNow.Add(time.Millisecond)},
			badFields: []string{"datetime"},
		},
		{
			name:      "unknown type",
			entry:     db.Entry{Type: "dream", Content: entity.TextContent("ok"), Datetime: past},
			badFields: []string{"type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateEntry(&tt.entry)
			if len(tt.badFields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fields := details(t, err)
			for _, f := range tt.badFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestValidateEntryInput(t *testing.T) {
	v := newValidator()

	err := v.Validate(dto.EntryInput{
		Type:    "dream",
		Content: entity.TextContent("x"),
		Tags:    []string{"not-a-uuid"},
	})
	require.Error(t, err)
	fields := details(t, err)
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "tags[0]")

	assert.NoError(t, v.Validate(dto.EntryInput{
		Type:    entity.EntryTypeMood,
		Content: entity.TextContent("x"),
		Tags:    []string{"6f1c1a52-4c55-4a3e-9a39-3f1f6a0b8c21"},
	}))
}

func TestValidateNotFutureString(t *testing.T) {
	type query struct {
		Date string `json:"date" validate:"required,notfuture"`
	}
	v := newValidator()

	assert.NoError(t, v.Validate(query{Date: "2024-03-10"}))

	err := v.Validate(query{Date: "2024-03-11"})
	require.Error(t, err)
	assert.Contains(t, details(t, err), "date")

	err = v.Validate(query{Date: "10/03/2024"})
	require.Error(t, err)
	assert.Contains(t, details(t, err), "date")
}

func TestValidateTagInput(t *testing.T) {
	v := newValidator()
	require.Error(t, v.Validate(dto.TagInput{}))
	assert.NoError(t, v.Validate(dto.TagInput{Name: "health"}))
}

func TestValidateEntryInputShape(t *testing.T) {
	v := newValidator()
	future := fixedNow.Add(time.Minute)

	err := v.ValidateEntryInput(dto.EntryInput{Type: entity.EntryTypeGratitude, Content: entity.TextContent("tea")})
	require.Error(t, err)
	assert.Contains(t, details(t, err), "content")

	err = v.ValidateEntryInput(dto.EntryInput{Type: entity.EntryTypeMood, Content: entity.TextContent("ok"), Datetime: &future})
	require.Error(t, err)
	assert.Contains(t, details(t, err), "datetime")

	assert.NoError(t, v.ValidateEntryInput(dto.EntryInput{Type: entity.EntryTypeGratitude, Content: entity.ListContent([]string{"tea"})}))
}

func TestValidateEntryUpdate(t *testing.T) {
	v := newValidator()
	list := entity.ListContent([]string{"a"})

	err := v.ValidateEntryUpdate(dto.EntryUpdateInput{Content: &list}, entity.EntryTypeJournal)
	require.Error(t, err)
	assert.Contains(t, details(t, err), "content")

	assert.NoError(t, v.ValidateEntryUpdate(dto.EntryUpdateInput{Content: &list}, entity.EntryTypeGratitude))
	assert.NoError(t, v.ValidateEntryUpdate(dto.EntryUpdateInput{}, entity.EntryTypeMood))
}
