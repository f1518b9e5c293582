package converter

import (
	"journal/internal/entity"
	"journal/internal/entity/db"
	"journal/internal/entity/dto"
	"journal/internal/utils"
	"time"
)

// TagIndex maps tag ids to their stored tags for reference resolution.
type TagIndex map[string]db.Tag

// NewTagIndex indexes tags by id.
func NewTagIndex(tags []db.Tag) TagIndex {
	index := make(TagIndex, len(tags))
	for _, t := range tags {
		index[t.ID] = t
	}
	return index
}

// ReferencedTagIDs returns the distinct tag references held by the entries.
func ReferencedTagIDs(entries ...db.Entry) []string {
	var all entity.StringArray
	for _, e := range entries {
		all = append(all, e.TagIDs...)
	}
	return all.Unique()
}

// EntryToDTO converts db.Entry to dto.Entry, resolving tag references through index.
// References are kept in stored order; duplicates and references missing from the
// index are dropped.
func EntryToDTO(e *db.Entry, index TagIndex) dto.Entry {
	if e == nil {
		return dto.Entry{}
	}

	tags := make([]dto.Tag, 0, len(e.TagIDs))
	for _, id := range e.TagIDs.Unique() {
		t, ok := index[id]
		if !ok {
			continue
		}
		tags = append(tags, TagToDTO(&t))
	}

	return dto.Entry{
		ID:        e.ID,
		Type:      e.Type,
		SharedID:  e.SharedID,
		Subject:   e.Subject,
		Quote:     e.Quote,
		Content:   e.Content,
		Tags:      tags,
		Datetime:  e.Datetime.UTC(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// EntriesToDTOs converts a slice of db.Entry to dto.Entry.
func EntriesToDTOs(entries []db.Entry, index TagIndex) []dto.Entry {
	items := make([]dto.Entry, len(entries))
	for i, e := range entries {
		items[i] = EntryToDTO(&e, index)
	}
	return items
}

// EntryFromInput builds the stored form of a new entry. A missing datetime defaults to now.
func EntryFromInput(in dto.EntryInput, id string, now time.Time) db.Entry {
	when := now
	if in.Datetime != nil {
		when = *in.Datetime
	}
	return db.Entry{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
		Type:      in.Type,
		SharedID:  nonEmpty(in.SharedID),
		Subject:   nonEmpty(in.Subject),
		Quote:     nonEmpty(in.Quote),
		Content:   in.Content,
		TagIDs:    entity.StringArray(in.Tags).ToSlice(),
		Datetime:  utils.NormalizeTime(when),
	}
}

// EntryUpdatesFromInput converts a partial entry update.
func EntryUpdatesFromInput(in dto.EntryUpdateInput) entity.EntryUpdates {
	updates := entity.EntryUpdates{
		SharedID: in.SharedID,
		Subject:  in.Subject,
		Quote:    in.Quote,
		Content:  in.Content,
	}
	if in.Tags != nil {
		tagIDs := entity.StringArray(*in.Tags).ToSlice()
		arr := entity.StringArray(tagIDs)
		updates.TagIDs = &arr
	}
	if in.Datetime != nil {
		when := utils.NormalizeTime(*in.Datetime)
		updates.Datetime = &when
	}
	return updates
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
