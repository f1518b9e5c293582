package converter

import (
	"journal/internal/entity"
	"journal/internal/entity/db"
	"journal/internal/entity/dto"
	"strings"
	"time"
)

// TagToDTO converts db.Tag to dto.Tag.
func TagToDTO(t *db.Tag) dto.Tag {
	if t == nil {
		return dto.Tag{}
	}
	return dto.Tag{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TagsToDTOs converts a slice of db.Tag to dto.Tag.
func TagsToDTOs(tags []db.Tag) []dto.Tag {
	dtos := make([]dto.Tag, len(tags))
	for i, t := range tags {
		dtos[i] = TagToDTO(&t)
	}
	return dtos
}

// TagFromInput builds the stored form of a new tag.
func TagFromInput(in dto.TagInput, id string, now time.Time) db.Tag {
	tag := db.Tag{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		desc := strings.TrimSpace(*in.Description)
		tag.Description = &desc
	}
	return tag
}

// TagUpdatesFromInput converts a partial tag update.
func TagUpdatesFromInput(in dto.TagUpdateInput) entity.TagUpdates {
	var updates entity.TagUpdates
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		updates.Name = &name
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		updates.Description = &desc
	}
	return updates
}
