package dto

import "time"

// Tag is the DTO representation of a tag.
type Tag struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TagInput carries the fields of a new tag.
type TagInput struct {
	Name        string  `json:"name" binding:"required" validate:"required,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// TagUpdateInput carries the fields to change on a tag. Nil fields are left untouched.
type TagUpdateInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}

// TagListResponse is the response for listing tags.
type TagListResponse struct {
	Tags []Tag `json:"tags"`
}

// TagDetailResponse is the response for a single tag.
type TagDetailResponse struct {
	Tag Tag `json:"tag"`
}
