package dto

import (
	"encoding/json"
	"fmt"
	"journal/internal/entity/common"
	"journal/internal/utils"
	"time"
)

// Entry is the domain view of an entry, with tag references resolved to full tags.
type Entry struct {
	ID        string           `json:"id"`
	Type      common.EntryType `json:"type"`
	SharedID  *string          `json:"shared_id"`
	Subject   *string          `json:"subject"`
	Quote     *string          `json:"quote"`
	Content   common.Content   `json:"content"`
	Tags      []Tag            `json:"tags"`
	Datetime  time.Time        `json:"datetime"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// EntryInput carries the fields of a new entry. A nil Datetime means "now".
// datetime accepts any ISO-8601 form utils.ParseDate does, including a bare date.
type EntryInput struct {
	Type     common.EntryType `json:"type" validate:"required,entrytype"`
	SharedID *string          `json:"shared_id,omitempty" validate:"omitempty,max=255"`
	Subject  *string          `json:"subject,omitempty"`
	Quote    *string          `json:"quote,omitempty"`
	Content  common.Content   `json:"content"`
	Tags     []string         `json:"tags,omitempty" validate:"omitempty,dive,uuid"`
	Datetime *time.Time       `json:"datetime,omitempty"`
}

// EntryUpdateInput carries a partial update. Nil fields are left untouched; a non-nil
// empty Tags slice clears every tag reference; a pointer to "" clears an optional text.
type EntryUpdateInput struct {
	SharedID *string         `json:"shared_id,omitempty" validate:"omitempty,max=255"`
	Subject  *string         `json:"subject,omitempty"`
	Quote    *string         `json:"quote,omitempty"`
	Content  *common.Content `json:"content,omitempty"`
	Tags     *[]string       `json:"tags,omitempty" validate:"omitempty,dive,uuid"`
	Datetime *time.Time      `json:"datetime,omitempty"`
}

// EntryListResponse is the response for a day query.
type EntryListResponse struct {
	Entries []Entry `json:"entries"`
}

// EntryDetailResponse is the response for a single entry.
type EntryDetailResponse struct {
	Entry Entry `json:"entry"`
}

func (in *EntryInput) UnmarshalJSON(data []byte) error {
	type plain EntryInput
	aux := struct {
		*plain
		Datetime *string `json:"datetime,omitempty"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, err := parseDatetime(aux.Datetime)
	if err != nil {
		return err
	}
	in.Datetime = t
	return nil
}

func (in *EntryUpdateInput) UnmarshalJSON(data []byte) error {
	type plain EntryUpdateInput
	aux := struct {
		*plain
		Datetime *string `json:"datetime,omitempty"`
	}{plain: (*plain)(in)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, err := parseDatetime(aux.Datetime)
	if err != nil {
		return err
	}
	in.Datetime = t
	return nil
}

func parseDatetime(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := utils.ParseDate(*raw)
	if err != nil {
		return nil, fmt.Errorf("datetime: %w", err)
	}
	return &t, nil
}
