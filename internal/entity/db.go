package entity

// Re-export common types so callers only need the entity package for everyday use.

import (
	"journal/internal/entity/common"
)

type StringArray = common.StringArray
type Content = common.Content
type ContentKind = common.ContentKind
type EntryType = common.EntryType

const (
	EntryTypeMood      = common.EntryTypeMood
	EntryTypeJournal   = common.EntryTypeJournal
	EntryTypeGratitude = common.EntryTypeGratitude
)

// EntryTypes lists every supported entry type.
var EntryTypes = common.EntryTypes

// Content constructors
var (
	TextContent = common.TextContent
	ListContent = common.ListContent
)
