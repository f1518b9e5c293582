package db

import (
	"journal/internal/entity/common"
	"time"
)

// Entry is the stored form of a journal entry. Column and BSON field names are kept
// identical so update maps work against both the relational and the document store.
type Entry struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" bson:"updated_at" json:"updated_at"`

	Type     common.EntryType `gorm:"column:entry_type;type:varchar(16);not null;index:idx_entries_type_datetime,priority:1" bson:"entry_type" json:"type" validate:"required,entrytype"`
	SharedID *string          `gorm:"column:shared_id;type:varchar(255);index" bson:"shared_id,omitempty" json:"shared_id"`
	Subject  *string          `gorm:"column:subject;type:text" bson:"subject,omitempty" json:"subject"`
	Quote    *string          `gorm:"column:quote;type:text" bson:"quote,omitempty" json:"quote"`

	Content common.Content     `gorm:"column:content;type:text;not null" bson:"content" json:"content"`
	TagIDs  common.StringArray `gorm:"column:tag_ids;type:text" bson:"tag_ids" json:"tag_ids"`

	Datetime time.Time `gorm:"column:datetime;not null;index:idx_entries_type_datetime,priority:2" bson:"datetime" json:"datetime"`
}

// TableName 指定表名
func (Entry) TableName() string {
	return "entries"
}
