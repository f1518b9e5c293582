package db

import "time"

// Tag 表示用户定义的标签。
type Tag struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" bson:"_id" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at" bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" bson:"updated_at" json:"updated_at"`

	Name        string  `gorm:"column:name;size:64;uniqueIndex;not null" bson:"name" json:"name"`
	Description *string `gorm:"column:description;type:text" bson:"description,omitempty" json:"description,omitempty"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
