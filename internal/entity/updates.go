package entity

import "time"

// EntryUpdates 条目更新字段
type EntryUpdates struct {
	SharedID *string
	Subject  *string
	Quote    *string
	Content  *Content
	TagIDs   *StringArray
	Datetime *time.Time
}

// ToMap 转换为更新 map，键与列名/文档字段名一致
func (u EntryUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.SharedID != nil {
		updates["shared_id"] = nullableText(*u.SharedID)
	}
	if u.Subject != nil {
		updates["subject"] = nullableText(*u.Subject)
	}
	if u.Quote != nil {
		updates["quote"] = nullableText(*u.Quote)
	}
	if u.Content != nil {
		updates["content"] = *u.Content
	}
	if u.TagIDs != nil {
		tagIDs := *u.TagIDs
		if tagIDs == nil {
			tagIDs = StringArray{}
		}
		updates["tag_ids"] = tagIDs
	}
	if u.Datetime != nil {
		updates["datetime"] = *u.Datetime
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u EntryUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// TagUpdates 标签更新字段
type TagUpdates struct {
	Name        *string
	Description *string
}

// ToMap 转换为更新 map
func (u TagUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.Name != nil {
		updates["name"] = *u.Name
	}
	if u.Description != nil {
		updates["description"] = nullableText(*u.Description)
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u TagUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}

// nullableText maps an empty string to NULL so optional texts can be cleared.
func nullableText(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
