package entity

import "time"

// EntryFilter selects entries. Zero fields do not constrain the match; From and To are inclusive.
type EntryFilter struct {
	Type  EntryType
	From  *time.Time
	To    *time.Time
	TagID string
}

// EntryBulkUpdate is an update applied to every entry matched by an EntryFilter.
type EntryBulkUpdate struct {
	// PullTagID removes every occurrence of this tag reference from the tags array.
	PullTagID string
}

// IsEmpty reports whether the update changes nothing.
func (u EntryBulkUpdate) IsEmpty() bool {
	return u.PullTagID == ""
}
