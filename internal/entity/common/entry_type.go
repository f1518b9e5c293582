package common

import "fmt"

// EntryType is the kind of a journal entry. It is fixed when the entry is created.
type EntryType string

const (
	EntryTypeMood      EntryType = "mood"
	EntryTypeJournal   EntryType = "journal"
	EntryTypeGratitude EntryType = "gratitude"
)

// EntryTypes lists every supported entry type.
var EntryTypes = []EntryType{EntryTypeMood, EntryTypeJournal, EntryTypeGratitude}

// Valid reports whether t is a supported entry type.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeMood, EntryTypeJournal, EntryTypeGratitude:
		return true
	}
	return false
}

// ContentKind returns the content shape entries of this type must carry.
func (t EntryType) ContentKind() ContentKind {
	if t == EntryTypeGratitude {
		return ContentList
	}
	return ContentText
}

// ParseEntryType converts a raw string into an EntryType.
func ParseEntryType(value string) (EntryType, error) {
	t := EntryType(value)
	if !t.Valid() {
		return "", fmt.Errorf("unsupported entry type: %q", value)
	}
	return t, nil
}
