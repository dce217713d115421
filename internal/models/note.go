package models

// Category partitions notes. The set is closed; note ids are unique within
// a category only.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategorySchool   Category = "school"
	CategoryWork     Category = "work"
	CategoryIdeas    Category = "ideas"
	CategoryRandom   Category = "random"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryPersonal,
	CategorySchool,
	CategoryWork,
	CategoryIdeas,
	CategoryRandom,
}

// ValidCategory reports whether c is a member of the closed category set.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Attachment references a payload stored under the data directory. Path is
// relative to the store root.
type Attachment struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // MIME string
}

type Note struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   string       `json:"createdAt,omitempty"` // RFC3339
	UpdatedAt   string       `json:"updatedAt,omitempty"` // RFC3339
}

// NoteMap is the full notes document: category key to ordered notes.
type NoteMap map[Category][]Note

// EmptyNoteMap returns a map with every category present and empty.
func EmptyNoteMap() NoteMap {
	m := make(NoteMap, len(Categories))
	for _, c := range Categories {
		m[c] = []Note{}
	}
	return m
}
