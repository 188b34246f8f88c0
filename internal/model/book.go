package model

// Status is a book's place in the reading lifecycle.
//
// WHY A NAMED STRING TYPE?
// The backend stores the status as one of three display strings, so we keep
// the same representation on the wire. A named type (instead of bare string)
// lets function signatures say what they mean — Filter(status Status) reads
// better than Filter(s string) — while costing nothing at runtime.
type Status string

const (
	StatusWantToRead Status = "Want to Read"
	StatusReading    Status = "Reading"
	StatusCompleted  Status = "Completed"
)

// Statuses lists all statuses in the order they appear in dropdowns.
var Statuses = []Status{StatusWantToRead, StatusReading, StatusCompleted}

// ValidStatus reports whether s is one of the three known statuses.
func ValidStatus(s Status) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Book represents a single tracked book.
//
// WHY `json:"_id"`?
// The backend is a MongoDB service and serialises the document identifier
// as "_id", not "id". The struct tag keeps our Go field name idiomatic
// while matching the wire format exactly.
//
// The Tags slice preserves order as entered by the user.
type Book struct {
	ID     string   `json:"_id"`
	Title  string   `json:"title"`
	Author string   `json:"author"`
	Tags   []string `json:"tags"`
	Status Status   `json:"status"`
}
