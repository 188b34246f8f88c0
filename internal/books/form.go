package books

import "github.com/mohmadimran/books-manager-frontend/internal/model"

// Form is the transient draft used by the add/edit modal. Tags are held as
// the comma-joined editing string, not the parsed sequence — parsing
// happens once, on save.
type Form struct {
	EditingID string // "" when adding a new book
	Title     string
	Author    string
	Tags      string
	Status    string
}

// NewForm returns the empty "Add Book" form with the default status.
func NewForm() Form {
	return Form{Status: string(model.StatusWantToRead)}
}

// FormFromBook seeds the "Edit Book" form from an existing book.
func FormFromBook(b model.Book) Form {
	return Form{
		EditingID: b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Tags:      JoinTags(b.Tags),
		Status:    string(b.Status),
	}
}

// Editing reports whether the form targets an existing book.
func (f Form) Editing() bool {
	return f.EditingID != ""
}
