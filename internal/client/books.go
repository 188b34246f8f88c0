package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/mohmadimran/books-manager-frontend/internal/model"
)

// BookInput carries the full field set for creating a book or replacing
// all fields of an existing one.
type BookInput struct {
	Title  string       `json:"title"`
	Author string       `json:"author"`
	Tags   []string     `json:"tags"`
	Status model.Status `json:"status"`
}

// BookPatch is a partial update. Nil fields are omitted from the request
// body entirely, so the backend only touches what's present — this is how
// the inline status dropdown updates status without resending the rest of
// the book.
type BookPatch struct {
	Title  *string       `json:"title,omitempty"`
	Author *string       `json:"author,omitempty"`
	Tags   *[]string     `json:"tags,omitempty"`
	Status *model.Status `json:"status,omitempty"`
}

// PatchFromInput builds a full-field patch, used by the edit form's save.
func PatchFromInput(in BookInput) BookPatch {
	return BookPatch{
		Title:  &in.Title,
		Author: &in.Author,
		Tags:   &in.Tags,
		Status: &in.Status,
	}
}

// StatusPatch builds a status-only patch for the inline status change.
func StatusPatch(status model.Status) BookPatch {
	return BookPatch{Status: &status}
}

// ListBooks fetches the full collection. The backend does no filtering or
// pagination; the collection view filters locally.
func (c *Client) ListBooks(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := c.do(ctx, http.MethodGet, "/api/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook adds a new book and returns the created record.
func (c *Client) CreateBook(ctx context.Context, in BookInput) (*model.Book, error) {
	var book model.Book
	if err := c.do(ctx, http.MethodPost, "/api/books", in, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook applies a full or partial update and returns the updated record.
func (c *Client) UpdateBook(ctx context.Context, id string, patch BookPatch) (*model.Book, error) {
	var book model.Book
	if err := c.do(ctx, http.MethodPut, "/api/books/"+url.PathEscape(id), patch, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteBook removes a book.
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil)
}
