package service

import (
	"context"
	"log/slog"

	"github.com/mohmadimran/books-manager-frontend/internal/apperror"
	"github.com/mohmadimran/books-manager-frontend/internal/books"
	"github.com/mohmadimran/books-manager-frontend/internal/client"
	"github.com/mohmadimran/books-manager-frontend/internal/model"
)

// Fallback messages for book mutations. A mutation failure must never look
// like success, so every error path ends in one of these or the backend's
// own message.
const (
	loadFallback   = "Could not load books"
	saveFallback   = "Could not save book"
	deleteFallback = "Could not delete book"
	statusFallback = "Could not update status"
)

// BookAPI is the slice of the gateway client the collection flows need.
type BookAPI interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	CreateBook(ctx context.Context, in client.BookInput) (*model.Book, error)
	UpdateBook(ctx context.Context, id string, patch client.BookPatch) (*model.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// BookService issues the collection's API calls. It holds no book state:
// the loaded collection lives for exactly one dashboard render, and every
// mutation is followed by a fresh List — there is no local patching.
type BookService struct {
	api    BookAPI
	logger *slog.Logger
}

// NewBookService creates a BookService.
func NewBookService(api BookAPI, logger *slog.Logger) *BookService {
	return &BookService{
		api:    api,
		logger: logger,
	}
}

// List fetches the full collection from the backend.
func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	collection, err := s.api.ListBooks(ctx)
	if err != nil {
		s.logger.Error("failed to load books", slog.String("error", err.Error()))
		return nil, userFacing(err, loadFallback)
	}
	return collection, nil
}

// Save creates a new book or replaces all fields of an existing one,
// depending on whether the form carries an editing target. The form's tag
// string is parsed here — trimmed, empties kept.
func (s *BookService) Save(ctx context.Context, form books.Form) error {
	status := model.Status(form.Status)
	if !model.ValidStatus(status) {
		return apperror.ValidationFailed("status", "Invalid status")
	}

	in := client.BookInput{
		Title:  form.Title,
		Author: form.Author,
		Tags:   books.ParseTags(form.Tags),
		Status: status,
	}

	var err error
	if form.Editing() {
		_, err = s.api.UpdateBook(ctx, form.EditingID, client.PatchFromInput(in))
	} else {
		_, err = s.api.CreateBook(ctx, in)
	}
	if err != nil {
		s.logger.Error("failed to save book",
			slog.String("editingID", form.EditingID),
			slog.String("error", err.Error()),
		)
		return userFacing(err, saveFallback)
	}

	s.logger.Info("book saved",
		slog.String("title", form.Title),
		slog.Bool("edit", form.Editing()),
	)
	return nil
}

// ChangeStatus applies the inline dropdown's status-only partial update.
// No other field travels with it.
func (s *BookService) ChangeStatus(ctx context.Context, id string, status model.Status) error {
	if !model.ValidStatus(status) {
		return apperror.ValidationFailed("status", "Invalid status")
	}

	if _, err := s.api.UpdateBook(ctx, id, client.StatusPatch(status)); err != nil {
		s.logger.Error("failed to change status",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return userFacing(err, statusFallback)
	}

	s.logger.Info("book status changed",
		slog.String("id", id),
		slog.String("status", string(status)),
	)
	return nil
}

// Delete removes a book. The caller is responsible for having confirmed
// the action with the user first.
func (s *BookService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteBook(ctx, id); err != nil {
		s.logger.Error("failed to delete book",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return userFacing(err, deleteFallback)
	}

	s.logger.Info("book deleted", slog.String("id", id))
	return nil
}
