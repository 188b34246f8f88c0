package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mohmadimran/books-manager-frontend/internal/books"
	"github.com/mohmadimran/books-manager-frontend/internal/model"
	"github.com/mohmadimran/books-manager-frontend/internal/service"
	"github.com/mohmadimran/books-manager-frontend/internal/session"
)

// DashboardHandler serves the book collection view and its mutations.
//
// RELOAD-AFTER-MUTATION:
// Every mutation handler ends in a redirect back to GET /dashboard, and
// GET /dashboard always fetches the full collection fresh. That redirect
// IS the reload — there is no local cache to patch, no optimistic update
// to reconcile. A mutation failure redirects with an ?error message so it
// can never masquerade as success.
type DashboardHandler struct {
	svc      *service.BookService
	sessions *session.Store
	logger   *slog.Logger
	tmpl     *template.Template
}

// dashboardView is the data for the dashboard page.
//
// Summary is computed over the UNFILTERED collection; Books holds the
// filtered view. Form is non-nil while the add/edit modal is open.
type dashboardView struct {
	Title string
	User  *model.User

	Summary      books.Summary
	Books        []model.Book
	StatusFilter string
	TagFilter    string
	Statuses     []model.Status

	Form  *books.Form
	Error string
}

// NewDashboardHandler parses the dashboard template and wires dependencies.
func NewDashboardHandler(
	svc *service.BookService,
	sessions *session.Store,
	templateDir string,
	logger *slog.Logger,
) (*DashboardHandler, error) {
	tmpl, err := parsePage(templateDir, "dashboard.html")
	if err != nil {
		return nil, err
	}

	return &DashboardHandler{
		svc:      svc,
		sessions: sessions,
		logger:   logger,
		tmpl:     tmpl,
	}, nil
}

// HandleDashboard renders the collection view.
//
// HTTP: GET /dashboard?status=&tag=&modal=add&edit=<id>&error=<msg>
//
// Filters live in the query string — transient by construction, gone on
// the next plain navigation. The filtered view and the summary are both
// recomputed from the freshly loaded collection on every request.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := dashboardView{
		Title:        "Dashboard — Books Manager",
		User:         h.sessions.Current().User,
		StatusFilter: q.Get("status"),
		TagFilter:    q.Get("tag"),
		Statuses:     model.Statuses,
		Error:        q.Get("error"),
	}

	collection, err := h.svc.List(r.Context())
	if err != nil {
		// Render the shell with the error instead of a blank 500 — the
		// user can still log out or retry.
		view.Error = err.Error()
		renderHTML(w, h.logger, h.tmpl, view)
		return
	}

	view.Summary = books.Summarize(collection)
	view.Books = books.Filter(collection, view.StatusFilter, view.TagFilter)

	switch {
	case q.Get("modal") == "add":
		form := books.NewForm()
		view.Form = &form
	case q.Get("edit") != "":
		// Seed the edit form from the loaded collection. An unknown ID
		// (deleted in another tab, stale link) just leaves the modal shut.
		for _, b := range collection {
			if b.ID == q.Get("edit") {
				form := books.FormFromBook(b)
				view.Form = &form
				break
			}
		}
	}

	renderHTML(w, h.logger, h.tmpl, view)
}

// HandleSaveBook processes the add/edit modal's save.
//
// HTTP: POST /books
// A hidden "id" field distinguishes edit (full-field update) from add
// (create). Either way the browser is sent back to the dashboard, which
// reloads the collection.
func (h *DashboardHandler) HandleSaveBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	form := books.Form{
		EditingID: r.PostFormValue("id"),
		Title:     r.PostFormValue("title"),
		Author:    r.PostFormValue("author"),
		Tags:      r.PostFormValue("tags"),
		Status:    r.PostFormValue("status"),
	}

	h.redirectToDashboard(w, r, h.svc.Save(r.Context(), form))
}

// HandleChangeStatus processes the inline status dropdown.
//
// HTTP: POST /books/{id}/status
// One status-only partial update, then the reload redirect. No modal
// involvement.
func (h *DashboardHandler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form data", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	status := model.Status(r.PostFormValue("status"))

	h.redirectToDashboard(w, r, h.svc.ChangeStatus(r.Context(), id, status))
}

// HandleDeleteBook processes a delete.
//
// HTTP: POST /books/{id}/delete
// The confirmation step happens in the browser (the form's onsubmit
// confirm) — by the time this handler runs, the user has already agreed.
func (h *DashboardHandler) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.redirectToDashboard(w, r, h.svc.Delete(r.Context(), id))
}

// redirectToDashboard finishes a mutation: straight back on success,
// back with the error message in the query string on failure.
func (h *DashboardHandler) redirectToDashboard(w http.ResponseWriter, r *http.Request, err error) {
	target := "/dashboard"
	if err != nil {
		target += "?error=" + url.QueryEscape(err.Error())
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
