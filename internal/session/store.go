// Package session holds the single piece of process-wide mutable state: the
// current authenticated identity and its bearer token.
//
// LIFECYCLE:
//
//	Initialize → restore a previously persisted session (if any)
//	Establish  → called after a successful login; persist + switch to authenticated
//	Clear      → called on logout; wipe persistence + switch to anonymous
//
// Everything else in the app only READS the session: the route guard checks
// CanAccess, the API client asks for the token, templates show the user's
// name. Keeping all writes here (instead of letting components reach into
// shared storage directly) is what makes the invariant below enforceable.
//
// INVARIANT:
// A session is either fully authenticated (user AND token present) or fully
// anonymous (neither present). There is no partial state — Initialize
// discards a half-persisted pair rather than restoring it.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mohmadimran/books-manager-frontend/internal/model"
	"github.com/mohmadimran/books-manager-frontend/internal/repository"
)

// Session is a snapshot of the current auth state. It is a value type:
// readers get a copy and can't mutate the store through it.
type Session struct {
	User  *model.User
	Token string
}

// Authenticated reports whether this snapshot carries a full identity.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// CanAccess is the route-guard predicate: may a request holding this
// session reach the protected collection view?
//
// It's a pure function (not a method on Store) so guarding doesn't depend
// on any framework — middleware, templates, and tests all call the same
// predicate.
func CanAccess(s Session) bool {
	return s.Authenticated()
}

// Store owns the current session and its persistence.
//
// CONCURRENCY:
// The HTTP server handles requests on many goroutines, so reads and writes
// are guarded by an RWMutex. Writes are rare (login/logout); reads happen
// on every request.
type Store struct {
	mu      sync.RWMutex
	current Session
	subs    []func(Session)

	repo   repository.SessionRepository
	logger *slog.Logger
}

// NewStore creates a Store in the anonymous state. Call Initialize to
// restore any persisted session.
func NewStore(repo repository.SessionRepository, logger *slog.Logger) *Store {
	return &Store{
		repo:   repo,
		logger: logger,
	}
}

// Initialize restores a previously persisted session, if one exists.
//
// A restored session is UNVERIFIED — we don't ask the backend whether the
// token is still good. The first protected API call will either succeed or
// fail with an auth error, exactly as it would have mid-session.
//
// If only one of the two values survived (half-written storage), we treat
// the session as anonymous rather than restore a partial state.
func (st *Store) Initialize(ctx context.Context) error {
	token, userJSON, err := st.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("session: loading persisted session: %w", err)
	}

	if token == "" || userJSON == "" {
		st.logger.Debug("no persisted session found")
		return nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		// A corrupt user record is treated like no session at all.
		st.logger.Warn("persisted user record is corrupt, starting anonymous",
			slog.String("error", err.Error()),
		)
		return nil
	}

	st.mu.Lock()
	st.current = Session{User: &user, Token: token}
	st.mu.Unlock()

	st.logger.Info("session restored from disk", slog.String("user", user.Name))
	return nil
}

// Establish persists the user/token pair and switches to the authenticated
// state. Called only after a successful login — signup never establishes a
// session.
//
// Persistence happens BEFORE the in-memory switch: if the write fails, the
// store stays in its previous state and the caller sees the error.
func (st *Store) Establish(ctx context.Context, user *model.User, token string) error {
	if user == nil || token == "" {
		return fmt.Errorf("session: establish requires both user and token")
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encoding user: %w", err)
	}

	if err := st.repo.Save(ctx, token, string(userJSON)); err != nil {
		return fmt.Errorf("session: persisting session: %w", err)
	}

	st.mu.Lock()
	st.current = Session{User: user, Token: token}
	st.mu.Unlock()

	st.logger.Info("session established", slog.String("user", user.Name))
	st.notify()
	return nil
}

// Clear wipes the persisted values and resets to anonymous. Dependents
// (route guard, shell) observe the anonymous state on their next read.
func (st *Store) Clear(ctx context.Context) error {
	if err := st.repo.Clear(ctx); err != nil {
		return fmt.Errorf("session: clearing persisted session: %w", err)
	}

	st.mu.Lock()
	st.current = Session{}
	st.mu.Unlock()

	st.logger.Info("session cleared")
	st.notify()
	return nil
}

// Current returns a snapshot of the session.
func (st *Store) Current() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// IsAuthenticated is a convenience over Current().Authenticated().
func (st *Store) IsAuthenticated() bool {
	return st.Current().Authenticated()
}

// Token returns the current bearer token, or "" when anonymous.
// This makes *Store usable as the API client's token source.
func (st *Store) Token() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current.Token
}

// Subscribe registers fn to be called with a session snapshot after every
// Establish or Clear. Callbacks run synchronously on the mutating
// goroutine, so keep them cheap (logging, cache invalidation).
func (st *Store) Subscribe(fn func(Session)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.subs = append(st.subs, fn)
}

// notify calls subscribers outside the lock so a callback reading the
// store can't deadlock.
func (st *Store) notify() {
	st.mu.RLock()
	snapshot := st.current
	subs := make([]func(Session), len(st.subs))
	copy(subs, st.subs)
	st.mu.RUnlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
