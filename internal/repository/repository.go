package repository

import "context"

// SessionRepository persists the current session so it survives restarts.
//
// The token and the serialised user record are stored under separate keys
// (mirroring how a browser client would keep them as two localStorage
// entries) but are always written and cleared together.
type SessionRepository interface {
	// Load returns the persisted token and user JSON. Missing values come
	// back as empty strings, not errors.
	Load(ctx context.Context) (token, userJSON string, err error)
	Save(ctx context.Context, token, userJSON string) error
	Clear(ctx context.Context) error
}
