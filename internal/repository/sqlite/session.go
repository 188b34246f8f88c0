package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mohmadimran/books-manager-frontend/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X.
// If *Y doesn't implement X, the compiler errors immediately instead of at
// the first call site that expects the interface.
var _ repository.SessionRepository = (*DB)(nil)

// Storage keys for the two persisted values. They mirror the two
// localStorage entries a browser client would keep.
const (
	keyToken = "token"
	keyUser  = "user"
)

// Load returns the persisted token and user JSON.
//
// sql.ErrNoRows is NOT an error here — a missing row just means the value
// was never saved (fresh install, or cleared on logout), so it comes back
// as an empty string. The session store decides what an incomplete pair
// means; this layer only reads.
func (db *DB) Load(ctx context.Context) (string, string, error) {
	token, err := db.getValue(ctx, keyToken)
	if err != nil {
		return "", "", fmt.Errorf("sqlite: loading token: %w", err)
	}

	user, err := db.getValue(ctx, keyUser)
	if err != nil {
		return "", "", fmt.Errorf("sqlite: loading user: %w", err)
	}

	return token, user, nil
}

// Save upserts both values in a single transaction so a crash mid-write
// can't leave the token persisted without the user (or vice versa).
func (db *DB) Save(ctx context.Context, token, userJSON string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning save: %w", err)
	}
	// Rollback is a no-op after a successful Commit.
	defer tx.Rollback()

	now := time.Now()
	for _, kv := range []struct{ key, value string }{
		{keyToken, token},
		{keyUser, userJSON},
	} {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO session_state (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			kv.key, kv.value, now,
		)
		if err != nil {
			return fmt.Errorf("sqlite: saving %s: %w", kv.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing save: %w", err)
	}
	return nil
}

// Clear removes both values together (logout).
func (db *DB) Clear(ctx context.Context) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM session_state WHERE key IN (?, ?)`, keyToken, keyUser,
	)
	if err != nil {
		return fmt.Errorf("sqlite: clearing session: %w", err)
	}
	return nil
}

func (db *DB) getValue(ctx context.Context, key string) (string, error) {
	var value string
	err := db.conn.QueryRowContext(ctx,
		`SELECT value FROM session_state WHERE key = ?`, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}
