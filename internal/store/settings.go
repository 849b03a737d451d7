package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const signingSecretKey = "form_signing_secret"

// GetSigningSecret retrieves the form-token signing secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses insert-if-absent + re-SELECT to avoid a TOCTOU race on concurrent startup.
func (s *Store) GetSigningSecret(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating signing secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	query, args, err := s.sb.Insert("settings").
		Columns("key", "value").
		Values(signingSecretKey, candidate).
		Suffix("ON CONFLICT (key) DO NOTHING").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("building settings insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("storing signing secret: %w", err)
	}

	// Always read back (either our insert or the existing value).
	query, args, err = s.sb.Select("value").
		From("settings").
		Where(sq.Eq{"key": signingSecretKey}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("building settings query: %w", err)
	}

	var secret string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&secret); err != nil {
		return "", fmt.Errorf("querying signing secret: %w", err)
	}
	return secret, nil
}
