package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidToken is returned for tokens Decode cannot read.
var ErrInvalidToken = errors.New("invalid pagination token")

// Cursor points just past the last mutual match of a page.
// Pages are ordered newest first, ties broken by candidate id descending.
type Cursor struct {
	CandidateID string `json:"c"`
	UpdatedUnix int64  `json:"u"` // millis
}

// At builds the cursor for a row updated at t.
func At(t time.Time, candidateID string) Cursor {
	return Cursor{CandidateID: candidateID, UpdatedUnix: t.UnixMilli()}
}

// IsZero reports whether c is the first-page cursor.
func (c Cursor) IsZero() bool {
	return c.CandidateID == "" && c.UpdatedUnix == 0
}

// UpdatedAt is the cursor timestamp in UTC.
func (c Cursor) UpdatedAt() time.Time {
	return time.UnixMilli(c.UpdatedUnix).UTC()
}

// Encode converts a Cursor into an opaque URL-safe token.
func Encode(c Cursor) string {
	b, _ := json.Marshal(c) // two scalar fields, cannot fail
	return base64.RawURLEncoding.EncodeToString(b)
}

// Decode parses a token produced by Encode.
// Empty token → zero cursor (first page). A cursor with only one of its
// two fields set is rejected.
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, ErrInvalidToken
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return Cursor{}, ErrInvalidToken
	}
	if c.CandidateID == "" || c.UpdatedUnix <= 0 {
		return Cursor{}, ErrInvalidToken
	}
	return c, nil
}

// Trim cuts a limit+1 fetch down to one page and returns the token of the
// next page, nil when rows was the last page.
func Trim[T any](rows []T, limit int, cursorOf func(T) Cursor) ([]T, *string) {
	if limit <= 0 || len(rows) <= limit {
		return rows, nil
	}
	token := Encode(cursorOf(rows[limit-1]))
	return rows[:limit], &token
}
