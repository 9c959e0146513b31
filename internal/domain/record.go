package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Age bounds, inclusive.
const (
	MinAge = 0
	MaxAge = 150
)

// Record is the single entity managed by the service.
type Record struct {
	ID        uuid.UUID
	Name      string
	Age       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecordFilter describes which records FindAll returns.
// Search is a plain case-insensitive substring of the name; empty means all.
type RecordFilter struct {
	Search string
}

// Matches reports whether name satisfies the filter.
func (f RecordFilter) Matches(name string) bool {
	if f.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(f.Search))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern returns Search as a SQL LIKE pattern matching any name that
// contains it. Wildcards in Search are escaped with a backslash.
func (f RecordFilter) LikePattern() string {
	return "%" + likeEscaper.Replace(f.Search) + "%"
}

// RecordUpdate holds the fields a mutation overwrites.
// A nil field is left unchanged.
type RecordUpdate struct {
	Name *string
	Age  *int
}

// IsEmpty returns true if no field is set.
func (u RecordUpdate) IsEmpty() bool {
	return u.Name == nil && u.Age == nil
}

// Apply copies the set fields of u onto r. It does not touch timestamps.
func (u RecordUpdate) Apply(r *Record) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Age != nil {
		r.Age = *u.Age
	}
}

// ParseRecordID parses a client-supplied identifier.
// Returns an error wrapping ErrInvalidID if s is not a UUID.
func ParseRecordID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("record id %q: %w", s, ErrInvalidID)
	}
	return id, nil
}
